package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/infrastructure/metrics"
)

// Metrics 记录请求数量、耗时和并发数，路径使用路由模板避免标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.RequestStarted()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		done(c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
	}
}
