package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	BaseController
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(ctx *gin.Context, container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{BaseController{Ctx: ctx, Container: container}}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "health":
			controller.Health()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Ping 存活检查
// @Summary Ping
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ping [get]
func (h *HealthCheckController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Health 检查数据库和 Redis 的状态，任一异常返回 503
// @Summary Health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthReport
// @Failure 503 {object} services.HealthReport
// @Router /health [get]
func (h *HealthCheckController) Health() {
	report := h.Container.GetService("health").(services.InterfaceHealthService).Check(h.Ctx.Request.Context())

	status := http.StatusOK
	if report.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	h.Ctx.JSON(status, response.Response{
		Code:    code.ErrSuccess,
		Message: report.Status,
		Data:    report,
	})
}
