package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/app/middleware"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/response"
)

// dateLayout 请求和响应中的日期格式
const dateLayout = "2006-01-02"

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"105001"`
	Message string      `json:"message" example:"floor not found"`
	Data    interface{} `json:"data"`
}

// BaseController 所有控制器共用的请求上下文和服务容器
type BaseController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// userID 当前登录用户，认证中间件保证存在
func (c *BaseController) userID() uint {
	id, _ := middleware.UserID(c.Ctx)
	return id
}

// pathID 解析路径中的正整数ID，失败时写入参数错误响应
func (c *BaseController) pathID(name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ParamError(c.Ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// hardDelete 读取 ?hard=true
func (c *BaseController) hardDelete() bool {
	hard, _ := strconv.ParseBool(c.Ctx.DefaultQuery("hard", "false"))
	return hard
}

// parseDate 解析 YYYY-MM-DD 日期，失败时写入参数错误响应
func (c *BaseController) parseDate(field, value string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		response.ParamError(c.Ctx, field+" must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return d, true
}
