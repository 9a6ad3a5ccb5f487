package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/pkg/logger"

	"go.uber.org/zap"
)

// Response 定义统一的响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, errorCode int, data interface{}) {
	httpStatus := code.GetStatus(errorCode)
	message := code.GetMessage(errorCode)

	c.JSON(httpStatus, Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	httpStatus := code.GetStatus(errorCode)

	c.JSON(httpStatus, Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// ParamError 参数错误响应
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// BindError 请求体绑定错误响应
func BindError(c *gin.Context, err error) {
	FailWithMessage(c, code.ErrBind, "invalid request body: "+err.Error(), nil)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context) {
	Fail(c, code.ErrTokenInvalid, nil)
}

// Error 将领域错误转换为错误码和HTTP状态
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		FailWithMessage(c, code.ErrValidation, detail(err, apperr.ErrInvalidInput), nil)
	case errors.Is(err, apperr.ErrForbidden):
		FailWithMessage(c, code.ErrForbidden, detail(err, apperr.ErrForbidden), nil)
	case errors.Is(err, apperr.ErrNotFound):
		FailWithMessage(c, code.ErrRecordNotFound, detail(err, apperr.ErrNotFound), nil)
	case errors.Is(err, apperr.ErrConflict):
		FailWithMessage(c, code.ErrConflict, detail(err, apperr.ErrConflict), nil)
	case errors.Is(err, apperr.ErrHasDependents):
		FailWithMessage(c, code.ErrHasDependents, detail(err, apperr.ErrHasDependents), nil)
	default:
		// 内部错误不向调用方暴露细节
		logger.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		Fail(c, code.ErrDatabase, nil)
	}
}

// detail 去掉哨兵前缀，只保留具体原因
func detail(err error, sentinel error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}
