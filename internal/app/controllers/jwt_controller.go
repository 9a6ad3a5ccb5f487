package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Register()
	Login()
	GetCurrentUser()
}

// JWTController 处理注册、登录和当前用户请求
type JWTController struct {
	BaseController
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{BaseController{Ctx: ctx, Container: container}}
}

// RegisterRequest 表示注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Alice"`
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret!"`
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret!"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "getCurrentUser":
			controller.GetCurrentUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *JWTController) authService() services.InterfaceAuthService {
	return c.Container.GetService("auth").(services.InterfaceAuthService)
}

// 1. Register 注册新用户
// @Summary      Register
// @Description  Create a user account and return a 24h token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册信息"
// @Success      201 {object} services.AuthResult
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /auth/register [post]
func (c *JWTController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	result, err := c.authService().Register(c.Ctx.Request.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, apperr.ErrConflict) {
		response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
		return
	}
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, result)
}

// 2. Login 用户登录
// @Summary      Login
// @Description  Verify email and password and return a 24h token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录信息"
// @Success      200 {object} services.AuthResult
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	result, err := c.authService().Login(c.Ctx.Request.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Fail(c.Ctx, code.ErrUserPasswordIncorrect, nil)
		return
	}
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, result)
}

// 3. GetCurrentUser 获取当前登录用户
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.User
// @Failure      401 {object} ErrorResponse
// @Router       /auth/user [get]
func (c *JWTController) GetCurrentUser() {
	user, err := c.authService().CurrentUser(c.Ctx.Request.Context(), c.userID())
	if errors.Is(err, apperr.ErrNotFound) {
		response.Fail(c.Ctx, code.ErrUserNotFound, nil)
		return
	}
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}
