package services

import (
	"context"
	"errors"
	"strings"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/error/apperr"
	"flatmoney-service/internal/infrastructure/config"
	"flatmoney-service/pkg/utils"
)

// ErrInvalidCredentials 邮箱不存在或密码不匹配，两种情况不加区分
var ErrInvalidCredentials = errors.New("invalid email or password")

// InterfaceAuthService 定义认证服务接口
type InterfaceAuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID uint) (*models.User, error)
}

// AuthResult 注册和登录的返回结果
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService 提供用户注册和登录
type AuthService struct {
	Store      *repositories.Store
	Config     *config.Config
	JWTService InterfaceJWTService
}

// NewAuthService 创建认证服务
func NewAuthService(store *repositories.Store, cfg *config.Config, jwtService InterfaceJWTService) InterfaceAuthService {
	return &AuthService{
		Store:      store,
		Config:     cfg,
		JWTService: jwtService,
	}
}

// 1 Register 注册新用户并签发令牌
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, apperr.Invalid("name, email and password are required")
	}

	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, apperr.Invalid("password is too long")
	}
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, Password: hash}
	if err := s.Store.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// 2 Login 校验邮箱和密码并签发令牌
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Store.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// 3 CurrentUser 获取令牌对应的用户
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.Store.Users.FindByID(ctx, userID)
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.JWTService.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
