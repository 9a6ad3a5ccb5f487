package container

import (
	"sync"

	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/infrastructure/config"
)

// Dependencies 容器的外部依赖；Redis 和 Notifier 可为空
type Dependencies struct {
	Store    *repositories.Store
	Redis    services.InterfaceRedisService
	Notifier services.InterfaceNotifyService
	Health   services.HealthChecks
}

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	config *config.Config
	store  *repositories.Store

	jwtService       services.InterfaceJWTService
	redisService     services.InterfaceRedisService
	notifyService    services.InterfaceNotifyService
	healthService    services.InterfaceHealthService
	authService      services.InterfaceAuthService
	accessService    services.InterfaceAccessService
	buildingService  services.InterfaceBuildingService
	floorService     services.InterfaceFloorService
	apartmentService services.InterfaceApartmentService
	ledgerService    services.InterfaceLedgerService
	expenseService   services.InterfaceExpenseService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(cfg *config.Config, deps Dependencies) *ServiceContainer {
	if cfg == nil {
		panic("配置为空")
	}
	if deps.Store == nil {
		panic("存储为空")
	}
	if deps.Notifier == nil {
		deps.Notifier = services.NoopNotifyService{}
	}

	container := &ServiceContainer{
		config:        cfg,
		store:         deps.Store,
		redisService:  deps.Redis,
		notifyService: deps.Notifier,
	}
	container.initializeServices(deps.Health)
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices(checks services.HealthChecks) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)
	c.healthService = services.NewHealthService(checks)
	c.authService = services.NewAuthService(c.store, c.config, c.jwtService)

	// 所有楼宇范围的服务共用同一个权限判定
	c.accessService = services.NewAccessService(c.store)

	c.buildingService = services.NewBuildingService(c.store, c.accessService, c.notifyService)
	c.floorService = services.NewFloorService(c.store, c.accessService)
	c.apartmentService = services.NewApartmentService(c.store, c.accessService)
	c.ledgerService = services.NewLedgerService(c.store, c.accessService, c.notifyService)
	c.expenseService = services.NewExpenseService(c.store, c.accessService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "notify":
		return c.notifyService
	case "health":
		return c.healthService
	case "auth":
		return c.authService
	case "access":
		return c.accessService
	case "building":
		return c.buildingService
	case "floor":
		return c.floorService
	case "apartment":
		return c.apartmentService
	case "ledger":
		return c.ledgerService
	case "expense":
		return c.expenseService
	default:
		return nil
	}
}
