package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "flatmoney-service/docs"
	"flatmoney-service/internal/app/controllers"
	"flatmoney-service/internal/app/middleware"
	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/infrastructure/config"
	"flatmoney-service/internal/infrastructure/metrics"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(cfg *config.Config, container *container.ServiceContainer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	// 添加 CORS 中间件
	allowOrigin := cfg.CORSAllowOrigin
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Swagger 文档和 Prometheus 指标
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	registerRoutes(r, cfg, container)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(r *gin.Engine, cfg *config.Config, container *container.ServiceContainer) {
	api := r.Group("/api")

	var redis services.InterfaceRedisService
	if s, ok := container.GetService("redis").(services.InterfaceRedisService); ok && s != nil {
		redis = s
	}

	registerPublicRoutes(api, cfg, container, redis)
	registerAuthenticatedRoutes(api, cfg, container, redis)
}

// registerPublicRoutes 注册公共路由，按IP限流
func registerPublicRoutes(
	api *gin.RouterGroup,
	cfg *config.Config,
	container *container.ServiceContainer,
	redis services.InterfaceRedisService,
) {
	public := api.Group("")
	public.Use(middleware.IPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, redis))

	// 健康检查路由
	public.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	public.GET("/health", controllers.HandleHealthFunc(container, "health"))

	// 认证路由
	public.POST("/auth/register", controllers.HandleJWTFunc(container, "register"))
	public.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由，按用户限流
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	cfg *config.Config,
	container *container.ServiceContainer,
	redis services.InterfaceRedisService,
) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)

	auth := api.Group("")
	auth.Use(middleware.AuthenticateUser(jwtService))
	auth.Use(middleware.UserRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, redis))

	auth.GET("/auth/user", controllers.HandleJWTFunc(container, "getCurrentUser"))

	// 楼宇路由
	buildingGroup := auth.Group("/buildings")
	buildingGroup.GET("", controllers.HandleBuildingFunc(container, "getBuildings"))
	buildingGroup.POST("", controllers.HandleBuildingFunc(container, "createBuilding"))
	buildingGroup.GET("/:id", controllers.HandleBuildingFunc(container, "getBuilding"))
	buildingGroup.PUT("/:id", controllers.HandleBuildingFunc(container, "updateBuilding"))
	buildingGroup.DELETE("/:id", controllers.HandleBuildingFunc(container, "deleteBuilding"))
	buildingGroup.GET("/:id/access", controllers.HandleBuildingFunc(container, "getAccess"))
	buildingGroup.POST("/:id/access", controllers.HandleBuildingFunc(container, "grantAccess"))
	buildingGroup.DELETE("/:id/access/:userId", controllers.HandleBuildingFunc(container, "revokeAccess"))
	buildingGroup.GET("/:id/floors", controllers.HandleFloorFunc(container, "getFloors"))
	buildingGroup.POST("/:id/floors", controllers.HandleFloorFunc(container, "createFloor"))
	buildingGroup.POST("/:id/obligations/bulk", controllers.HandleLedgerFunc(container, "bulkCreateObligations"))
	buildingGroup.GET("/:id/expenses", controllers.HandleExpenseFunc(container, "getExpenses"))
	buildingGroup.POST("/:id/expenses", controllers.HandleExpenseFunc(container, "createExpense"))
	buildingGroup.DELETE("/:id/expenses/:expenseId", controllers.HandleExpenseFunc(container, "deleteExpense"))
	buildingGroup.GET("/:id/balance", controllers.HandleExpenseFunc(container, "getBalance"))

	// 楼层路由
	floorGroup := auth.Group("/floors")
	floorGroup.GET("/:id", controllers.HandleFloorFunc(container, "getFloor"))
	floorGroup.PUT("/:id", controllers.HandleFloorFunc(container, "updateFloor"))
	floorGroup.DELETE("/:id", controllers.HandleFloorFunc(container, "deleteFloor"))
	floorGroup.GET("/:id/apartments", controllers.HandleApartmentFunc(container, "getApartments"))
	floorGroup.POST("/:id/apartments", controllers.HandleApartmentFunc(container, "createApartment"))

	// 公寓路由
	apartmentGroup := auth.Group("/apartments")
	apartmentGroup.GET("/:id", controllers.HandleApartmentFunc(container, "getApartment"))
	apartmentGroup.PUT("/:id", controllers.HandleApartmentFunc(container, "updateApartment"))
	apartmentGroup.DELETE("/:id", controllers.HandleApartmentFunc(container, "deleteApartment"))
	apartmentGroup.GET("/:id/deposits", controllers.HandleLedgerFunc(container, "getDeposits"))
	apartmentGroup.POST("/:id/deposits", controllers.HandleLedgerFunc(container, "createDeposit"))
	apartmentGroup.DELETE("/:id/deposits/:depositId", controllers.HandleLedgerFunc(container, "deleteDeposit"))
	apartmentGroup.GET("/:id/obligations", controllers.HandleLedgerFunc(container, "getObligations"))
	apartmentGroup.POST("/:id/obligations", controllers.HandleLedgerFunc(container, "createObligation"))

	// 应缴款项路由
	auth.PUT("/obligations/:id", controllers.HandleLedgerFunc(container, "updateObligation"))

	// 支出分类
	auth.GET("/expense-types", controllers.HandleExpenseFunc(container, "getExpenseTypes"))
}
