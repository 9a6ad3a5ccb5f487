// @title           Flatmoney API
// @version         1.0
// @description     Building, apartment and ledger management service

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"flatmoney-service/internal/app/routes"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/infrastructure/config"
	"flatmoney-service/internal/infrastructure/database"
	Logger "flatmoney-service/pkg/logger"
)

func main() {
	// 加载.env文件，失败时继续使用已有的环境变量
	envErr := godotenv.Load()

	cfg := config.GetConfig()

	// 初始化日志配置
	if err := Logger.SetupLogger(Logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Dir: cfg.LogDir}); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}
	defer Logger.Sync()

	if envErr != nil {
		Logger.Warning("无法加载.env文件: %v", envErr)
	} else {
		Logger.Info("成功加载.env文件")
	}

	gin.SetMode(cfg.GinMode)

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		Logger.Error("无法创建数据库连接池: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode); err != nil {
		Logger.Error("数据库迁移失败: %v", err)
		os.Exit(1)
	}

	store := repositories.NewGormStore(pool.GetDB())
	checks := services.HealthChecks{"database": pool.HealthCheck}

	// Redis 用于多实例共享限流，不可用时退回进程内限流
	var redisService services.InterfaceRedisService
	if cfg.RedisEnabled {
		redisService = services.NewRedisService(services.NewRedisClient(cfg))
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisService.Ping(ctx); err != nil {
			Logger.Warning("Redis连接失败，限流退回本地模式: %v", err)
		} else {
			Logger.Info("Redis已连接: %s", cfg.GetRedisAddr())
		}
		cancel()
		checks["redis"] = redisService.Ping
		defer redisService.Close()
	}

	// MQTT 事件通知，连接失败不影响启动
	notifier := services.NewNotifyService(cfg)
	if err := notifier.Connect(); err != nil {
		Logger.Warning("MQTT连接失败，客户端将自动重连: %v", err)
	}
	defer notifier.Disconnect()

	serviceContainer := container.NewServiceContainer(cfg, container.Dependencies{
		Store:    store,
		Redis:    redisService,
		Notifier: notifier,
		Health:   checks,
	})

	// 写入默认支出分类
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	err = serviceContainer.GetService("expense").(services.InterfaceExpenseService).SeedExpenseTypes(seedCtx)
	cancelSeed()
	if err != nil {
		Logger.Error("写入默认支出分类失败: %v", err)
		os.Exit(1)
	}

	r := routes.SetupRouter(cfg, serviceContainer)

	printSystemInfo(pool)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		Logger.Info("服务器启动在: http://0.0.0.0:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Error("启动服务器失败: %v", err)
			os.Exit(1)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	received := <-sigs
	Logger.Info("收到信号 %v，正在关闭服务器", received)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		Logger.Error("关闭服务器失败: %v", err)
	}
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		Logger.Info("数据库连接池状态: %+v", stats)
	}

	Logger.Info("系统CPU核心数: %d", runtime.NumCPU())
	Logger.Info("当前Go协程数: %d", runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("系统内存使用: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}
