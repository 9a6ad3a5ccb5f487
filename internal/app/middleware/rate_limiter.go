package middleware

import (
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
	"flatmoney-service/pkg/logger"
)

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate       float64                   // 每秒允许的请求数
	Burst      int                       // 允许的突发请求数
	ExpiryTime time.Duration             // 本地限流器闲置多久后清理
	KeyFunc    func(*gin.Context) string // 限流键，默认按客户端IP
	Redis      services.InterfaceRedisService
}

// DefaultRateLimiterConfig 默认限流器配置
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:       20,
	Burst:      40,
	ExpiryTime: 10 * time.Minute,
}

type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiters 进程内的令牌桶，Redis 不可用时使用
type localLimiters struct {
	mu       sync.Mutex
	limiters map[string]*localLimiter
	rate     rate.Limit
	burst    int
	expiry   time.Duration
	lastGC   time.Time
}

func newLocalLimiters(cfg RateLimiterConfig) *localLimiters {
	return &localLimiters{
		limiters: make(map[string]*localLimiter),
		rate:     rate.Limit(cfg.Rate),
		burst:    cfg.Burst,
		expiry:   cfg.ExpiryTime,
		lastGC:   time.Now(),
	}
}

func (l *localLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if l.expiry > 0 && now.Sub(l.lastGC) > l.expiry {
		for k, v := range l.limiters {
			if now.Sub(v.lastSeen) > l.expiry {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &localLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// redisWindow 固定窗口长度：窗口内最多 Burst 次，平均速率约为 Rate
func redisWindow(cfg RateLimiterConfig) time.Duration {
	seconds := float64(cfg.Burst) / cfg.Rate
	return time.Duration(math.Max(seconds, 1) * float64(time.Second))
}

// RateLimiter 创建限流中间件
//
// 配置了 Redis 时多个实例共享同一个固定窗口计数；Redis 出错时退回进程内令牌桶。
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	local := newLocalLimiters(cfg)
	window := redisWindow(cfg)

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)

		allowed := false
		if cfg.Redis != nil {
			ok, err := cfg.Redis.Allow(c.Request.Context(), key, cfg.Burst, window)
			if err != nil {
				logger.L().Warn("redis rate limiter unavailable, using local limiter", zap.Error(err))
				allowed = local.allow(key)
			} else {
				allowed = ok
			}
		} else {
			allowed = local.allow(key)
		}

		if !allowed {
			response.Fail(c, code.ErrTooManyRequests, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(rps float64, burst int, redis services.InterfaceRedisService) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:       rps,
		Burst:      burst,
		ExpiryTime: DefaultRateLimiterConfig.ExpiryTime,
		Redis:      redis,
	})
}

// UserRateLimiter 已认证请求按用户限流，未认证时按IP
func UserRateLimiter(rps float64, burst int, redis services.InterfaceRedisService) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:       rps,
		Burst:      burst,
		ExpiryTime: DefaultRateLimiterConfig.ExpiryTime,
		Redis:      redis,
		KeyFunc: func(c *gin.Context) string {
			if id, ok := UserID(c); ok {
				return "user:" + uintString(id)
			}
			return "ip:" + c.ClientIP()
		},
	})
}
