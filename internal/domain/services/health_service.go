package services

import (
	"context"
	"time"
)

// HealthChecker 可探测的外部依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthChecks 按依赖名称组织的探测函数
type HealthChecks map[string]func(ctx context.Context) error

// HealthReport 健康检查结果
type HealthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	CheckedAt  time.Time         `json:"checked_at"`
}

// InterfaceHealthService 定义健康检查服务接口
type InterfaceHealthService interface {
	Check(ctx context.Context) HealthReport
}

// HealthService 汇总数据库和 Redis 的状态
type HealthService struct {
	checks HealthChecks
}

// NewHealthService 创建健康检查服务
func NewHealthService(checks HealthChecks) InterfaceHealthService {
	if checks == nil {
		checks = HealthChecks{}
	}
	return &HealthService{checks: checks}
}

// Check 依次探测所有依赖，任一失败整体为 degraded
func (s *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:     "healthy",
		Components: make(map[string]string, len(s.checks)),
		CheckedAt:  time.Now().UTC(),
	}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			report.Components[name] = "down: " + err.Error()
			report.Status = "degraded"
			continue
		}
		report.Components[name] = "up"
	}
	return report
}
