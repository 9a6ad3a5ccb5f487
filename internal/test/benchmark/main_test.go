package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"flatmoney-service/internal/app/routes"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/infrastructure/config"
	"flatmoney-service/pkg/logger"
	"flatmoney-service/pkg/utils"
)

const (
	concurrency = 8
	requests    = 80
)

var (
	server     *httptest.Server
	authToken  string
	buildingID uint
	floorID    uint
)

// TestMain 启动内存存储的服务并准备一栋带公寓的楼宇
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost
	// BENCH_LOG_LEVEL=info 时输出每轮结果和请求日志
	if level := os.Getenv("BENCH_LOG_LEVEL"); level != "" {
		if err := logger.SetupLogger(logger.Options{Level: level}); err != nil {
			fmt.Printf("初始化日志失败: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := &config.Config{
		JWTSecretKey:   "benchmark-secret",
		RateLimitRPS:   100000,
		RateLimitBurst: 100000,
	}
	c := container.NewServiceContainer(cfg, container.Dependencies{Store: repositories.NewMemoryStore()})
	if err := c.GetService("expense").(services.InterfaceExpenseService).SeedExpenseTypes(context.Background()); err != nil {
		fmt.Printf("写入支出分类失败: %v\n", err)
		os.Exit(1)
	}
	server = httptest.NewServer(routes.SetupRouter(cfg, c))

	if err := prepare(context.Background()); err != nil {
		fmt.Printf("准备数据失败: %v\n", err)
		server.Close()
		os.Exit(1)
	}

	code := m.Run()
	server.Close()
	os.Exit(code)
}

type idBody struct {
	ID uint `json:"id"`
}

// prepare 注册用户，创建楼宇、楼层和公寓
func prepare(ctx context.Context) error {
	client := NewAPIBenchmark(server.URL+"/api", 1, 1, "")

	var auth struct {
		Token string `json:"token"`
	}
	status, err := client.Call(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name": "Bench", "email": "bench@example.com", "password": "password1",
	}, &auth)
	if err != nil || status != http.StatusCreated {
		return fmt.Errorf("注册失败: status=%d err=%v", status, err)
	}
	authToken = auth.Token
	client.AuthToken = authToken

	var building idBody
	if _, err := client.Call(ctx, http.MethodPost, "/buildings", map[string]interface{}{
		"name": "Bench Tower", "address": "Load Street 1", "total_floors": 10,
	}, &building); err != nil {
		return err
	}
	buildingID = building.ID

	var floor idBody
	if _, err := client.Call(ctx, http.MethodPost, buildingPath("/floors"), map[string]interface{}{
		"floor_number": 1, "total_apartments": 4,
	}, &floor); err != nil {
		return err
	}
	floorID = floor.ID

	for i := 1; i <= 4; i++ {
		status, err := client.Call(ctx, http.MethodPost, "/floors/"+strconv.Itoa(int(floorID))+"/apartments", map[string]interface{}{
			"apartment_number": strconv.Itoa(i), "owner_name": "Owner", "area": 50, "rooms": 2,
		}, nil)
		if err != nil || status != http.StatusCreated {
			return fmt.Errorf("创建公寓失败: status=%d err=%v", status, err)
		}
	}
	return nil
}

func buildingPath(suffix string) string {
	return "/buildings/" + strconv.Itoa(int(buildingID)) + suffix
}

func newBenchmark() *APIBenchmark {
	return NewAPIBenchmark(server.URL+"/api", concurrency, requests, authToken)
}

func assertAllSucceeded(t *testing.T, result *BenchmarkResult) {
	t.Helper()
	result.Log()
	assert.Zero(t, result.FailureCount, "status codes: %v errors: %v", result.StatusCodes, result.Errors)
	assert.Equal(t, result.TotalRequests, result.SuccessCount)
}

// TestBuildingList 楼宇列表
func TestBuildingList(t *testing.T) {
	assertAllSucceeded(t, newBenchmark().Run(context.Background(), http.MethodGet, "/buildings", nil))
}

// TestBalance 楼宇余额
func TestBalance(t *testing.T) {
	assertAllSucceeded(t, newBenchmark().Run(context.Background(), http.MethodGet, buildingPath("/balance"), nil))
}

// TestExpenseTypes 支出分类
func TestExpenseTypes(t *testing.T) {
	assertAllSucceeded(t, newBenchmark().Run(context.Background(), http.MethodGet, "/expense-types", nil))
}

// TestBulkObligations 并发批量生成应缴款项，每次为4套公寓各生成一条
func TestBulkObligations(t *testing.T) {
	ctx := context.Background()
	b := NewAPIBenchmark(server.URL+"/api", concurrency, 20, authToken)
	assertAllSucceeded(t, b.Run(ctx, http.MethodPost, buildingPath("/obligations/bulk"), map[string]interface{}{
		"amount": "12.50", "due_date": "2024-08-01", "description": "Load",
	}))

	var apartments []idBody
	_, err := b.Call(ctx, http.MethodGet, "/floors/"+strconv.Itoa(int(floorID))+"/apartments", nil, &apartments)
	require.NoError(t, err)
	require.Len(t, apartments, 4)

	var obligations []idBody
	_, err = b.Call(ctx, http.MethodGet, "/apartments/"+strconv.Itoa(int(apartments[0].ID))+"/obligations", nil, &obligations)
	require.NoError(t, err)
	assert.Len(t, obligations, 20)
}

// TestConcurrentFloorCreate 并发创建同一楼层号只有一个成功
func TestConcurrentFloorCreate(t *testing.T) {
	result := newBenchmark().Run(context.Background(), http.MethodPost, buildingPath("/floors"), map[string]interface{}{
		"floor_number": 7, "total_apartments": 2,
	})
	result.Log()

	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, result.StatusCodes[http.StatusCreated])
	assert.Equal(t, requests-1, result.StatusCodes[http.StatusConflict])
}
