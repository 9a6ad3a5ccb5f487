package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/infrastructure/config"
	"flatmoney-service/pkg/utils"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	store  *repositories.Store
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost

	cfg := &config.Config{
		JWTSecretKey:   "test-secret",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	store := repositories.NewMemoryStore()
	c := container.NewServiceContainer(cfg, container.Dependencies{
		Store:  store,
		Health: services.HealthChecks{"database": func(context.Context) error { return nil }},
	})
	require.NoError(t, c.GetService("expense").(services.InterfaceExpenseService).SeedExpenseTypes(context.Background()))

	return &apiClient{t: t, router: SetupRouter(cfg, c), store: store}
}

func (a *apiClient) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *apiClient) register(email string) (string, uint) {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "User", "email": email, "password": "password1",
	})
	require.Equal(a.t, http.StatusCreated, status, string(env.Data))

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &result))
	return result.Token, result.User.ID
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

type idBody struct {
	ID uint `json:"id"`
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t)
	token, id := api.register("alice@example.com")

	status, env := api.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Again", "email": "alice@example.com", "password": "password1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 101001, env.Code)

	status, env = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 101002, env.Code)

	status, env = api.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "password1"})
	assert.Equal(t, http.StatusOK, status)

	status, env = api.do(http.MethodGet, "/api/auth/user", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, decode[idBody](t, env).ID)

	status, env = api.do(http.MethodGet, "/api/buildings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 100004, env.Code)
}

func TestFloorRestoreScenario(t *testing.T) {
	api := newAPI(t)
	token, _ := api.register("owner@example.com")

	status, env := api.do(http.MethodPost, "/api/buildings", token, gin.H{"name": "Tower", "address": "Main 1", "total_floors": 5})
	require.Equal(t, http.StatusCreated, status)
	building := decode[idBody](t, env)

	status, env = api.do(http.MethodPost, "/api/buildings/"+itoa(building.ID)+"/floors", token, gin.H{"floor_number": 3, "total_apartments": 2})
	require.Equal(t, http.StatusCreated, status)
	floor := decode[struct {
		ID       uint `json:"id"`
		Restored bool `json:"restored"`
	}](t, env)
	assert.False(t, floor.Restored)

	status, _ = api.do(http.MethodPost, "/api/buildings/"+itoa(building.ID)+"/floors", token, gin.H{"floor_number": 3, "total_apartments": 9})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = api.do(http.MethodDelete, "/api/floors/"+itoa(floor.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = api.do(http.MethodPost, "/api/buildings/"+itoa(building.ID)+"/floors", token, gin.H{"floor_number": 3, "total_apartments": 5})
	require.Equal(t, http.StatusCreated, status)
	restored := decode[struct {
		ID              uint `json:"id"`
		TotalApartments int  `json:"total_apartments"`
		IsDeleted       bool `json:"is_deleted"`
		Restored        bool `json:"restored"`
	}](t, env)
	assert.Equal(t, floor.ID, restored.ID)
	assert.Equal(t, 5, restored.TotalApartments)
	assert.False(t, restored.IsDeleted)
	assert.True(t, restored.Restored)
}

func TestReadOnlyUserScenario(t *testing.T) {
	api := newAPI(t)
	ownerToken, _ := api.register("a@example.com")
	readerToken, readerID := api.register("b@example.com")

	_, env := api.do(http.MethodPost, "/api/buildings", ownerToken, gin.H{"name": "Tower", "address": "Main 1", "total_floors": 5})
	building := decode[idBody](t, env)
	base := "/api/buildings/" + itoa(building.ID)

	status, env := api.do(http.MethodGet, base, readerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 100006, env.Code)

	status, _ = api.do(http.MethodPost, base+"/access", ownerToken, gin.H{"user_id": readerID, "can_edit": false})
	require.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodGet, base+"/floors", readerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = api.do(http.MethodPost, base+"/floors", readerToken, gin.H{"floor_number": 1})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 100006, env.Code)

	status, _ = api.do(http.MethodGet, base+"/access", readerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLedgerAndBalance(t *testing.T) {
	api := newAPI(t)
	token, _ := api.register("owner@example.com")

	_, env := api.do(http.MethodPost, "/api/buildings", token, gin.H{"name": "Tower", "address": "Main 1", "total_floors": 2})
	building := decode[idBody](t, env)
	base := "/api/buildings/" + itoa(building.ID)

	_, env = api.do(http.MethodPost, base+"/floors", token, gin.H{"floor_number": 1, "total_apartments": 2})
	floor := decode[idBody](t, env)

	var apartments []uint
	for _, number := range []string{"1", "2"} {
		status, env := api.do(http.MethodPost, "/api/floors/"+itoa(floor.ID)+"/apartments", token, gin.H{
			"apartment_number": number, "owner_name": "Owner " + number, "area": 55.5, "rooms": 2,
		})
		require.Equal(t, http.StatusCreated, status, string(env.Data))
		apartments = append(apartments, decode[idBody](t, env).ID)
	}

	status, env := api.do(http.MethodPost, base+"/obligations/bulk", token, gin.H{"amount": "40.00", "due_date": "2024-07-01", "description": "July"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 2, decode[struct {
		Count int `json:"count"`
	}](t, env).Count)

	status, env = api.do(http.MethodPost, base+"/obligations/bulk", token, gin.H{"amount": "40.00", "due_date": "01/07/2024"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = api.do(http.MethodGet, "/api/apartments/"+itoa(apartments[0])+"/obligations", token, nil)
	require.Equal(t, http.StatusOK, status)
	obligations := decode[[]idBody](t, env)
	require.Len(t, obligations, 1)

	status, env = api.do(http.MethodPut, "/api/obligations/"+itoa(obligations[0].ID), token, gin.H{"is_paid": true, "payment_date": "2024-07-02"})
	require.Equal(t, http.StatusOK, status)
	paid := decode[struct {
		IsPaid      bool    `json:"is_paid"`
		PaymentDate *string `json:"payment_date"`
	}](t, env)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaymentDate)

	status, _ = api.do(http.MethodPost, "/api/apartments/"+itoa(apartments[1])+"/deposits", token, gin.H{"amount": 100, "date": "2024-07-03"})
	require.Equal(t, http.StatusCreated, status)

	status, env = api.do(http.MethodGet, "/api/expense-types", token, nil)
	require.Equal(t, http.StatusOK, status)
	types := decode[[]idBody](t, env)
	require.NotEmpty(t, types)

	status, _ = api.do(http.MethodPost, base+"/expenses", token, gin.H{"expense_type_id": types[0].ID, "amount": "25.5", "date": "2024-07-04"})
	require.Equal(t, http.StatusCreated, status)

	status, env = api.do(http.MethodGet, base+"/balance", token, nil)
	require.Equal(t, http.StatusOK, status)
	balance := decode[struct {
		Deposits          string `json:"deposits"`
		ObligationsPaid   string `json:"obligations_paid"`
		ObligationsUnpaid string `json:"obligations_unpaid"`
		Expenses          string `json:"expenses"`
		Balance           string `json:"balance"`
	}](t, env)
	assert.Equal(t, "100", balance.Deposits)
	assert.Equal(t, "40", balance.ObligationsPaid)
	assert.Equal(t, "40", balance.ObligationsUnpaid)
	assert.Equal(t, "25.5", balance.Expenses)
	assert.Equal(t, "114.5", balance.Balance)

	// 存在应缴款项的公寓不能物理删除，楼层也一样
	status, env = api.do(http.MethodDelete, "/api/apartments/"+itoa(apartments[0])+"?hard=true", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, 105003, env.Code)
	status, _ = api.do(http.MethodDelete, "/api/floors/"+itoa(floor.ID)+"?hard=true", token, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestBulkObligations_EmptyBuilding(t *testing.T) {
	api := newAPI(t)
	token, _ := api.register("owner@example.com")
	_, env := api.do(http.MethodPost, "/api/buildings", token, gin.H{"name": "Tower", "address": "Main 1", "total_floors": 1})
	building := decode[idBody](t, env)

	status, env := api.do(http.MethodPost, "/api/buildings/"+itoa(building.ID)+"/obligations/bulk", token, gin.H{"amount": 10, "due_date": "2024-07-01"})
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"count":0}`, string(env.Data))
}

func TestExpenseTypes_ReflectStoreChanges(t *testing.T) {
	api := newAPI(t)
	token, _ := api.register("owner@example.com")

	status, env := api.do(http.MethodGet, "/api/expense-types", token, nil)
	require.Equal(t, http.StatusOK, status)
	before := decode[[]idBody](t, env)

	require.NoError(t, api.store.Expenses.EnsureTypes(context.Background(), []string{"Roof repair"}))

	status, env = api.do(http.MethodGet, "/api/expense-types", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]idBody](t, env), len(before)+1)
}

func TestHealthAndPing(t *testing.T) {
	api := newAPI(t)

	status, env := api.do(http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 100000, env.Code)

	status, env = api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", env.Message)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
