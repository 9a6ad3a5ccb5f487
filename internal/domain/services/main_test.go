package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/repositories"
	"flatmoney-service/internal/infrastructure/config"
	"flatmoney-service/pkg/utils"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type publishedEvent struct {
	BuildingID uint
	Type       string
	Data       interface{}
}

// recordingNotifier 记录发布的事件
type recordingNotifier struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (n *recordingNotifier) Connect() error { return nil }

func (n *recordingNotifier) Disconnect() {}

func (n *recordingNotifier) Publish(_ context.Context, buildingID uint, eventType string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, publishedEvent{BuildingID: buildingID, Type: eventType, Data: data})
}

func (n *recordingNotifier) Events() []publishedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]publishedEvent(nil), n.events...)
}

type testEnv struct {
	ctx        context.Context
	store      *repositories.Store
	notifier   *recordingNotifier
	access     InterfaceAccessService
	buildings  InterfaceBuildingService
	floors     InterfaceFloorService
	apartments InterfaceApartmentService
	ledger     InterfaceLedgerService
	expenses   InterfaceExpenseService
	auth       InterfaceAuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repositories.NewMemoryStore()
	notifier := &recordingNotifier{}
	access := NewAccessService(store)
	cfg := &config.Config{JWTSecretKey: "test-secret", JWTExpirationHours: 24}

	return &testEnv{
		ctx:        context.Background(),
		store:      store,
		notifier:   notifier,
		access:     access,
		buildings:  NewBuildingService(store, access, notifier),
		floors:     NewFloorService(store, access),
		apartments: NewApartmentService(store, access),
		ledger:     NewLedgerService(store, access, notifier),
		expenses:   NewExpenseService(store, access),
		auth:       NewAuthService(store, cfg, NewJWTService(cfg)),
	}
}

func (e *testEnv) user(t *testing.T, email string) uint {
	t.Helper()
	res, err := e.auth.Register(e.ctx, "User "+email, email, "password")
	require.NoError(t, err)
	return res.User.ID
}

func (e *testEnv) building(t *testing.T, owner uint) *models.Building {
	t.Helper()
	b, err := e.buildings.CreateBuilding(e.ctx, owner, BuildingInput{Name: "Tower", Address: "Main 1", TotalFloors: 5})
	require.NoError(t, err)
	return b
}

func (e *testEnv) floor(t *testing.T, owner, buildingID uint, number int) *models.Floor {
	t.Helper()
	f, _, err := e.floors.CreateFloor(e.ctx, owner, buildingID, FloorInput{FloorNumber: number, TotalApartments: 4})
	require.NoError(t, err)
	return f
}

func (e *testEnv) apartment(t *testing.T, owner, floorID uint, number string) *models.Apartment {
	t.Helper()
	a, _, err := e.apartments.CreateApartment(e.ctx, owner, floorID, ApartmentInput{
		ApartmentNumber: number,
		OwnerName:       "Owner " + number,
		Area:            decimal.RequireFromString("64.50"),
		Rooms:           3,
	})
	require.NoError(t, err)
	return a
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
