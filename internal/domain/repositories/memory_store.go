package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/error/apperr"
)

// memoryDB 内存存储，所有仓储共享同一把锁，用于测试和本地演示
type memoryDB struct {
	mu     sync.RWMutex
	nextID uint

	users       map[uint]models.User
	buildings   map[uint]models.Building
	access      map[uint]models.BuildingAccess
	floors      map[uint]models.Floor
	apartments  map[uint]models.Apartment
	deposits    map[uint]models.Deposit
	obligations map[uint]models.Obligation
	types       map[uint]models.ExpenseType
	expenses    map[uint]models.BuildingExpense
}

// NewMemoryStore 创建内存仓储，唯一约束与数据库保持一致
func NewMemoryStore() *Store {
	m := &memoryDB{
		users:       make(map[uint]models.User),
		buildings:   make(map[uint]models.Building),
		access:      make(map[uint]models.BuildingAccess),
		floors:      make(map[uint]models.Floor),
		apartments:  make(map[uint]models.Apartment),
		deposits:    make(map[uint]models.Deposit),
		obligations: make(map[uint]models.Obligation),
		types:       make(map[uint]models.ExpenseType),
		expenses:    make(map[uint]models.BuildingExpense),
	}
	return &Store{
		Users:      &memoryUsers{m},
		Buildings:  &memoryBuildings{m},
		Floors:     &memoryFloors{m},
		Apartments: &memoryApartments{m},
		Ledger:     &memoryLedger{m},
		Expenses:   &memoryExpenses{m},
	}
}

// stamp 分配主键和时间戳，调用方需持有写锁
func (m *memoryDB) stamp(base *models.BaseModel) {
	m.nextID++
	now := time.Now()
	base.ID = m.nextID
	base.CreatedAt = now
	base.UpdatedAt = now
}

func sortedIDs[T any](rows map[uint]T) []uint {
	ids := make([]uint, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ---- users ----

type memoryUsers struct{ m *memoryDB }

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.Email == user.Email {
			return apperr.Conflict("user already exists")
		}
	}
	r.m.stamp(&user.BaseModel)
	r.m.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	user, ok := r.m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &user, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, u := range r.m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

// ---- buildings ----

type memoryBuildings struct{ m *memoryDB }

func (r *memoryBuildings) CreateWithOwner(_ context.Context, building *models.Building) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.stamp(&building.BaseModel)
	r.m.buildings[building.ID] = *building

	owner := models.BuildingAccess{UserID: building.CreatedBy, BuildingID: building.ID, IsOwner: true, CanEdit: true}
	r.m.stamp(&owner.BaseModel)
	r.m.access[owner.ID] = owner
	return nil
}

func (r *memoryBuildings) FindByID(_ context.Context, id uint) (*models.Building, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	building, ok := r.m.buildings[id]
	if !ok {
		return nil, apperr.NotFound("building not found")
	}
	return &building, nil
}

func (r *memoryBuildings) ListForUser(_ context.Context, userID uint) ([]models.Building, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	shared := make(map[uint]bool)
	for _, a := range r.m.access {
		if a.UserID == userID {
			shared[a.BuildingID] = true
		}
	}

	buildings := []models.Building{}
	for _, id := range sortedIDs(r.m.buildings) {
		b := r.m.buildings[id]
		if !b.IsDeleted && (b.CreatedBy == userID || shared[id]) {
			buildings = append(buildings, b)
		}
	}
	return buildings, nil
}

func (r *memoryBuildings) Update(_ context.Context, id uint, updates map[string]interface{}) (*models.Building, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	b, ok := r.m.buildings[id]
	if !ok || b.IsDeleted {
		return nil, apperr.NotFound("building not found")
	}
	for column, value := range updates {
		switch column {
		case "name":
			b.Name = value.(string)
		case "address":
			b.Address = value.(string)
		case "total_floors":
			b.TotalFloors = value.(int)
		case "description":
			b.Description = value.(*string)
		}
	}
	b.UpdatedAt = time.Now()
	r.m.buildings[id] = b
	return &b, nil
}

func (r *memoryBuildings) SoftDelete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	b, ok := r.m.buildings[id]
	if !ok || b.IsDeleted {
		return apperr.NotFound("building not found")
	}
	b.IsDeleted = true
	r.m.buildings[id] = b
	return nil
}

func (r *memoryBuildings) FindAccess(_ context.Context, userID, buildingID uint) (*models.BuildingAccess, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, a := range r.m.access {
		if a.UserID == userID && a.BuildingID == buildingID {
			access := a
			return &access, nil
		}
	}
	return nil, nil
}

func (r *memoryBuildings) ListAccess(_ context.Context, buildingID uint) ([]models.BuildingAccess, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	rows := []models.BuildingAccess{}
	for _, id := range sortedIDs(r.m.access) {
		if a := r.m.access[id]; a.BuildingID == buildingID {
			rows = append(rows, a)
		}
	}
	return rows, nil
}

func (r *memoryBuildings) SaveAccess(_ context.Context, access *models.BuildingAccess) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for id, a := range r.m.access {
		if a.UserID == access.UserID && a.BuildingID == access.BuildingID {
			a.IsOwner = access.IsOwner
			a.CanEdit = access.CanEdit
			a.UpdatedAt = time.Now()
			r.m.access[id] = a
			*access = a
			return nil
		}
	}
	r.m.stamp(&access.BaseModel)
	r.m.access[access.ID] = *access
	return nil
}

func (r *memoryBuildings) DeleteAccess(_ context.Context, userID, buildingID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for id, a := range r.m.access {
		if a.UserID == userID && a.BuildingID == buildingID {
			delete(r.m.access, id)
			return nil
		}
	}
	return apperr.NotFound("building access not found")
}

// ---- floors ----

type memoryFloors struct{ m *memoryDB }

func (r *memoryFloors) FindByKey(_ context.Context, buildingID uint, floorNumber int) (*models.Floor, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, f := range r.m.floors {
		if f.BuildingID == buildingID && f.FloorNumber == floorNumber {
			floor := f
			return &floor, nil
		}
	}
	return nil, nil
}

func (r *memoryFloors) Insert(_ context.Context, floor *models.Floor) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, f := range r.m.floors {
		if f.BuildingID == floor.BuildingID && f.FloorNumber == floor.FloorNumber {
			return apperr.Conflict("floor already exists")
		}
	}
	r.m.stamp(&floor.BaseModel)
	r.m.floors[floor.ID] = *floor
	return nil
}

func (r *memoryFloors) Restore(_ context.Context, id uint, floor *models.Floor) (*models.Floor, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	f, ok := r.m.floors[id]
	if !ok || !f.IsDeleted {
		return nil, apperr.NotFound("deleted floor not found")
	}
	f.TotalApartments = floor.TotalApartments
	f.Description = floor.Description
	f.IsDeleted = false
	f.UpdatedAt = time.Now()
	r.m.floors[id] = f
	return &f, nil
}

func (r *memoryFloors) FindByID(_ context.Context, id uint) (*models.Floor, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	floor, ok := r.m.floors[id]
	if !ok {
		return nil, apperr.NotFound("floor not found")
	}
	return &floor, nil
}

func (r *memoryFloors) ListByBuilding(_ context.Context, buildingID uint) ([]models.Floor, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	floors := []models.Floor{}
	for _, f := range r.m.floors {
		if f.BuildingID == buildingID && !f.IsDeleted {
			floors = append(floors, f)
		}
	}
	sort.Slice(floors, func(i, j int) bool { return floors[i].FloorNumber < floors[j].FloorNumber })
	return floors, nil
}

func (r *memoryFloors) Update(_ context.Context, id uint, updates map[string]interface{}) (*models.Floor, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	f, ok := r.m.floors[id]
	if !ok || f.IsDeleted {
		return nil, apperr.NotFound("floor not found")
	}
	for column, value := range updates {
		switch column {
		case "floor_number":
			number := value.(int)
			for otherID, other := range r.m.floors {
				if otherID != id && other.BuildingID == f.BuildingID && other.FloorNumber == number {
					return nil, apperr.Conflict("floor already exists")
				}
			}
			f.FloorNumber = number
		case "total_apartments":
			f.TotalApartments = value.(int)
		case "description":
			f.Description = value.(string)
		}
	}
	f.UpdatedAt = time.Now()
	r.m.floors[id] = f
	return &f, nil
}

func (r *memoryFloors) SoftDelete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	f, ok := r.m.floors[id]
	if !ok || f.IsDeleted {
		return apperr.NotFound("floor not found")
	}
	f.IsDeleted = true
	r.m.floors[id] = f
	return nil
}

func (r *memoryFloors) HardDelete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.floors[id]; !ok {
		return apperr.NotFound("floor not found")
	}
	for _, a := range r.m.apartments {
		if a.FloorID == id {
			return apperr.HasDependents("floor is still referenced")
		}
	}
	delete(r.m.floors, id)
	return nil
}

func (r *memoryFloors) CountApartments(_ context.Context, floorID uint) (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var count int64
	for _, a := range r.m.apartments {
		if a.FloorID == floorID {
			count++
		}
	}
	return count, nil
}

// ---- apartments ----

type memoryApartments struct{ m *memoryDB }

func (r *memoryApartments) FindByKey(_ context.Context, floorID uint, number string) (*models.Apartment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, a := range r.m.apartments {
		if a.FloorID == floorID && a.ApartmentNumber == number {
			apartment := a
			return &apartment, nil
		}
	}
	return nil, nil
}

func (r *memoryApartments) Insert(_ context.Context, apartment *models.Apartment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, a := range r.m.apartments {
		if a.FloorID == apartment.FloorID && a.ApartmentNumber == apartment.ApartmentNumber {
			return apperr.Conflict("apartment already exists")
		}
	}
	r.m.stamp(&apartment.BaseModel)
	r.m.apartments[apartment.ID] = *apartment
	return nil
}

func (r *memoryApartments) Restore(_ context.Context, id uint, apartment *models.Apartment) (*models.Apartment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	a, ok := r.m.apartments[id]
	if !ok || !a.IsDeleted {
		return nil, apperr.NotFound("deleted apartment not found")
	}
	a.OwnerName = apartment.OwnerName
	a.Area = apartment.Area
	a.Rooms = apartment.Rooms
	a.Description = apartment.Description
	a.IsDeleted = false
	a.UpdatedAt = time.Now()
	r.m.apartments[id] = a
	return &a, nil
}

func (r *memoryApartments) FindByID(_ context.Context, id uint) (*models.Apartment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	apartment, ok := r.m.apartments[id]
	if !ok {
		return nil, apperr.NotFound("apartment not found")
	}
	return &apartment, nil
}

func (r *memoryApartments) ListByFloor(_ context.Context, floorID uint) ([]models.Apartment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	floorNumber := r.m.floors[floorID].FloorNumber
	apartments := []models.Apartment{}
	for _, a := range r.m.apartments {
		if a.FloorID == floorID && !a.IsDeleted {
			a.FloorNumber = floorNumber
			apartments = append(apartments, a)
		}
	}
	sort.Slice(apartments, func(i, j int) bool {
		return apartments[i].ApartmentNumber < apartments[j].ApartmentNumber
	})
	return apartments, nil
}

func (r *memoryApartments) Update(_ context.Context, id uint, updates map[string]interface{}) (*models.Apartment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	a, ok := r.m.apartments[id]
	if !ok || a.IsDeleted {
		return nil, apperr.NotFound("apartment not found")
	}
	for column, value := range updates {
		switch column {
		case "apartment_number":
			number := value.(string)
			for otherID, other := range r.m.apartments {
				if otherID != id && other.FloorID == a.FloorID && other.ApartmentNumber == number {
					return nil, apperr.Conflict("apartment already exists")
				}
			}
			a.ApartmentNumber = number
		case "owner_name":
			a.OwnerName = value.(string)
		case "area":
			a.Area = value.(decimal.Decimal)
		case "rooms":
			a.Rooms = value.(int)
		case "description":
			a.Description = value.(string)
		}
	}
	a.UpdatedAt = time.Now()
	r.m.apartments[id] = a
	return &a, nil
}

func (r *memoryApartments) SoftDelete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	a, ok := r.m.apartments[id]
	if !ok || a.IsDeleted {
		return apperr.NotFound("apartment not found")
	}
	a.IsDeleted = true
	r.m.apartments[id] = a
	return nil
}

func (r *memoryApartments) HardDelete(_ context.Context, id uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.apartments[id]; !ok {
		return apperr.NotFound("apartment not found")
	}
	if r.m.hasLedgerEntries(id) {
		return apperr.HasDependents("apartment is still referenced")
	}
	delete(r.m.apartments, id)
	return nil
}

func (r *memoryApartments) CountLedgerEntries(_ context.Context, apartmentID uint) (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var count int64
	for _, o := range r.m.obligations {
		if o.ApartmentID == apartmentID {
			count++
		}
	}
	for _, d := range r.m.deposits {
		if d.ApartmentID == apartmentID {
			count++
		}
	}
	return count, nil
}

// hasLedgerEntries 调用方需持有锁
func (m *memoryDB) hasLedgerEntries(apartmentID uint) bool {
	for _, o := range m.obligations {
		if o.ApartmentID == apartmentID {
			return true
		}
	}
	for _, d := range m.deposits {
		if d.ApartmentID == apartmentID {
			return true
		}
	}
	return false
}

func (r *memoryApartments) BuildingIDOf(_ context.Context, apartmentID uint) (uint, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	a, ok := r.m.apartments[apartmentID]
	if !ok {
		return 0, apperr.NotFound("apartment not found")
	}
	f, ok := r.m.floors[a.FloorID]
	if !ok {
		return 0, apperr.NotFound("apartment not found")
	}
	return f.BuildingID, nil
}

func (r *memoryApartments) ListActiveIDsByBuilding(_ context.Context, buildingID uint) ([]uint, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	ids := []uint{}
	for _, id := range sortedIDs(r.m.apartments) {
		a := r.m.apartments[id]
		f, ok := r.m.floors[a.FloorID]
		if ok && f.BuildingID == buildingID && !f.IsDeleted && !a.IsDeleted {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// activeInBuilding 公寓及其楼层均未删除且属于该楼宇，调用方需持有读锁
func (m *memoryDB) activeInBuilding(apartmentID, buildingID uint) bool {
	a, ok := m.apartments[apartmentID]
	if !ok || a.IsDeleted {
		return false
	}
	f, ok := m.floors[a.FloorID]
	return ok && f.BuildingID == buildingID && !f.IsDeleted
}

// ---- ledger ----

type memoryLedger struct{ m *memoryDB }

func (r *memoryLedger) ListDeposits(_ context.Context, apartmentID uint) ([]models.Deposit, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	deposits := []models.Deposit{}
	for _, d := range r.m.deposits {
		if d.ApartmentID == apartmentID && !d.IsDeleted {
			deposits = append(deposits, d)
		}
	}
	sort.Slice(deposits, func(i, j int) bool { return deposits[i].Date.After(deposits[j].Date) })
	return deposits, nil
}

func (r *memoryLedger) CreateDeposit(_ context.Context, deposit *models.Deposit) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.stamp(&deposit.BaseModel)
	r.m.deposits[deposit.ID] = *deposit
	return nil
}

func (r *memoryLedger) SoftDeleteDeposit(_ context.Context, apartmentID, depositID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	d, ok := r.m.deposits[depositID]
	if !ok || d.ApartmentID != apartmentID || d.IsDeleted {
		return apperr.NotFound("deposit not found")
	}
	d.IsDeleted = true
	r.m.deposits[depositID] = d
	return nil
}

func (r *memoryLedger) ListObligations(_ context.Context, apartmentID uint) ([]models.Obligation, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	obligations := []models.Obligation{}
	for _, o := range r.m.obligations {
		if o.ApartmentID == apartmentID && !o.IsDeleted {
			obligations = append(obligations, o)
		}
	}
	sort.Slice(obligations, func(i, j int) bool { return obligations[i].DueDate.Before(obligations[j].DueDate) })
	return obligations, nil
}

func (r *memoryLedger) FindObligation(_ context.Context, id uint) (*models.Obligation, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	o, ok := r.m.obligations[id]
	if !ok || o.IsDeleted {
		return nil, apperr.NotFound("obligation not found")
	}
	return &o, nil
}

func (r *memoryLedger) CreateObligation(_ context.Context, obligation *models.Obligation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.stamp(&obligation.BaseModel)
	r.m.obligations[obligation.ID] = *obligation
	return nil
}

func (r *memoryLedger) CreateObligations(_ context.Context, obligations []models.Obligation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for i := range obligations {
		if _, ok := r.m.apartments[obligations[i].ApartmentID]; !ok {
			return apperr.NotFound("apartment not found")
		}
	}
	for i := range obligations {
		r.m.stamp(&obligations[i].BaseModel)
		r.m.obligations[obligations[i].ID] = obligations[i]
	}
	return nil
}

func (r *memoryLedger) SetObligationPayment(_ context.Context, id uint, isPaid bool, paymentDate *time.Time) (*models.Obligation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	o, ok := r.m.obligations[id]
	if !ok || o.IsDeleted {
		return nil, apperr.NotFound("obligation not found")
	}
	o.IsPaid = isPaid
	o.PaymentDate = paymentDate
	o.UpdatedAt = time.Now()
	r.m.obligations[id] = o
	return &o, nil
}

func (r *memoryLedger) Totals(_ context.Context, buildingID uint) (deposits, paid, unpaid decimal.Decimal, err error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, d := range r.m.deposits {
		if !d.IsDeleted && r.m.activeInBuilding(d.ApartmentID, buildingID) {
			deposits = deposits.Add(d.Amount)
		}
	}
	for _, o := range r.m.obligations {
		if o.IsDeleted || !r.m.activeInBuilding(o.ApartmentID, buildingID) {
			continue
		}
		if o.IsPaid {
			paid = paid.Add(o.Amount)
		} else {
			unpaid = unpaid.Add(o.Amount)
		}
	}
	return
}

// ---- expenses ----

type memoryExpenses struct{ m *memoryDB }

func (r *memoryExpenses) ListTypes(_ context.Context) ([]models.ExpenseType, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	types := []models.ExpenseType{}
	for _, t := range r.m.types {
		if !t.IsDeleted {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return types, nil
}

func (r *memoryExpenses) FindType(_ context.Context, id uint) (*models.ExpenseType, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	t, ok := r.m.types[id]
	if !ok || t.IsDeleted {
		return nil, apperr.NotFound("expense type not found")
	}
	return &t, nil
}

func (r *memoryExpenses) EnsureTypes(_ context.Context, names []string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	existing := make(map[string]bool, len(r.m.types))
	for _, t := range r.m.types {
		existing[t.Name] = true
	}
	for _, name := range names {
		if existing[name] {
			continue
		}
		t := models.ExpenseType{Name: name}
		r.m.stamp(&t.BaseModel)
		r.m.types[t.ID] = t
		existing[name] = true
	}
	return nil
}

func (r *memoryExpenses) ListByBuilding(_ context.Context, buildingID uint) ([]models.BuildingExpense, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	expenses := []models.BuildingExpense{}
	for _, e := range r.m.expenses {
		if e.BuildingID == buildingID && !e.IsDeleted {
			e.ExpenseTypeName = r.m.types[e.ExpenseTypeID].Name
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

func (r *memoryExpenses) Create(_ context.Context, expense *models.BuildingExpense) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	r.m.stamp(&expense.BaseModel)
	r.m.expenses[expense.ID] = *expense
	return nil
}

func (r *memoryExpenses) SoftDelete(_ context.Context, buildingID, expenseID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	e, ok := r.m.expenses[expenseID]
	if !ok || e.BuildingID != buildingID || e.IsDeleted {
		return apperr.NotFound("expense not found")
	}
	e.IsDeleted = true
	r.m.expenses[expenseID] = e
	return nil
}

func (r *memoryExpenses) Total(_ context.Context, buildingID uint) (decimal.Decimal, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	total := decimal.Zero
	for _, e := range r.m.expenses {
		if e.BuildingID == buildingID && !e.IsDeleted {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}
