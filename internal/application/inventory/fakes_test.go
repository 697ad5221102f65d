package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/entity"
	"github.com/antonyto02/nexsoft-inventory/internal/domain/repository"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un almacén compartido, repos que lo leen y un TxRunner que
// serializa las transacciones como lo haría el lock de fila en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	products   map[int64]*entity.Product
	entries    map[int64]*entity.StockEntry
	movements  []*entity.Movement
	nextEntry  int64
	nextMov    int64
	failCreate bool // fuerza el fallo del insert de movimientos
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[int64]*entity.Product),
		entries:  make(map[int64]*entity.StockEntry),
	}
}

func (s *memStore) addProduct(p *entity.Product) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[cp.ID] = &cp
	return &cp
}

func (s *memStore) stockOf(id int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func (s *memStore) openEntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.DeletedAt == nil {
			n++
		}
	}
	return n
}

// testProduct producto manual activo con stock inicial.
func testProduct(id int64, stock float64) *entity.Product {
	return &entity.Product{
		ID:         id,
		CompanyID:  "company-1",
		Name:       "Tequila blanco",
		Stock:      decimal.NewFromFloat(stock),
		MinStock:   decimal.NewFromInt(5),
		SensorType: entity.SensorManual,
		IsActive:   true,
		Unit:       entity.Unit{ID: 1, Name: "pieza", AllowsDecimals: false},
		Category:   entity.Category{ID: 1, Name: "Licores"},
		UpdatedAt:  time.Now(),
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ── Repos ─────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := int64(len(r.s.products) + 1)
	cp := *p
	cp.ID = id
	r.s.products[id] = &cp
	return id, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id int64, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		now := time.Now()
		p.DeletedAt = &now
		p.IsActive = false
	}
	return nil
}

func (r *fakeProductRepo) list(companyID string, keep func(*entity.Product) bool) []*entity.Product {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.DeletedAt != nil || p.CompanyID != companyID {
			continue
		}
		if keep == nil || keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeProductRepo) List(_ context.Context, companyID string, _ repository.ProductFilter) ([]*entity.Product, error) {
	return r.list(companyID, nil), nil
}

func (r *fakeProductRepo) SearchByName(_ context.Context, companyID, _ string, _, _ int) ([]*entity.Product, error) {
	return r.list(companyID, nil), nil
}

func (r *fakeProductRepo) ListOutOfStock(_ context.Context, companyID string, _ int) ([]*entity.Product, error) {
	return r.list(companyID, func(p *entity.Product) bool { return p.Stock.IsZero() }), nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context, companyID string, _ int) ([]*entity.Product, error) {
	return r.list(companyID, func(p *entity.Product) bool {
		return p.Stock.GreaterThan(decimal.Zero) && p.Stock.LessThan(p.MinStock)
	}), nil
}

func (r *fakeProductRepo) ListNearMinimum(_ context.Context, companyID string, _ int) ([]*entity.Product, error) {
	return r.list(companyID, func(p *entity.Product) bool {
		return p.Stock.GreaterThanOrEqual(p.MinStock) && p.Stock.LessThanOrEqual(p.MinStock.Add(decimal.NewFromInt(1)))
	}), nil
}

func (r *fakeProductRepo) ListOverstock(_ context.Context, companyID string, _ int) ([]*entity.Product, error) {
	return r.list(companyID, func(p *entity.Product) bool {
		return p.MaxStock != nil && p.Stock.GreaterThan(*p.MaxStock)
	}), nil
}

func (r *fakeProductRepo) ListAlphabetical(_ context.Context, companyID string, _ int) ([]*entity.Product, error) {
	return r.list(companyID, nil), nil
}

type fakeEntryRepo struct{ s *memStore }

func (r *fakeEntryRepo) Create(_ context.Context, e *entity.StockEntry) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.entries {
		if ex.DeletedAt == nil && ex.RfidTag == e.RfidTag {
			return 0, domain.ErrDuplicate
		}
	}
	r.s.nextEntry++
	cp := *e
	cp.ID = r.s.nextEntry
	cp.CreatedAt = time.Now()
	r.s.entries[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeEntryRepo) GetOpenByTag(_ context.Context, tag string) (*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entries {
		if e.DeletedAt == nil && e.RfidTag == tag {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) GetOpenByTagForUpdate(ctx context.Context, tag string) (*entity.StockEntry, error) {
	return r.GetOpenByTag(ctx, tag)
}

func (r *fakeEntryRepo) SoftDelete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.entries[id]; ok {
		now := time.Now()
		e.DeletedAt = &now
	}
	return nil
}

func (r *fakeEntryRepo) NextExpiration(_ context.Context, productID int64) (*time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var next *time.Time
	for _, e := range r.s.entries {
		if e.DeletedAt != nil || e.ProductID != productID || e.ExpirationDate == nil {
			continue
		}
		if next == nil || e.ExpirationDate.Before(*next) {
			d := *e.ExpirationDate
			next = &d
		}
	}
	return next, nil
}

func (r *fakeEntryRepo) CountExpiring(_ context.Context, productID int64, before time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.entries {
		if e.DeletedAt == nil && e.ProductID == productID && e.ExpirationDate != nil && !e.ExpirationDate.After(before) {
			n++
		}
	}
	return n, nil
}

func (r *fakeEntryRepo) ListExpiring(_ context.Context, companyID string, before time.Time, limit int) ([]*repository.ExpiringEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*repository.ExpiringEntry
	for _, e := range r.s.entries {
		if e.DeletedAt != nil || e.ExpirationDate == nil || e.ExpirationDate.After(before) {
			continue
		}
		p, ok := r.s.products[e.ProductID]
		if !ok || p.DeletedAt != nil || p.CompanyID != companyID {
			continue
		}
		out = append(out, &repository.ExpiringEntry{Entry: *e, Product: *p})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Entry.ExpirationDate.Before(*out[j].Entry.ExpirationDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCreate {
		return 0, domain.ErrUpstream
	}
	r.s.nextMov++
	cp := *m
	cp.ID = r.s.nextMov
	r.s.movements = append(r.s.movements, &cp)
	return cp.ID, nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	// Recientes primero, como la consulta real.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ── TxRunner y broadcaster ────────────────────────────────────────────────────

// fakeTxRunner serializa las transacciones con un mutex global, el mismo
// efecto que el SELECT FOR UPDATE produce por producto en la BD real.
type fakeTxRunner struct {
	s    *memStore
	txMu sync.Mutex
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	entryRepo repository.StockEntryRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(&fakeMovementRepo{s: r.s}, &fakeEntryRepo{s: r.s}, &fakeProductRepo{s: r.s})
}

type fakeBroadcaster struct {
	mu      sync.Mutex
	updates []*dto.InventoryUpdate
	tags    []string
}

func (b *fakeBroadcaster) EmitInventoryUpdate(update *dto.InventoryUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates = append(b.updates, update)
}

func (b *fakeBroadcaster) EmitTagDetected(tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tags = append(b.tags, tag)
}

func (b *fakeBroadcaster) updateCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.updates)
}

func (b *fakeBroadcaster) lastUpdate() *dto.InventoryUpdate {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.updates) == 0 {
		return nil
	}
	return b.updates[len(b.updates)-1]
}

func (b *fakeBroadcaster) detectedTags() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.tags...)
}

// ── Armado común ──────────────────────────────────────────────────────────────

type fixture struct {
	store       *memStore
	products    *fakeProductRepo
	entries     *fakeEntryRepo
	movements   *fakeMovementRepo
	broadcaster *fakeBroadcaster
	recorder    *RecordMovementUseCase
}

func newFixture() *fixture {
	store := newMemStore()
	broadcaster := &fakeBroadcaster{}
	entries := &fakeEntryRepo{s: store}
	recorder := NewRecordMovementUseCase(&fakeTxRunner{s: store}, entries, broadcaster, testLogger())
	return &fixture{
		store:       store,
		products:    &fakeProductRepo{s: store},
		entries:     entries,
		movements:   &fakeMovementRepo{s: store},
		broadcaster: broadcaster,
		recorder:    recorder,
	}
}
