// Package memstore implementa en memoria todos los puertos de persistencia.
// Lo usan los tests de casos de uso y de HTTP; RunOrder replica la semántica transaccional
// (serializa y restaura productos y pedidos si fn falla).
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.ClientRepository   = (*ClientRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
	_ repository.ProviderRepository = (*ProviderRepo)(nil)
)

// Store datos compartidos por todos los repos en memoria.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	users     map[string]entity.User
	products  map[string]entity.Product
	orders    map[string]entity.Order
	orderSeq  []string
	clients   map[string]entity.Client
	employees map[string]entity.Employee
	providers map[string]entity.Provider
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		users:     map[string]entity.User{},
		products:  map[string]entity.Product{},
		orders:    map[string]entity.Order{},
		clients:   map[string]entity.Client{},
		employees: map[string]entity.Employee{},
		providers: map[string]entity.Provider{},
	}
}

func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }
func (s *Store) Products() *ProductRepo   { return &ProductRepo{s: s} }
func (s *Store) Orders() *OrderRepo       { return &OrderRepo{s: s} }
func (s *Store) Clients() *ClientRepo     { return &ClientRepo{s: s} }
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s: s} }
func (s *Store) Providers() *ProviderRepo { return &ProviderRepo{s: s} }

// RunOrder ejecuta fn de forma serializada; si devuelve error restaura productos y pedidos.
func (s *Store) RunOrder(ctx context.Context, fn func(
	ctx context.Context,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	products := maps.Clone(s.products)
	orders := maps.Clone(s.orders)
	seq := slices.Clone(s.orderSeq)
	s.mu.RUnlock()

	if err := fn(ctx, s.Products(), s.Orders()); err != nil {
		s.mu.Lock()
		s.products, s.orders, s.orderSeq = products, orders, seq
		s.mu.Unlock()
		return err
	}
	return nil
}

// ──── Users ──────────────────────────────────────────────────────────────────

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username || u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// ──── Products ───────────────────────────────────────────────────────────────

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.Code]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.Code] = *p
	return nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[code]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetByCodeForUpdate no necesita bloqueo propio: RunOrder ya serializa.
func (r *ProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, code := range slices.Sorted(maps.Keys(r.s.products)) {
		p := r.s.products[code]
		out = append(out, &p)
	}
	return out, nil
}

// Update conserva el stock guardado, igual que los repos reales.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[p.Code]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.Stock = current.Stock
	r.s.products[p.Code] = updated
	return nil
}

func (r *ProductRepo) SetStock(_ context.Context, code string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock = stock
	r.s.products[code] = p
	return nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, code string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	r.s.products[code] = p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[code]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, code)
	return nil
}

// ──── Orders ─────────────────────────────────────────────────────────────────

// OrderRepo repositorio de pedidos en memoria (listados en orden de creación, más reciente primero).
type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.orders[o.ID] = cloneOrder(*o)
	r.s.orderSeq = append(r.s.orderSeq, o.ID)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	c := cloneOrder(o)
	return &c, nil
}

// GetByIDForUpdate equivale a GetByID: RunOrder ya serializa.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	return r.list(func(o entity.Order) bool { return o.UserID == userID }), nil
}

func (r *OrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	return r.list(func(entity.Order) bool { return true }), nil
}

func (r *OrderRepo) list(keep func(entity.Order) bool) []*entity.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Order{}
	for i := len(r.s.orderSeq) - 1; i >= 0; i-- {
		o := r.s.orders[r.s.orderSeq[i]]
		if keep(o) {
			c := cloneOrder(o)
			out = append(out, &c)
		}
	}
	return out
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = o.Status
	stored.UpdatedAt = o.UpdatedAt
	r.s.orders[o.ID] = stored
	return nil
}

func cloneOrder(o entity.Order) entity.Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// ──── Clients ────────────────────────────────────────────────────────────────

// ClientRepo repositorio de clientes en memoria.
type ClientRepo struct{ s *Store }

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return create(&r.s.mu, r.s.clients, c.DNI, *c)
}

func (r *ClientRepo) GetByDNI(_ context.Context, dni string) (*entity.Client, error) {
	return get(&r.s.mu, r.s.clients, dni), nil
}

func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	return list(&r.s.mu, r.s.clients), nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	return update(&r.s.mu, r.s.clients, c.DNI, *c)
}

func (r *ClientRepo) Delete(_ context.Context, dni string) error {
	return remove(&r.s.mu, r.s.clients, dni)
}

// ──── Employees ──────────────────────────────────────────────────────────────

// EmployeeRepo repositorio de empleados en memoria.
type EmployeeRepo struct{ s *Store }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return create(&r.s.mu, r.s.employees, e.Cedula, *e)
}

func (r *EmployeeRepo) GetByCedula(_ context.Context, cedula string) (*entity.Employee, error) {
	return get(&r.s.mu, r.s.employees, cedula), nil
}

func (r *EmployeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	return list(&r.s.mu, r.s.employees), nil
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	return update(&r.s.mu, r.s.employees, e.Cedula, *e)
}

func (r *EmployeeRepo) Delete(_ context.Context, cedula string) error {
	return remove(&r.s.mu, r.s.employees, cedula)
}

// ──── Providers ──────────────────────────────────────────────────────────────

// ProviderRepo repositorio de proveedores en memoria.
type ProviderRepo struct{ s *Store }

func (r *ProviderRepo) Create(_ context.Context, p *entity.Provider) error {
	return create(&r.s.mu, r.s.providers, p.RUC, *p)
}

func (r *ProviderRepo) GetByRUC(_ context.Context, ruc string) (*entity.Provider, error) {
	return get(&r.s.mu, r.s.providers, ruc), nil
}

func (r *ProviderRepo) List(_ context.Context) ([]*entity.Provider, error) {
	return list(&r.s.mu, r.s.providers), nil
}

func (r *ProviderRepo) Update(_ context.Context, p *entity.Provider) error {
	return update(&r.s.mu, r.s.providers, p.RUC, *p)
}

func (r *ProviderRepo) Delete(_ context.Context, ruc string) error {
	return remove(&r.s.mu, r.s.providers, ruc)
}

// ──── helpers genéricos por clave natural ────────────────────────────────────

func create[T any](mu *sync.RWMutex, m map[string]T, key string, v T) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := m[key]; ok {
		return domain.ErrDuplicate
	}
	m[key] = v
	return nil
}

func get[T any](mu *sync.RWMutex, m map[string]T, key string) *T {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := m[key]
	if !ok {
		return nil
	}
	return &v
}

func list[T any](mu *sync.RWMutex, m map[string]T) []*T {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]*T, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v := m[k]
		out = append(out, &v)
	}
	return out
}

func update[T any](mu *sync.RWMutex, m map[string]T, key string, v T) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := m[key]; !ok {
		return domain.ErrNotFound
	}
	m[key] = v
	return nil
}

func remove[T any](mu *sync.RWMutex, m map[string]T, key string) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := m[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m, key)
	return nil
}
