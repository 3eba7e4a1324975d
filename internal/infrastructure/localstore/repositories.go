package localstore

import (
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Adaptadores de los puertos de repositorio sobre el Store. Cada operación
// carga la colección completa, la muta y la reescribe: aceptable al volumen
// de datos de la aplicación (el mismo modelo que usaba el blob local original).

var _ repository.SaleRepository = (*SaleRepo)(nil)
var _ repository.StockItemRepository = (*StockItemRepo)(nil)
var _ repository.StockMovementRepository = (*MovementRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)

// SaleRepo repositorio de ventas sobre el blob local.
type SaleRepo struct{ store *Store }

// NewSaleRepository construye el adaptador local de ventas.
func NewSaleRepository(store *Store) *SaleRepo { return &SaleRepo{store: store} }

func (r *SaleRepo) all() ([]*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var sales []*entity.Sale
	if err := r.store.load(KeySales, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleRepo) replace(sales []*entity.Sale) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.save(KeySales, sales)
}

// Create añade la venta al blob.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	sales, err := r.all()
	if err != nil {
		return err
	}
	return r.replace(append(sales, sale))
}

// GetByID busca una venta; inexistente devuelve (nil, nil).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	sales, err := r.all()
	if err != nil {
		return nil, err
	}
	for _, s := range sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

// ListByOwner lista las ventas del usuario.
func (r *SaleRepo) ListByOwner(ownerID string) ([]*entity.Sale, error) {
	sales, err := r.all()
	if err != nil {
		return nil, err
	}
	var out []*entity.Sale
	for _, s := range sales {
		if s.OwnerID == ownerID || s.OwnerID == "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Update reemplaza la venta con el mismo ID.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	sales, err := r.all()
	if err != nil {
		return err
	}
	for i, s := range sales {
		if s.ID == sale.ID {
			sales[i] = sale
			return r.replace(sales)
		}
	}
	return nil
}

// Delete elimina la venta por ID.
func (r *SaleRepo) Delete(id string) error {
	sales, err := r.all()
	if err != nil {
		return err
	}
	out := sales[:0]
	for _, s := range sales {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return r.replace(out)
}

// StockItemRepo repositorio de productos sobre el blob local.
type StockItemRepo struct{ store *Store }

// NewStockItemRepository construye el adaptador local de stock.
func NewStockItemRepository(store *Store) *StockItemRepo { return &StockItemRepo{store: store} }

func (r *StockItemRepo) all() ([]*entity.StockItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var items []*entity.StockItem
	if err := r.store.load(KeyStock, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *StockItemRepo) replace(items []*entity.StockItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.save(KeyStock, items)
}

// Create añade el producto al blob.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	items, err := r.all()
	if err != nil {
		return err
	}
	return r.replace(append(items, item))
}

// GetByID busca un producto; inexistente devuelve (nil, nil).
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	items, err := r.all()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

// GetByOwnerAndName busca por nombre exacto dentro del usuario.
func (r *StockItemRepo) GetByOwnerAndName(ownerID, name string) (*entity.StockItem, error) {
	items, err := r.all()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if (it.OwnerID == ownerID || it.OwnerID == "") && it.Name == name {
			return it, nil
		}
	}
	return nil, nil
}

// ListByOwner lista los productos del usuario.
func (r *StockItemRepo) ListByOwner(ownerID string) ([]*entity.StockItem, error) {
	items, err := r.all()
	if err != nil {
		return nil, err
	}
	var out []*entity.StockItem
	for _, it := range items {
		if it.OwnerID == ownerID || it.OwnerID == "" {
			out = append(out, it)
		}
	}
	return out, nil
}

// Update reemplaza el producto con el mismo ID.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	items, err := r.all()
	if err != nil {
		return err
	}
	for i, it := range items {
		if it.ID == item.ID {
			items[i] = item
			return r.replace(items)
		}
	}
	return nil
}

// UpdateStock cambia solo CurrentStock del producto.
func (r *StockItemRepo) UpdateStock(id string, currentStock int) error {
	items, err := r.all()
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == id {
			it.CurrentStock = currentStock
			it.UpdatedAt = time.Now()
			return r.replace(items)
		}
	}
	return nil
}

// Delete elimina el producto por ID.
func (r *StockItemRepo) Delete(id string) error {
	items, err := r.all()
	if err != nil {
		return err
	}
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return r.replace(out)
}

// MovementRepo repositorio del log de movimientos sobre el blob local.
type MovementRepo struct{ store *Store }

// NewMovementRepository construye el adaptador local de movimientos.
func NewMovementRepository(store *Store) *MovementRepo { return &MovementRepo{store: store} }

// Create añade el movimiento al log (append-only).
func (r *MovementRepo) Create(mov *entity.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var movs []*entity.StockMovement
	if err := r.store.load(KeyMovements, &movs); err != nil {
		return err
	}
	return r.store.save(KeyMovements, append(movs, mov))
}

// ListByOwner lista los movimientos del usuario.
func (r *MovementRepo) ListByOwner(ownerID string) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var movs []*entity.StockMovement
	if err := r.store.load(KeyMovements, &movs); err != nil {
		return nil, err
	}
	var out []*entity.StockMovement
	for _, m := range movs {
		if m.OwnerID == ownerID || m.OwnerID == "" {
			out = append(out, m)
		}
	}
	return out, nil
}

// UserRepo repositorio de usuarios sobre el blob local (modo sin remoto).
type UserRepo struct{ store *Store }

// NewUserRepository construye el adaptador local de usuarios.
func NewUserRepository(store *Store) *UserRepo { return &UserRepo{store: store} }

// Create añade el usuario al blob.
func (r *UserRepo) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var users []*entity.User
	if err := r.store.load(KeyUsers, &users); err != nil {
		return err
	}
	return r.store.save(KeyUsers, append(users, user))
}

// GetByID busca un usuario; inexistente devuelve (nil, nil).
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var users []*entity.User
	if err := r.store.load(KeyUsers, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// FindByEmail busca un usuario por email; inexistente devuelve (nil, nil).
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var users []*entity.User
	if err := r.store.load(KeyUsers, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
