// Package storage expone la fachada de persistencia de doble backend:
// PostgreSQL remoto cuando hay conexión configurada y el servidor responde,
// blobs JSON locales como respaldo. Las lecturas caen al local en silencio
// (solo un warn en el log); las escrituras que caen al local devuelven un
// aviso visible porque los datos divergieron del remoto.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/localstore"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// Backends posibles de una escritura.
const (
	BackendRemote = "remote"
	BackendLocal  = "local"
)

// WarnRemoteWriteFailed aviso que viaja al cliente cuando una escritura
// remota falló y se guardó en local.
const WarnRemoteWriteFailed = "No se pudo guardar en el servidor; los datos quedaron guardados localmente"

// WriteReceipt resultado de una escritura: en qué backend terminó y si hay
// aviso que mostrar al usuario.
type WriteReceipt struct {
	Backend string
	Warning string
}

// ImportFn callback de importación por lotes. En remoto se ejecuta dentro de
// una transacción; en local los repos escriben secuencialmente.
type ImportFn func(
	saleRepo repository.SaleRepository,
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) error

// txRunner abstrae el runner transaccional de postgres para poder inyectar
// uno de prueba.
type txRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// Facade fachada de persistencia. Todos los usecases pasan por aquí.
type Facade struct {
	log   *logger.Logger
	store *localstore.Store

	localSales *localstore.SaleRepo
	localItems *localstore.StockItemRepo
	localMovs  *localstore.MovementRepo
	localUsers *localstore.UserRepo

	// nil cuando no hay base remota configurada
	remoteSales repository.SaleRepository
	remoteItems repository.StockItemRepository
	remoteMovs  repository.StockMovementRepository
	remoteUsers repository.UserRepository
	tx          txRunner
}

// New construye la fachada. pool puede ser nil: modo solo local.
func New(store *localstore.Store, pool *pgxpool.Pool, log *logger.Logger) *Facade {
	f := &Facade{
		log:        log,
		store:      store,
		localSales: localstore.NewSaleRepository(store),
		localItems: localstore.NewStockItemRepository(store),
		localMovs:  localstore.NewMovementRepository(store),
		localUsers: localstore.NewUserRepository(store),
	}
	if pool != nil {
		f.remoteSales = postgres.NewSaleRepository(pool)
		f.remoteItems = postgres.NewStockItemRepository(pool)
		f.remoteMovs = postgres.NewMovementRepository(pool)
		f.remoteUsers = postgres.NewUserRepository(pool)
		f.tx = postgres.NewTxRunner(pool)
	}
	return f
}

// Remote indica si hay backend remoto configurado.
func (f *Facade) Remote() bool { return f.remoteSales != nil }

// ReadOnly devuelve la bandera persistida de solo lectura.
func (f *Facade) ReadOnly() (bool, error) { return f.store.ReadOnly() }

// SetReadOnly activa o desactiva el modo solo lectura.
func (f *Facade) SetReadOnly(v bool) error { return f.store.SetReadOnly(v) }

// guardWrite rechaza mutaciones en modo solo lectura.
func (f *Facade) guardWrite() error {
	ro, err := f.store.ReadOnly()
	if err != nil {
		return err
	}
	if ro {
		return domain.ErrReadOnly
	}
	return nil
}

// isBusinessError distingue errores de negocio (no caen al local: el cliente
// debe corregir la petición) de fallos de infraestructura (sí caen).
func isBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound, domain.ErrDuplicate, domain.ErrEmailAlreadyExists,
		domain.ErrInvalidInput, domain.ErrForeignKey, domain.ErrForbidden,
		domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// write ejecuta una mutación con la política de respaldo: remoto primero,
// local con aviso si el remoto falla por infraestructura.
func (f *Facade) write(op string, remoteFn, localFn func() error) (WriteReceipt, error) {
	if err := f.guardWrite(); err != nil {
		return WriteReceipt{}, err
	}
	if f.Remote() {
		err := remoteFn()
		if err == nil {
			return WriteReceipt{Backend: BackendRemote}, nil
		}
		if isBusinessError(err) {
			return WriteReceipt{}, err
		}
		f.log.Warn().Err(err).Str("op", op).Msg("escritura remota falló; guardando en local")
		if lerr := localFn(); lerr != nil {
			return WriteReceipt{}, fmt.Errorf("respaldo local tras fallo remoto: %w", lerr)
		}
		return WriteReceipt{Backend: BackendLocal, Warning: WarnRemoteWriteFailed}, nil
	}
	if err := localFn(); err != nil {
		return WriteReceipt{}, err
	}
	return WriteReceipt{Backend: BackendLocal}, nil
}

// ─── Ventas ──────────────────────────────────────────────────────────────

// CreateSale persiste una venta.
func (f *Facade) CreateSale(sale *entity.Sale) (WriteReceipt, error) {
	return f.write("create_sale",
		func() error { return f.remoteSales.Create(sale) },
		func() error { return f.localSales.Create(sale) },
	)
}

// GetSale obtiene una venta; inexistente devuelve (nil, nil).
func (f *Facade) GetSale(id string) (*entity.Sale, error) {
	if f.Remote() {
		sale, err := f.remoteSales.GetByID(id)
		if err == nil {
			return sale, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localSales.GetByID(id)
}

// ListSales lista las ventas del usuario.
func (f *Facade) ListSales(ownerID string) ([]*entity.Sale, error) {
	if f.Remote() {
		sales, err := f.remoteSales.ListByOwner(ownerID)
		if err == nil {
			return sales, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localSales.ListByOwner(ownerID)
}

// UpdateSale actualiza una venta existente.
func (f *Facade) UpdateSale(sale *entity.Sale) (WriteReceipt, error) {
	return f.write("update_sale",
		func() error { return f.remoteSales.Update(sale) },
		func() error { return f.localSales.Update(sale) },
	)
}

// DeleteSale elimina una venta. No repone stock.
func (f *Facade) DeleteSale(id string) (WriteReceipt, error) {
	return f.write("delete_sale",
		func() error { return f.remoteSales.Delete(id) },
		func() error { return f.localSales.Delete(id) },
	)
}

// ─── Stock ───────────────────────────────────────────────────────────────

// CreateItem persiste un producto.
func (f *Facade) CreateItem(item *entity.StockItem) (WriteReceipt, error) {
	return f.write("create_item",
		func() error { return f.remoteItems.Create(item) },
		func() error { return f.localItems.Create(item) },
	)
}

// GetItem obtiene un producto; inexistente devuelve (nil, nil).
func (f *Facade) GetItem(id string) (*entity.StockItem, error) {
	if f.Remote() {
		it, err := f.remoteItems.GetByID(id)
		if err == nil {
			return it, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localItems.GetByID(id)
}

// GetItemByName busca un producto por nombre exacto dentro del usuario.
func (f *Facade) GetItemByName(ownerID, name string) (*entity.StockItem, error) {
	if f.Remote() {
		it, err := f.remoteItems.GetByOwnerAndName(ownerID, name)
		if err == nil {
			return it, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localItems.GetByOwnerAndName(ownerID, name)
}

// ListItems lista los productos del usuario.
func (f *Facade) ListItems(ownerID string) ([]*entity.StockItem, error) {
	if f.Remote() {
		items, err := f.remoteItems.ListByOwner(ownerID)
		if err == nil {
			return items, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localItems.ListByOwner(ownerID)
}

// UpdateItem actualiza los datos de un producto.
func (f *Facade) UpdateItem(item *entity.StockItem) (WriteReceipt, error) {
	return f.write("update_item",
		func() error { return f.remoteItems.Update(item) },
		func() error { return f.localItems.Update(item) },
	)
}

// UpdateStock ajusta el stock actual de un producto.
func (f *Facade) UpdateStock(id string, currentStock int) (WriteReceipt, error) {
	return f.write("update_stock",
		func() error { return f.remoteItems.UpdateStock(id, currentStock) },
		func() error { return f.localItems.UpdateStock(id, currentStock) },
	)
}

// DeleteItem elimina un producto.
func (f *Facade) DeleteItem(id string) (WriteReceipt, error) {
	return f.write("delete_item",
		func() error { return f.remoteItems.Delete(id) },
		func() error { return f.localItems.Delete(id) },
	)
}

// ─── Movimientos ─────────────────────────────────────────────────────────

// CreateMovement registra un movimiento en el log (append-only).
func (f *Facade) CreateMovement(mov *entity.StockMovement) (WriteReceipt, error) {
	return f.write("create_movement",
		func() error { return f.remoteMovs.Create(mov) },
		func() error { return f.localMovs.Create(mov) },
	)
}

// ListMovements lista los movimientos del usuario.
func (f *Facade) ListMovements(ownerID string) ([]*entity.StockMovement, error) {
	if f.Remote() {
		movs, err := f.remoteMovs.ListByOwner(ownerID)
		if err == nil {
			return movs, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localMovs.ListByOwner(ownerID)
}

// ─── Usuarios ────────────────────────────────────────────────────────────

// CreateUser persiste un usuario nuevo.
func (f *Facade) CreateUser(user *entity.User) (WriteReceipt, error) {
	return f.write("create_user",
		func() error { return f.remoteUsers.Create(user) },
		func() error { return f.localUsers.Create(user) },
	)
}

// FindUserByEmail busca un usuario por email.
func (f *Facade) FindUserByEmail(email string) (*entity.User, error) {
	if f.Remote() {
		u, err := f.remoteUsers.FindByEmail(email)
		if err == nil {
			return u, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localUsers.FindByEmail(email)
}

// GetUser obtiene un usuario por ID.
func (f *Facade) GetUser(id string) (*entity.User, error) {
	if f.Remote() {
		u, err := f.remoteUsers.GetByID(id)
		if err == nil {
			return u, nil
		}
		f.log.Warn().Err(err).Msg("lectura remota falló; leyendo de local")
	}
	return f.localUsers.GetByID(id)
}

// ─── Importación por lotes ───────────────────────────────────────────────

// RunImport ejecuta el commit de una importación. En remoto todo el lote va
// en una transacción (todo o nada); si la transacción falla por
// infraestructura el lote completo se reintenta contra el local con aviso.
func (f *Facade) RunImport(ctx context.Context, fn ImportFn) (WriteReceipt, error) {
	if err := f.guardWrite(); err != nil {
		return WriteReceipt{}, err
	}
	if f.tx != nil {
		err := f.tx.Run(ctx, fn)
		if err == nil {
			return WriteReceipt{Backend: BackendRemote}, nil
		}
		if isBusinessError(err) {
			return WriteReceipt{}, err
		}
		f.log.Warn().Err(err).Msg("importación remota falló; guardando el lote en local")
		if lerr := fn(f.localSales, f.localItems, f.localMovs); lerr != nil {
			return WriteReceipt{}, fmt.Errorf("respaldo local tras fallo remoto: %w", lerr)
		}
		return WriteReceipt{Backend: BackendLocal, Warning: WarnRemoteWriteFailed}, nil
	}
	if err := fn(f.localSales, f.localItems, f.localMovs); err != nil {
		return WriteReceipt{}, err
	}
	return WriteReceipt{Backend: BackendLocal}, nil
}

// ─── Migración local → remoto ────────────────────────────────────────────

// MigrateIfNeeded sube al remoto, una sola vez, los datos acumulados en local
// antes del primer login. Los registros locales sin dueño se estampan con el
// usuario que inicia sesión. Idempotente vía la bandera persistida.
func (f *Facade) MigrateIfNeeded(ctx context.Context, ownerID string) error {
	if !f.Remote() {
		return nil
	}
	done, err := f.store.Migrated()
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	sales, err := f.localSales.ListByOwner(ownerID)
	if err != nil {
		return err
	}
	items, err := f.localItems.ListByOwner(ownerID)
	if err != nil {
		return err
	}
	movs, err := f.localMovs.ListByOwner(ownerID)
	if err != nil {
		return err
	}
	if len(sales) == 0 && len(items) == 0 && len(movs) == 0 {
		return f.store.SetMigrated(true)
	}

	err = f.tx.Run(ctx, func(
		saleRepo repository.SaleRepository,
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		for _, it := range items {
			it.OwnerID = ownerID
			if err := itemRepo.Create(it); err != nil {
				return err
			}
		}
		for _, s := range sales {
			s.OwnerID = ownerID
			if err := saleRepo.Create(s); err != nil {
				return err
			}
		}
		for _, m := range movs {
			m.OwnerID = ownerID
			if err := movRepo.Create(m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("migrar datos locales al remoto: %w", err)
	}

	f.log.Info().
		Int("sales", len(sales)).
		Int("items", len(items)).
		Int("movements", len(movs)).
		Msg("datos locales migrados al remoto")
	return f.store.SetMigrated(true)
}
