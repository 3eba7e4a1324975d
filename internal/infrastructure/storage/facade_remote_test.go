package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/localstore"
)

// errRemoteDown simula un fallo de infraestructura (servidor inalcanzable).
var errRemoteDown = errors.New("dial tcp 10.0.0.1:5432: connect: connection refused")

// ─── repos remotos de prueba ───────────────────────────────────────────────

// brokenSales responde a todo con el mismo error.
type brokenSales struct{ err error }

func (r brokenSales) Create(*entity.Sale) error                  { return r.err }
func (r brokenSales) GetByID(string) (*entity.Sale, error)       { return nil, r.err }
func (r brokenSales) ListByOwner(string) ([]*entity.Sale, error) { return nil, r.err }
func (r brokenSales) Update(*entity.Sale) error                  { return r.err }
func (r brokenSales) Delete(string) error                        { return r.err }

type brokenItems struct{ err error }

func (r brokenItems) Create(*entity.StockItem) error            { return r.err }
func (r brokenItems) GetByID(string) (*entity.StockItem, error) { return nil, r.err }
func (r brokenItems) GetByOwnerAndName(string, string) (*entity.StockItem, error) {
	return nil, r.err
}
func (r brokenItems) ListByOwner(string) ([]*entity.StockItem, error) { return nil, r.err }
func (r brokenItems) Update(*entity.StockItem) error                  { return r.err }
func (r brokenItems) UpdateStock(string, int) error                   { return r.err }
func (r brokenItems) Delete(string) error                             { return r.err }

// fakeTx ejecuta el callback contra los repos dados, o falla de plano.
type fakeTx struct {
	err   error
	sales repository.SaleRepository
	items repository.StockItemRepository
	movs  repository.StockMovementRepository
}

func (t fakeTx) Run(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if t.err != nil {
		return t.err
	}
	return fn(t.sales, t.items, t.movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escrituras con remoto caído
// ──────────────────────────────────────────────────────────────────────────────

// Un fallo de infraestructura en el remoto no pierde la escritura: cae al
// local y el recibo lleva el aviso visible de divergencia.
func TestFacade_EscrituraRemotaFallidaCaeALocalConAviso(t *testing.T) {
	f := newLocalFacade(t)
	f.remoteSales = brokenSales{err: errRemoteDown}

	receipt, err := f.CreateSale(&entity.Sale{ID: "sale-1", OwnerID: "user-1", Product: "Café"})
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, receipt.Backend)
	assert.Equal(t, WarnRemoteWriteFailed, receipt.Warning)

	sales, err := f.localSales.ListByOwner("user-1")
	require.NoError(t, err)
	assert.Len(t, sales, 1, "la venta quedó guardada en el respaldo local")
}

// Los errores de negocio vuelven al cliente tal cual: guardarlos en local
// solo escondería una petición incorrecta.
func TestFacade_ErrorDeNegocioRemotoNoCaeALocal(t *testing.T) {
	f := newLocalFacade(t)
	f.remoteItems = brokenItems{err: domain.ErrDuplicate}

	receipt, err := f.CreateItem(&entity.StockItem{ID: "item-1", OwnerID: "user-1", Name: "Café"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, receipt.Backend)
	assert.Empty(t, receipt.Warning)

	items, err := f.localItems.ListByOwner("user-1")
	require.NoError(t, err)
	assert.Empty(t, items, "el error de negocio no debe dejar rastro en local")
}

// Las lecturas caen al local sin aviso: el recibo con warning es solo para
// escrituras.
func TestFacade_LecturaRemotaFallidaCaeALocalEnSilencio(t *testing.T) {
	f := newLocalFacade(t)
	_, err := f.CreateSale(&entity.Sale{ID: "sale-1", OwnerID: "user-1", Product: "Café"})
	require.NoError(t, err)

	f.remoteSales = brokenSales{err: errRemoteDown}

	sales, err := f.ListSales("user-1")
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	got, err := f.GetSale("sale-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Café", got.Product)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación con remoto caído
// ──────────────────────────────────────────────────────────────────────────────

// Si la transacción remota falla por infraestructura, el lote completo se
// reintenta contra el local y el recibo lleva el aviso.
func TestFacade_RunImportRemotoFallidoReintentaEnLocal(t *testing.T) {
	f := newLocalFacade(t)
	f.tx = fakeTx{err: errRemoteDown}

	receipt, err := f.RunImport(context.Background(), func(
		saleRepo repository.SaleRepository,
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		return saleRepo.Create(&entity.Sale{ID: "s-1", OwnerID: "user-1", Product: "Café"})
	})
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, receipt.Backend)
	assert.Equal(t, WarnRemoteWriteFailed, receipt.Warning)

	sales, err := f.ListSales("user-1")
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

// Un error de negocio dentro del lote aborta la importación sin reintento.
func TestFacade_RunImportErrorDeNegocioNoReintenta(t *testing.T) {
	f := newLocalFacade(t)
	f.tx = fakeTx{err: domain.ErrDuplicate}

	_, err := f.RunImport(context.Background(), func(
		repository.SaleRepository, repository.StockItemRepository, repository.StockMovementRepository,
	) error {
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	sales, err := f.ListSales("user-1")
	require.NoError(t, err)
	assert.Empty(t, sales)
}

// ──────────────────────────────────────────────────────────────────────────────
// Migración local → remoto
// ──────────────────────────────────────────────────────────────────────────────

// La migración sube los datos locales al remoto, estampa el dueño en los
// registros sin él y marca la bandera. Una segunda llamada no re-sube nada.
func TestFacade_MigrateSubeYEstampaDueno(t *testing.T) {
	f := newLocalFacade(t)

	// datos acumulados antes del primer login: sin dueño
	require.NoError(t, f.localSales.Create(&entity.Sale{ID: "s-1", Product: "Café"}))
	require.NoError(t, f.localItems.Create(&entity.StockItem{ID: "i-1", Name: "Café", Category: "Bebidas"}))

	remoteStore, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	remoteSales := localstore.NewSaleRepository(remoteStore)
	remoteItems := localstore.NewStockItemRepository(remoteStore)
	remoteMovs := localstore.NewMovementRepository(remoteStore)

	f.remoteSales = remoteSales
	f.tx = fakeTx{sales: remoteSales, items: remoteItems, movs: remoteMovs}

	require.NoError(t, f.MigrateIfNeeded(context.Background(), "user-1"))

	migrated, err := f.store.Migrated()
	require.NoError(t, err)
	assert.True(t, migrated)

	sales, err := remoteSales.ListByOwner("user-1")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "user-1", sales[0].OwnerID, "el registro sin dueño se estampa al migrar")

	items, err := remoteItems.ListByOwner("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "user-1", items[0].OwnerID)

	// idempotente: la bandera evita re-subir el mismo lote
	require.NoError(t, f.MigrateIfNeeded(context.Background(), "user-1"))
	sales, err = remoteSales.ListByOwner("user-1")
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

// Si la subida falla, la bandera queda sin marcar para reintentar en el
// próximo login, y el error se devuelve al llamador.
func TestFacade_MigrateFallidoNoMarcaBandera(t *testing.T) {
	f := newLocalFacade(t)
	require.NoError(t, f.localSales.Create(&entity.Sale{ID: "s-1", Product: "Café"}))

	f.remoteSales = brokenSales{err: errRemoteDown}
	f.tx = fakeTx{err: errRemoteDown}

	err := f.MigrateIfNeeded(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, errRemoteDown)

	migrated, err := f.store.Migrated()
	require.NoError(t, err)
	assert.False(t, migrated, "un fallo de migración debe dejar el reintento abierto")
}

// Con remoto configurado pero sin datos locales no hay nada que subir: la
// bandera se marca directamente.
func TestFacade_MigrateSinDatosLocalesSoloMarcaBandera(t *testing.T) {
	f := newLocalFacade(t)
	f.remoteSales = brokenSales{err: errRemoteDown} // Remote() activo; no debe usarse
	f.tx = fakeTx{err: errRemoteDown}

	require.NoError(t, f.MigrateIfNeeded(context.Background(), "user-1"))

	migrated, err := f.store.Migrated()
	require.NoError(t, err)
	assert.True(t, migrated)
}

// Actualización y borrado comparten la misma política de respaldo que la
// creación: mismo backend y mismo aviso en el recibo.
func TestFacade_TodaEscrituraLlevaLaMismaPolitica(t *testing.T) {
	f := newLocalFacade(t)
	_, err := f.CreateSale(&entity.Sale{ID: "sale-1", OwnerID: "user-1", Product: "Café"})
	require.NoError(t, err)

	f.remoteSales = brokenSales{err: errRemoteDown}

	receipt, err := f.UpdateSale(&entity.Sale{ID: "sale-1", OwnerID: "user-1", Product: "Café molido"})
	require.NoError(t, err)
	assert.Equal(t, WarnRemoteWriteFailed, receipt.Warning)

	receipt, err = f.DeleteSale("sale-1")
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, receipt.Backend)
	assert.Equal(t, WarnRemoteWriteFailed, receipt.Warning)
}
