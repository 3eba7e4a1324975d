package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/localstore"
)

const testOwner = "user-1"

func newStockRepos(t *testing.T) (*localstore.StockItemRepo, *localstore.MovementRepo) {
	t.Helper()
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	return localstore.NewStockItemRepository(store), localstore.NewMovementRepository(store)
}

func seedItem(t *testing.T, items *localstore.StockItemRepo, id, name string, stock int) {
	t.Helper()
	require.NoError(t, items.Create(&entity.StockItem{
		ID:           id,
		OwnerID:      testOwner,
		Name:         name,
		Category:     "Bebidas",
		CurrentStock: stock,
	}))
}

func importedSale(product string, qty int) *entity.Sale {
	return &entity.Sale{
		OwnerID:  testOwner,
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Product:  product,
		Quantity: qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consolidación por producto
// ──────────────────────────────────────────────────────────────────────────────

// Varias ventas del mismo producto descuentan una sola vez el total del grupo
// y dejan UN movimiento consolidado, no uno por venta.
func TestReconcileStock_ConsolidaPorProducto(t *testing.T) {
	items, movements := newStockRepos(t)
	seedItem(t, items, "item-cafe", "Café", 100)

	sales := []*entity.Sale{
		importedSale("Café", 5),
		importedSale("café ", 3), // variante de mayúsculas y espacios
	}
	result, err := ReconcileStock(testOwner, sales, items, movements)
	require.NoError(t, err)

	item, err := items.GetByID("item-cafe")
	require.NoError(t, err)
	assert.Equal(t, 92, item.CurrentStock, "100 - (5+3) = 92")

	require.Len(t, result.Movements, 1, "un único movimiento consolidado por producto")
	mov := result.Movements[0]
	assert.Equal(t, entity.MovementTypeOut, mov.Type)
	assert.Equal(t, 8, mov.Quantity)
	assert.Equal(t, "item-cafe", mov.ItemID)
	assert.Equal(t, "Importación de ventas (2 venta(s))", mov.Reason)

	persisted, err := movements.ListByOwner(testOwner)
	require.NoError(t, err)
	assert.Len(t, persisted, 1, "el movimiento debe quedar en el log")
	assert.Empty(t, result.Unmatched)
}

func TestReconcileStock_VariosProductos(t *testing.T) {
	items, movements := newStockRepos(t)
	seedItem(t, items, "item-cafe", "Café", 50)
	seedItem(t, items, "item-te", "Té verde", 20)

	sales := []*entity.Sale{
		importedSale("Té verde", 2),
		importedSale("Café", 4),
		importedSale("Té verde", 1),
	}
	result, err := ReconcileStock(testOwner, sales, items, movements)
	require.NoError(t, err)

	require.Len(t, result.Movements, 2)
	// Orden de primera aparición en el lote: primero el té, luego el café.
	assert.Equal(t, "item-te", result.Movements[0].ItemID)
	assert.Equal(t, 3, result.Movements[0].Quantity)
	assert.Equal(t, "item-cafe", result.Movements[1].ItemID)
	assert.Equal(t, 4, result.Movements[1].Quantity)
}

// El stock puede quedar negativo: el descuento nunca se recorta.
func TestReconcileStock_PermiteStockNegativo(t *testing.T) {
	items, movements := newStockRepos(t)
	seedItem(t, items, "item-cafe", "Café", 2)

	_, err := ReconcileStock(testOwner, []*entity.Sale{importedSale("Café", 5)}, items, movements)
	require.NoError(t, err)

	item, err := items.GetByID("item-cafe")
	require.NoError(t, err)
	assert.Equal(t, -3, item.CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos sin correspondencia
// ──────────────────────────────────────────────────────────────────────────────

// Un producto vendido sin entrada de stock se reporta con sus totales;
// nunca se descarta en silencio ni genera movimiento.
func TestReconcileStock_ReportaNoCorrespondidos(t *testing.T) {
	items, movements := newStockRepos(t)
	seedItem(t, items, "item-cafe", "Café", 10)

	sales := []*entity.Sale{
		importedSale("Café", 1),
		importedSale("Croissant", 6),
		importedSale("Croissant", 2),
	}
	result, err := ReconcileStock(testOwner, sales, items, movements)
	require.NoError(t, err)

	require.Len(t, result.Unmatched, 1)
	unmatched := result.Unmatched[0]
	assert.Equal(t, "Croissant", unmatched.Product)
	assert.Equal(t, 8, unmatched.Quantity)
	assert.Equal(t, 2, unmatched.Sales)

	require.Len(t, result.Movements, 1, "solo el producto con stock genera movimiento")
	assert.Equal(t, "item-cafe", result.Movements[0].ItemID)
}

func TestReconcileStock_LoteVacio(t *testing.T) {
	items, movements := newStockRepos(t)
	seedItem(t, items, "item-cafe", "Café", 10)

	result, err := ReconcileStock(testOwner, nil, items, movements)
	require.NoError(t, err)
	assert.Empty(t, result.Movements)
	assert.Empty(t, result.Unmatched)

	item, err := items.GetByID("item-cafe")
	require.NoError(t, err)
	assert.Equal(t, 10, item.CurrentStock, "sin ventas el stock no se toca")
}
