package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/localstore"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

const owner = "user-1"

func newFacade(t *testing.T) *storage.Facade {
	t.Helper()
	store, err := localstore.Open(t.TempDir())
	require.NoError(t, err)
	return storage.New(store, nil, logger.Nop())
}

func seedSale(t *testing.T, f *storage.Facade, id string, date time.Time, product, payment string, qty int, amount string) {
	t.Helper()
	_, err := f.CreateSale(&entity.Sale{
		ID:       id,
		OwnerID:  owner,
		Date:     date,
		Product:  product,
		Quantity: qty,
		Amount:   decimal.RequireFromString(amount),
		Payment:  payment,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingresos del día y del mes
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_IngresosDelDiaYDelMes(t *testing.T) {
	f := newFacade(t)
	now := time.Now()

	seedSale(t, f, "s-1", now, "Café", "efectivo", 2, "10.00")
	seedSale(t, f, "s-2", now, "Té", "tarjeta", 1, "3.50")
	// una venta vieja no cuenta para nada
	seedSale(t, f, "s-3", now.AddDate(0, 0, -40), "Café", "efectivo", 5, "25.00")

	uc := NewDashboardUseCase(f)
	summary, err := uc.Summary(owner)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TodaySales)
	assert.True(t, decimal.RequireFromString("13.50").Equal(summary.TodayRevenue))
	assert.Equal(t, 2, summary.MonthSales)
	assert.True(t, decimal.RequireFromString("13.50").Equal(summary.MonthRevenue))
}

func TestDashboard_SinVentas(t *testing.T) {
	uc := NewDashboardUseCase(newFacade(t))
	summary, err := uc.Summary(owner)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TodaySales)
	assert.True(t, summary.TodayRevenue.IsZero())
	assert.Empty(t, summary.PaymentTotals)
	assert.Empty(t, summary.TopProducts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales por medio de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_TotalesPorMedioDePago(t *testing.T) {
	f := newFacade(t)
	now := time.Now()

	seedSale(t, f, "s-1", now, "Café", "efectivo", 1, "5.00")
	seedSale(t, f, "s-2", now, "Té", "efectivo", 1, "3.00")
	seedSale(t, f, "s-3", now, "Pan", "", 1, "2.00") // sin medio de pago

	uc := NewDashboardUseCase(f)
	summary, err := uc.Summary(owner)
	require.NoError(t, err)

	require.Len(t, summary.PaymentTotals, 2)
	assert.Equal(t, "efectivo", summary.PaymentTotals[0].Payment)
	assert.Equal(t, 2, summary.PaymentTotals[0].Count)
	assert.True(t, decimal.RequireFromString("8.00").Equal(summary.PaymentTotals[0].Total))

	assert.Equal(t, "sin especificar", summary.PaymentTotals[1].Payment,
		"las ventas sin medio de pago se agrupan aparte, no se pierden")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ranking de productos
// ──────────────────────────────────────────────────────────────────────────────

// El ranking ordena por cantidad vendida y corta en cinco.
func TestDashboard_TopProductos(t *testing.T) {
	f := newFacade(t)
	now := time.Now()

	products := []string{"Café", "Té", "Pan", "Leche", "Azúcar", "Harina"}
	for i, p := range products {
		seedSale(t, f, "s-"+p, now, p, "efectivo", i+1, "1.00")
	}

	uc := NewDashboardUseCase(f)
	summary, err := uc.Summary(owner)
	require.NoError(t, err)

	require.Len(t, summary.TopProducts, 5, "el ranking corta en cinco")
	assert.Equal(t, "Harina", summary.TopProducts[0].Product)
	assert.Equal(t, 6, summary.TopProducts[0].Quantity)
	assert.Equal(t, "Azúcar", summary.TopProducts[1].Product)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_AlertasDeStockBajo(t *testing.T) {
	f := newFacade(t)

	_, err := f.CreateItem(&entity.StockItem{
		ID: "item-1", OwnerID: owner, Name: "Café", Category: "Bebidas",
		CurrentStock: 3, AlertThreshold: 5,
	})
	require.NoError(t, err)
	_, err = f.CreateItem(&entity.StockItem{
		ID: "item-2", OwnerID: owner, Name: "Té", Category: "Bebidas",
		CurrentStock: 20, AlertThreshold: 5,
	})
	require.NoError(t, err)

	uc := NewDashboardUseCase(f)
	summary, err := uc.Summary(owner)
	require.NoError(t, err)

	require.Len(t, summary.LowStockAlerts, 1)
	assert.Equal(t, "Café", summary.LowStockAlerts[0].Name)
	assert.Equal(t, 3, summary.LowStockAlerts[0].CurrentStock)
}
