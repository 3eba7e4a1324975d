package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
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

func createSaleReq() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Date:     "05/03/2024",
		Product:  "Café",
		Quantity: 3,
		Amount:   decimal.RequireFromString("15.00"),
		Seller:   "Ana",
		Register: "Caja 1",
		Category: "Bebidas",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleUseCase_Create(t *testing.T) {
	uc := NewSaleUseCase(newFacade(t))

	resp, write, err := uc.Create(owner, createSaleReq())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "2024-03-05", resp.Date)
	assert.Equal(t, "Café", resp.Product)
	assert.True(t, decimal.NewFromInt(15).Equal(resp.Amount))
	assert.True(t, decimal.NewFromInt(5).Equal(resp.UnitPrice), "precio unitario derivado del monto")
	assert.Equal(t, storage.BackendLocal, write.Backend)
	assert.Empty(t, write.Warning)
}

// Con monto en cero y precio unitario dado, el monto se deriva.
func TestSaleUseCase_Create_DerivaMonto(t *testing.T) {
	uc := NewSaleUseCase(newFacade(t))

	in := createSaleReq()
	in.Amount = decimal.Zero
	in.UnitPrice = decimal.RequireFromString("2.50")

	resp, _, err := uc.Create(owner, in)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("7.50").Equal(resp.Amount), "3 × 2.50 = 7.50")
}

func TestSaleUseCase_Create_EntradaInvalida(t *testing.T) {
	uc := NewSaleUseCase(newFacade(t))

	bad := []dto.CreateSaleRequest{
		func() dto.CreateSaleRequest { r := createSaleReq(); r.Product = "  "; return r }(),
		func() dto.CreateSaleRequest { r := createSaleReq(); r.Quantity = 0; return r }(),
		func() dto.CreateSaleRequest { r := createSaleReq(); r.Date = "no es fecha"; return r }(),
	}
	for i, in := range bad {
		_, _, err := uc.Create(owner, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

// Crear la venta descuenta el stock del producto coincidente (matching laxo
// por nombre) y deja un movimiento de salida.
func TestSaleUseCase_Create_DescuentaStock(t *testing.T) {
	f := newFacade(t)
	_, err := f.CreateItem(&entity.StockItem{
		ID:           "item-1",
		OwnerID:      owner,
		Name:         "CAFÉ", // distinta caja que la venta
		Category:     "Bebidas",
		CurrentStock: 10,
	})
	require.NoError(t, err)

	uc := NewSaleUseCase(f)
	_, _, err = uc.Create(owner, createSaleReq())
	require.NoError(t, err)

	item, err := f.GetItem("item-1")
	require.NoError(t, err)
	assert.Equal(t, 7, item.CurrentStock)

	movs, err := f.ListMovements(owner)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOut, movs[0].Type)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.Equal(t, "Venta manual", movs[0].Reason)
}

// Sin producto coincidente la venta se guarda igual y no hay movimiento.
func TestSaleUseCase_Create_SinProductoCoincidente(t *testing.T) {
	f := newFacade(t)
	uc := NewSaleUseCase(f)

	resp, _, err := uc.Create(owner, createSaleReq())
	require.NoError(t, err)
	require.NotNil(t, resp)

	movs, err := f.ListMovements(owner)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Política asimétrica: borrar no repone
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleUseCase_Delete_NoReponeStock(t *testing.T) {
	f := newFacade(t)
	_, err := f.CreateItem(&entity.StockItem{
		ID: "item-1", OwnerID: owner, Name: "Café", Category: "Bebidas", CurrentStock: 10,
	})
	require.NoError(t, err)

	uc := NewSaleUseCase(f)
	resp, _, err := uc.Create(owner, createSaleReq())
	require.NoError(t, err)

	_, err = uc.Delete(owner, resp.ID)
	require.NoError(t, err)

	item, err := f.GetItem("item-1")
	require.NoError(t, err)
	assert.Equal(t, 7, item.CurrentStock, "el borrado corrige la captura, no deshace la venta física")

	got, err := uc.GetByID(owner, resp.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleUseCase_Delete_Inexistente(t *testing.T) {
	uc := NewSaleUseCase(newFacade(t))
	_, err := uc.Delete(owner, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y propiedad
// ──────────────────────────────────────────────────────────────────────────────

// Editar la venta no toca el stock: el ajuste solo ocurre en la creación.
func TestSaleUseCase_Update_NoAjustaStock(t *testing.T) {
	f := newFacade(t)
	_, err := f.CreateItem(&entity.StockItem{
		ID: "item-1", OwnerID: owner, Name: "Café", Category: "Bebidas", CurrentStock: 10,
	})
	require.NoError(t, err)

	uc := NewSaleUseCase(f)
	resp, _, err := uc.Create(owner, createSaleReq())
	require.NoError(t, err)

	updated, _, err := uc.Update(owner, resp.ID, dto.UpdateSaleRequest{Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Quantity)

	item, err := f.GetItem("item-1")
	require.NoError(t, err)
	assert.Equal(t, 7, item.CurrentStock, "solo el descuento de la creación")
}

func TestSaleUseCase_GetByID_DeOtroUsuario(t *testing.T) {
	f := newFacade(t)
	uc := NewSaleUseCase(f)

	resp, _, err := uc.Create(owner, createSaleReq())
	require.NoError(t, err)

	got, err := uc.GetByID("user-2", resp.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "las ventas de otro usuario no se entregan")
}

func TestSaleUseCase_List(t *testing.T) {
	uc := NewSaleUseCase(newFacade(t))

	for i := 0; i < 3; i++ {
		_, _, err := uc.Create(owner, createSaleReq())
		require.NoError(t, err)
	}
	sales, err := uc.List(owner)
	require.NoError(t, err)
	assert.Len(t, sales, 3)
}
