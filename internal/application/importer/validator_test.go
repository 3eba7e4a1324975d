package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var salesHM = HeaderMap{
	FieldDate:     "Date",
	FieldProduct:  "Produit",
	FieldQuantity: "Quantité",
	FieldAmount:   "Montant",
	FieldSeller:   "Vendeur",
	FieldCategory: "Catégorie",
}

func saleRow(overrides map[string]interface{}) map[string]interface{} {
	row := map[string]interface{}{
		"Date":      "05/03/2024",
		"Produit":   "Café",
		"Quantité":  "3",
		"Montant":   "15,00 €",
		"Vendeur":   "Ana",
		"Catégorie": "Bebidas",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

// ──────────────────────────────────────────────────────────────────────────────
// Filas de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRows_VentaValida(t *testing.T) {
	result := ValidateRows(KindSales, []map[string]interface{}{saleRow(nil)}, salesHM)

	require.False(t, result.HasErrors(), "una fila limpia no debe producir errores")
	require.Len(t, result.Sales, 1)

	sale := result.Sales[0]
	assert.Equal(t, "Café", sale.Product)
	assert.Equal(t, 3, sale.Quantity)
	assert.True(t, decimal.NewFromInt(15).Equal(sale.Amount))
	assert.Equal(t, "2024-03-05", sale.Date.Format("2006-01-02"))
	assert.Equal(t, "Ana", sale.Seller)
}

// El precio unitario se deriva del monto cuando la hoja no lo trae.
func TestValidateRows_DerivaPrecioUnitario(t *testing.T) {
	result := ValidateRows(KindSales, []map[string]interface{}{saleRow(nil)}, salesHM)

	require.Len(t, result.Sales, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(result.Sales[0].UnitPrice),
		"15 € entre 3 unidades son 5 € la unidad")
}

func TestValidateRows_CamposRequeridosAusentes(t *testing.T) {
	cases := map[string]string{
		"Produit":  "campo requerido ausente: product",
		"Quantité": "campo requerido ausente: quantity",
		"Montant":  "campo requerido ausente: amount",
		"Date":     "campo requerido ausente: date",
	}
	for header, wantErr := range cases {
		result := ValidateRows(KindSales, []map[string]interface{}{saleRow(map[string]interface{}{header: ""})}, salesHM)
		require.True(t, result.HasErrors(), "sin %q la fila debe fallar", header)
		assert.Contains(t, result.RowErrors[0].Errors, wantErr)
		assert.Empty(t, result.Sales, "una fila con error no produce registro")
	}
}

// El fallo de parseo de fecha siempre se reporta; no hay ruta silenciosa.
func TestValidateRows_FechaInvalidaSeReporta(t *testing.T) {
	result := ValidateRows(KindSales, []map[string]interface{}{
		saleRow(map[string]interface{}{"Date": "no es fecha"}),
	}, salesHM)

	require.True(t, result.HasErrors())
	require.Len(t, result.RowErrors, 1)
	assert.Contains(t, result.RowErrors[0].Errors[0], "date inválida")
}

func TestValidateRows_CantidadInvalida(t *testing.T) {
	for _, qty := range []interface{}{"0", "-2", "2,5", "abc", float64(1.5)} {
		result := ValidateRows(KindSales, []map[string]interface{}{
			saleRow(map[string]interface{}{"Quantité": qty}),
		}, salesHM)
		require.True(t, result.HasErrors(), "cantidad %v debe rechazarse", qty)
		assert.Contains(t, result.RowErrors[0].Errors[0], "quantity inválida")
	}
}

// Un cero literal en el monto es legítimo (regalos, muestras).
func TestValidateRows_MontoCeroEsValido(t *testing.T) {
	result := ValidateRows(KindSales, []map[string]interface{}{
		saleRow(map[string]interface{}{"Montant": "0,00 €"}),
	}, salesHM)

	require.False(t, result.HasErrors())
	require.Len(t, result.Sales, 1)
	assert.True(t, result.Sales[0].Amount.IsZero())
}

// La numeración reportada es la visible en la hoja: la primera fila de datos
// es la 2 (la 1 son los encabezados).
func TestValidateRows_NumeracionDeFilas(t *testing.T) {
	rows := []map[string]interface{}{
		saleRow(nil),
		saleRow(map[string]interface{}{"Produit": ""}),
		saleRow(nil),
	}
	result := ValidateRows(KindSales, rows, salesHM)

	require.Len(t, result.RowErrors, 1)
	assert.Equal(t, 3, result.RowErrors[0].Row, "la segunda fila de datos es la fila 3")
	assert.Equal(t, []int{2, 4}, result.SaleRows)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filas de stock
// ──────────────────────────────────────────────────────────────────────────────

var stockHM = HeaderMap{
	FieldProduct:      "Nom",
	FieldCategory:     "Catégorie",
	FieldQuantity:     "Stock",
	FieldThreshold:    "Seuil Alerte",
	FieldInitialStock: "Stock Initial",
	FieldUnitPrice:    "Prix Unitaire",
}

func TestValidateRows_StockValido(t *testing.T) {
	rows := []map[string]interface{}{{
		"Nom":           "Café molido 250g",
		"Catégorie":     "Bebidas",
		"Stock":         "40",
		"Seuil Alerte":  "5",
		"Stock Initial": "100",
		"Prix Unitaire": "4,50 €",
	}}
	result := ValidateRows(KindStock, rows, stockHM)

	require.False(t, result.HasErrors())
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.Equal(t, "Café molido 250g", item.Name)
	assert.Equal(t, 40, item.CurrentStock)
	assert.Equal(t, 5, item.AlertThreshold)
	assert.Equal(t, 100, item.InitialStock)
	assert.True(t, decimal.RequireFromString("4.50").Equal(item.UnitPrice))
}

// Sin columna de stock inicial, el stock actual hace de inicial.
func TestValidateRows_StockInicialPorDefecto(t *testing.T) {
	rows := []map[string]interface{}{{
		"Nom":       "Té verde",
		"Catégorie": "Bebidas",
		"Stock":     "12",
	}}
	result := ValidateRows(KindStock, rows, stockHM)

	require.Len(t, result.Items, 1)
	assert.Equal(t, 12, result.Items[0].InitialStock)
}

// El stock actual es un entero con signo: los negativos se aceptan.
func TestValidateRows_StockNegativoEsValido(t *testing.T) {
	rows := []map[string]interface{}{{
		"Nom":       "Azúcar",
		"Catégorie": "Despensa",
		"Stock":     "-3",
	}}
	result := ValidateRows(KindStock, rows, stockHM)

	require.False(t, result.HasErrors())
	require.Len(t, result.Items, 1)
	assert.Equal(t, -3, result.Items[0].CurrentStock)
}

func TestValidateRows_StockRequiereCategoria(t *testing.T) {
	rows := []map[string]interface{}{{
		"Nom":   "Azúcar",
		"Stock": "10",
	}}
	result := ValidateRows(KindStock, rows, stockHM)

	require.True(t, result.HasErrors())
	assert.Contains(t, result.RowErrors[0].Errors, "campo requerido ausente: category")
}
