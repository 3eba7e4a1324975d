package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

func baseSale() *entity.Sale {
	return &entity.Sale{
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Product:  "Café",
		Quantity: 3,
		Amount:   decimal.RequireFromString("15.00"),
		Seller:   "Ana",
		Register: "Caja 1",
		Category: "Bebidas",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla de los siete campos
// ──────────────────────────────────────────────────────────────────────────────

func TestIsDuplicateSale_CopiaExacta(t *testing.T) {
	assert.True(t, IsDuplicateSale(baseSale(), baseSale()))
}

// Cambiar UN solo campo de los siete deshace el veredicto de duplicado.
func TestIsDuplicateSale_CadaCampoCuenta(t *testing.T) {
	mutations := map[string]func(*entity.Sale){
		"date":     func(s *entity.Sale) { s.Date = s.Date.AddDate(0, 0, 1) },
		"product":  func(s *entity.Sale) { s.Product = "Té" },
		"quantity": func(s *entity.Sale) { s.Quantity = 4 },
		"seller":   func(s *entity.Sale) { s.Seller = "Luis" },
		"register": func(s *entity.Sale) { s.Register = "Caja 2" },
		"category": func(s *entity.Sale) { s.Category = "Despensa" },
		"amount":   func(s *entity.Sale) { s.Amount = decimal.RequireFromString("15.50") },
	}
	for field, mutate := range mutations {
		candidate := baseSale()
		mutate(candidate)
		assert.False(t, IsDuplicateSale(candidate, baseSale()),
			"con %s distinto no hay duplicado", field)
	}
}

// La fecha compara por día calendario: la hora no importa.
func TestIsDuplicateSale_FechaPorDiaCalendario(t *testing.T) {
	candidate := baseSale()
	candidate.Date = time.Date(2024, 3, 5, 18, 45, 0, 0, time.UTC)
	assert.True(t, IsDuplicateSale(candidate, baseSale()))
}

// El monto compara con tolerancia de céntimo: una diferencia de redondeo
// no deshace el duplicado, una diferencia real sí.
func TestIsDuplicateSale_ToleranciaDeMonto(t *testing.T) {
	candidate := baseSale()
	candidate.Amount = decimal.RequireFromString("15.005")
	assert.True(t, IsDuplicateSale(candidate, baseSale()))

	candidate.Amount = decimal.RequireFromString("15.01")
	assert.False(t, IsDuplicateSale(candidate, baseSale()))
}

// Cliente, pago y notas no participan en la regla.
func TestIsDuplicateSale_CamposFueraDeLaRegla(t *testing.T) {
	candidate := baseSale()
	candidate.Client = "Otro cliente"
	candidate.Payment = "tarjeta"
	candidate.Notes = "nota distinta"
	assert.True(t, IsDuplicateSale(candidate, baseSale()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Detección por lote
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectSaleDuplicates(t *testing.T) {
	fresh := baseSale()
	fresh.Product = "Té"

	candidates := []*entity.Sale{baseSale(), fresh}
	existing := []*entity.Sale{baseSale()}

	verdicts := DetectSaleDuplicates(candidates, existing)
	require.Len(t, verdicts, 2)

	assert.True(t, verdicts[0].Duplicate)
	assert.False(t, verdicts[0].ShouldKeep, "un duplicado no se conserva por defecto")
	assert.False(t, verdicts[1].Duplicate)
	assert.True(t, verdicts[1].ShouldKeep)
}

func TestDetectSaleDuplicates_SinExistentes(t *testing.T) {
	verdicts := DetectSaleDuplicates([]*entity.Sale{baseSale()}, nil)
	require.Len(t, verdicts, 1)
	assert.False(t, verdicts[0].Duplicate)
	assert.True(t, verdicts[0].ShouldKeep)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos: nombre + categoría exactos
// ──────────────────────────────────────────────────────────────────────────────

func TestIsDuplicateStockItem(t *testing.T) {
	a := &entity.StockItem{Name: "Café molido", Category: "Bebidas"}
	b := &entity.StockItem{Name: "Café molido", Category: "Bebidas"}
	assert.True(t, IsDuplicateStockItem(a, b))

	b.Category = "Despensa"
	assert.False(t, IsDuplicateStockItem(a, b), "misma designación en otra categoría es otro producto")

	b.Category = "Bebidas"
	b.Name = "café molido"
	assert.False(t, IsDuplicateStockItem(a, b), "la comparación de nombre es exacta, no laxa")
}

func TestDetectStockDuplicates(t *testing.T) {
	existing := []*entity.StockItem{{Name: "Café molido", Category: "Bebidas"}}
	candidates := []*entity.StockItem{
		{Name: "Café molido", Category: "Bebidas"},
		{Name: "Té verde", Category: "Bebidas"},
	}

	verdicts := DetectStockDuplicates(candidates, existing)
	require.Len(t, verdicts, 2)
	assert.True(t, verdicts[0].Duplicate)
	assert.False(t, verdicts[0].ShouldKeep)
	assert.False(t, verdicts[1].Duplicate)
	assert.True(t, verdicts[1].ShouldKeep)
}
