package importer

import (
	"strings"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SaleCandidate venta candidata a importar, con su veredicto de duplicado.
// ShouldKeep arranca en !Duplicate; el operador puede sobreescribirlo antes
// del commit.
type SaleCandidate struct {
	Sale       *entity.Sale
	Duplicate  bool
	ShouldKeep bool
}

// StockCandidate producto candidato a importar, con su veredicto de duplicado.
type StockCandidate struct {
	Item       *entity.StockItem
	Duplicate  bool
	ShouldKeep bool
}

// IsDuplicateSale aplica la regla de igualdad de siete campos: fecha
// (día calendario), producto, cantidad, vendedor, caja y categoría exactos,
// y monto con tolerancia de ±0.01. Los siete deben coincidir.
func IsDuplicateSale(candidate, existing *entity.Sale) bool {
	return candidate.Date.Format("2006-01-02") == existing.Date.Format("2006-01-02") &&
		candidate.Product == existing.Product &&
		candidate.Quantity == existing.Quantity &&
		candidate.Seller == existing.Seller &&
		candidate.Register == existing.Register &&
		candidate.Category == existing.Category &&
		WithinTolerance(candidate.Amount, existing.Amount)
}

// DetectSaleDuplicates compara cada candidata contra todas las ventas ya
// persistidas. Escaneo lineal O(existentes × candidatas): suficiente al
// volumen de datos de la aplicación.
func DetectSaleDuplicates(candidates []*entity.Sale, existing []*entity.Sale) []SaleCandidate {
	out := make([]SaleCandidate, 0, len(candidates))
	for _, c := range candidates {
		dup := false
		for _, e := range existing {
			if IsDuplicateSale(c, e) {
				dup = true
				break
			}
		}
		out = append(out, SaleCandidate{Sale: c, Duplicate: dup, ShouldKeep: !dup})
	}
	return out
}

// IsDuplicateStockItem regla de igualdad para productos: nombre y categoría
// exactos. El matching laxo por minúsculas queda para la reconciliación.
func IsDuplicateStockItem(candidate, existing *entity.StockItem) bool {
	return candidate.Name == existing.Name && candidate.Category == existing.Category
}

// DetectStockDuplicates compara cada producto candidato contra los existentes.
func DetectStockDuplicates(candidates []*entity.StockItem, existing []*entity.StockItem) []StockCandidate {
	out := make([]StockCandidate, 0, len(candidates))
	for _, c := range candidates {
		dup := false
		for _, e := range existing {
			if IsDuplicateStockItem(c, e) {
				dup = true
				break
			}
		}
		out = append(out, StockCandidate{Item: c, Duplicate: dup, ShouldKeep: !dup})
	}
	return out
}

// normalizeProductKey clave de agrupación para la reconciliación: nombre en
// minúsculas sin espacios sobrantes.
func normalizeProductKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
