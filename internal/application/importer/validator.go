package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// RecordKind tipo de registro que contiene la hoja importada.
type RecordKind string

const (
	KindSales RecordKind = "sales"
	KindStock RecordKind = "stock"
)

// firstDataRow número con el que se reporta la primera fila de datos:
// indexado de hoja de cálculo (fila 1 = encabezados, fila 2 = primer dato).
const firstDataRow = 2

// RowError errores acumulados de una fila. Row usa la numeración visible
// de la hoja (la primera fila de datos es la 2).
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ValidationResult registros construidos y errores por fila. Una fila con
// cualquier error no produce registro; una fila válida produce exactamente
// uno. SaleRows e ItemRows llevan, en paralelo, el número de fila de origen
// de cada registro.
type ValidationResult struct {
	Sales     []*entity.Sale
	SaleRows  []int
	Items     []*entity.StockItem
	ItemRows  []int
	RowErrors []RowError
}

// HasErrors indica si alguna fila resultó inválida (bloquea el commit).
func (r *ValidationResult) HasErrors() bool {
	return len(r.RowErrors) > 0
}

// ValidateRows valida cada fila contra el conjunto de campos requeridos del
// tipo de registro y construye las entidades tipadas de las filas limpias.
// Los errores se acumulan por fila, nunca se lanzan.
func ValidateRows(kind RecordKind, rows []map[string]interface{}, hm HeaderMap) *ValidationResult {
	result := &ValidationResult{}
	for i, row := range rows {
		rowNum := i + firstDataRow
		switch kind {
		case KindStock:
			item, errs := validateStockRow(row, hm)
			if len(errs) > 0 {
				result.RowErrors = append(result.RowErrors, RowError{Row: rowNum, Errors: errs})
				continue
			}
			result.Items = append(result.Items, item)
			result.ItemRows = append(result.ItemRows, rowNum)
		default:
			sale, errs := validateSaleRow(row, hm)
			if len(errs) > 0 {
				result.RowErrors = append(result.RowErrors, RowError{Row: rowNum, Errors: errs})
				continue
			}
			result.Sales = append(result.Sales, sale)
			result.SaleRows = append(result.SaleRows, rowNum)
		}
	}
	return result
}

// validateSaleRow exige product, quantity, amount y date. El fallo de parseo
// de fecha SIEMPRE se reporta como error de la fila; no existe ruta silenciosa.
func validateSaleRow(row map[string]interface{}, hm HeaderMap) (*entity.Sale, []string) {
	var errs []string

	product := stringField(row, hm, FieldProduct)
	if product == "" {
		errs = append(errs, "campo requerido ausente: product")
	}

	qty, qtyOK := intField(row, hm, FieldQuantity)
	switch {
	case !present(row, hm, FieldQuantity):
		errs = append(errs, "campo requerido ausente: quantity")
	case !qtyOK || qty <= 0:
		errs = append(errs, "quantity inválida: debe ser un entero mayor que cero")
	}

	amountRaw, amountPresent := rawField(row, hm, FieldAmount)
	amount := decimal.Zero
	if !amountPresent {
		errs = append(errs, "campo requerido ausente: amount")
	} else {
		parsed, ok := ParseAmount(amountRaw)
		if ok {
			amount = parsed
		} else if s, isStr := amountRaw.(string); !isStr || !IsZeroLiteral(s) {
			errs = append(errs, fmt.Sprintf("amount no analizable: %v", amountRaw))
		}
	}

	var date time.Time
	if dateRaw, ok := rawField(row, hm, FieldDate); !ok {
		errs = append(errs, "campo requerido ausente: date")
	} else {
		parsed, err := ParseDate(dateRaw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("date inválida: %v", err))
		} else {
			date = parsed
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	unitPrice := decimal.Zero
	if qty > 0 {
		unitPrice = amount.DivRound(decimal.NewFromInt(int64(qty)), 4)
	}

	return &entity.Sale{
		Date:      date,
		Client:    stringField(row, hm, FieldClient),
		Product:   product,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Amount:    amount,
		Payment:   stringField(row, hm, FieldPayment),
		Seller:    stringField(row, hm, FieldSeller),
		Register:  stringField(row, hm, FieldRegister),
		Category:  stringField(row, hm, FieldCategory),
		Notes:     stringField(row, hm, FieldNotes),
	}, nil
}

// validateStockRow exige product, category y quantity. Quantity puede ser
// cualquier entero (el stock actual es un entero con signo).
func validateStockRow(row map[string]interface{}, hm HeaderMap) (*entity.StockItem, []string) {
	var errs []string

	product := stringField(row, hm, FieldProduct)
	if product == "" {
		errs = append(errs, "campo requerido ausente: product")
	}

	category := stringField(row, hm, FieldCategory)
	if category == "" {
		errs = append(errs, "campo requerido ausente: category")
	}

	qty, qtyOK := intField(row, hm, FieldQuantity)
	switch {
	case !present(row, hm, FieldQuantity):
		errs = append(errs, "campo requerido ausente: quantity")
	case !qtyOK:
		errs = append(errs, "quantity inválida: no numérica")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	threshold, _ := intField(row, hm, FieldThreshold)
	initial, hasInitial := intField(row, hm, FieldInitialStock)
	if !hasInitial {
		initial = qty
	}
	unitPrice := decimal.Zero
	if raw, ok := rawField(row, hm, FieldUnitPrice); ok {
		if parsed, pOK := ParseAmount(raw); pOK {
			unitPrice = parsed
		}
	}

	return &entity.StockItem{
		Name:           product,
		Category:       category,
		Subcategory:    stringField(row, hm, FieldSubcategory),
		CurrentStock:   qty,
		AlertThreshold: threshold,
		InitialStock:   initial,
		UnitPrice:      unitPrice,
	}, nil
}

// ── helpers de acceso a la fila vía HeaderMap ────────────────────────────────

// rawField devuelve el valor crudo del campo canónico, si la columna existe
// y la celda no está vacía.
func rawField(row map[string]interface{}, hm HeaderMap, field string) (interface{}, bool) {
	header, ok := hm[field]
	if !ok {
		return nil, false
	}
	v, ok := row[header]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func present(row map[string]interface{}, hm HeaderMap, field string) bool {
	_, ok := rawField(row, hm, field)
	return ok
}

func stringField(row map[string]interface{}, hm HeaderMap, field string) string {
	v, ok := rawField(row, hm, field)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", x))
	}
}

// intField coerciona el valor a entero. Acepta números y cadenas numéricas;
// un float con parte fraccionaria no es un entero válido.
func intField(row map[string]interface{}, hm HeaderMap, field string) (int, bool) {
	v, ok := rawField(row, hm, field)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		return int(x), true
	case float32:
		return intFromFloat(float64(x))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(x, ",", ".")), 64)
		if err != nil {
			return 0, false
		}
		return intFromFloat(f)
	default:
		return 0, false
	}
}

func intFromFloat(f float64) (int, bool) {
	if f != float64(int64(f)) {
		return 0, false
	}
	return int(f), true
}
