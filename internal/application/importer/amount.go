package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountTolerance margen de igualdad monetaria usado por la detección de
// duplicados (|a-b| < 0.01 absorbe diferencias de redondeo).
var AmountTolerance = decimal.New(1, -2) // 0.01

// zeroLiterals cadenas que representan cero legítimo: un monto "0,00 €" no es
// un error de parseo, es una venta gratuita o una fila de regularización.
var zeroLiterals = map[string]bool{
	"":      true,
	"0":     true,
	"0,00":  true,
	"0.00":  true,
	"0€":    true,
	"0,00€": true,
	"0.00€": true,
}

// amountReplacer normaliza la notación europea: guiones largos a menos ASCII,
// coma decimal a punto, sin símbolo de euro ni espacios (incluidos NBSP).
var amountReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"€", "",
	"\u00a0", "", // NBSP
	"\u202f", "", // narrow NBSP
	" ", "",
	"\t", "",
	",", ".",
)

// ParseAmount convierte un valor de celda a decimal.
// Números pasan directo; cadenas se normalizan desde formato europeo
// ("154,00 €" -> 154.00, "–45,20 €" -> -45.20).
// Si la cadena no es analizable devuelve (0, false); el validador decide si
// eso es un error (lo es, salvo literal de cero reconocido).
func ParseAmount(v interface{}) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		return parseAmountString(x)
	default:
		return decimal.Zero, false
	}
}

func parseAmountString(s string) (decimal.Decimal, bool) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(s))
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// IsZeroLiteral indica si la cadena original representa un cero explícito.
func IsZeroLiteral(s string) bool {
	return zeroLiterals[amountReplacer.Replace(strings.TrimSpace(s))] ||
		zeroLiterals[strings.TrimSpace(s)]
}

// WithinTolerance compara dos montos con el margen de duplicados.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(AmountTolerance)
}
