package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// ParseAmount — notación europea
// ──────────────────────────────────────────────────────────────────────────────

func TestParseAmount_FormatoEuropeo(t *testing.T) {
	cases := map[string]string{
		"154,00 €": "154",
		"154,00€":  "154",
		"12,50":    "12.5",
		"1250":     "1250",
		"0,99 €":   "0.99",
		"3.75":     "3.75",
	}
	for in, want := range cases {
		got, ok := ParseAmount(in)
		require.True(t, ok, "debe parsear %q", in)
		expected, _ := decimal.NewFromString(want)
		assert.True(t, expected.Equal(got), "%q: esperado %s, obtenido %s", in, want, got)
	}
}

// Los exports europeos usan guión largo para los negativos: "–45,20 €".
func TestParseAmount_NegativosConGuionLargo(t *testing.T) {
	for _, in := range []string{"–45,20 €", "—45,20 €", "−45,20 €", "-45,20 €"} {
		got, ok := ParseAmount(in)
		require.True(t, ok, "debe parsear %q", in)
		expected := decimal.RequireFromString("-45.20")
		assert.True(t, expected.Equal(got), "%q: esperado -45.20, obtenido %s", in, got)
	}
}

func TestParseAmount_EsperaEspaciosDurosYTabs(t *testing.T) {
	// NBSP y espacio fino aparecen en exports franceses como separador de miles
	got, ok := ParseAmount("1 250,00 €")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("1250").Equal(got))

	got, ok = ParseAmount("1 250,50")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(got))
}

func TestParseAmount_NumerosNativos(t *testing.T) {
	got, ok := ParseAmount(float64(42.5))
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("42.5").Equal(got))

	got, ok = ParseAmount(7)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(7).Equal(got))
}

func TestParseAmount_NoAnalizable(t *testing.T) {
	for _, in := range []interface{}{"abc", "12,34,56", "€", "-", nil, true} {
		_, ok := ParseAmount(in)
		assert.False(t, ok, "no debe parsear %v", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// IsZeroLiteral
// ──────────────────────────────────────────────────────────────────────────────

func TestIsZeroLiteral(t *testing.T) {
	for _, s := range []string{"0", "0,00", "0.00", "0 €", "0,00 €", "0.00€"} {
		assert.True(t, IsZeroLiteral(s), "%q es un cero legítimo", s)
	}
	for _, s := range []string{"10", "0,01", "gratis"} {
		assert.False(t, IsZeroLiteral(s), "%q no es un cero", s)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// WithinTolerance
// ──────────────────────────────────────────────────────────────────────────────

func TestWithinTolerance(t *testing.T) {
	a := decimal.RequireFromString("100.00")
	assert.True(t, WithinTolerance(a, decimal.RequireFromString("100.009")),
		"diferencia menor a 0.01 debe considerarse igual")
	assert.False(t, WithinTolerance(a, decimal.RequireFromString("100.01")),
		"diferencia de exactamente 0.01 ya no es igual")
	assert.False(t, WithinTolerance(a, decimal.RequireFromString("100.02")))
}
