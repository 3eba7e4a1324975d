package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// excelEpochOffsetDays días entre el epoch de Excel (base 1900) y el epoch
// Unix: serial excel - 25569 = días Unix.
const excelEpochOffsetDays = 25569

// Política de ambigüedad de fechas: SIEMPRE día primero.
// "05/03/2024" es 5 de marzo, nunca 3 de mayo. Es una decisión de contrato,
// no una inferencia por locale, y está cubierta por tests dedicados.
const dayFirst = true

// fallbackLayouts formatos probados en orden cuando la cadena no es
// ni barras ni guiones.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006",
	"20060102",
	"2 January 2006",
	"Jan 2, 2006",
}

// ParseDate resuelve el valor de fecha de una celda. Acepta:
//   - números de serie de hoja de cálculo (días desde la base 1900 de Excel),
//   - time.Time nativo,
//   - cadenas: "DD/MM/YYYY" (día primero), "YYYY-MM-DD" si el primer
//     segmento tiene 4 dígitos y si no "DD-MM-YYYY", y por último una lista
//     de formatos libres.
func ParseDate(v interface{}) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		if x == nil {
			return time.Time{}, fmt.Errorf("fecha nula")
		}
		return *x, nil
	case float64:
		return fromExcelSerial(x)
	case float32:
		return fromExcelSerial(float64(x))
	case int:
		return fromExcelSerial(float64(x))
	case int64:
		return fromExcelSerial(float64(x))
	case string:
		return parseDateString(x)
	default:
		return time.Time{}, fmt.Errorf("tipo de fecha no soportado: %T", v)
	}
}

// fromExcelSerial convierte un número de serie excel a fecha calendario (UTC).
func fromExcelSerial(serial float64) (time.Time, error) {
	if serial <= 0 || serial > 200000 { // fuera de todo rango razonable
		return time.Time{}, fmt.Errorf("número de serie de fecha fuera de rango: %v", serial)
	}
	unixDays := serial - excelEpochOffsetDays
	secs := int64(unixDays * 86400)
	return time.Unix(secs, 0).UTC().Truncate(24 * time.Hour), nil
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}

	// Serial excel llegado como texto (RawCellValue de la hoja)
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromExcelSerial(serial)
	}

	if strings.Contains(s, "/") {
		return parseDelimited(s, "/", dayFirst)
	}
	if strings.Contains(s, "-") {
		// Si el desglose numérico falla (p.ej. "2024-06-15T10:30:00"),
		// la cadena aún puede coincidir con un layout de la lista.
		parts := strings.Split(s, "-")
		if len(parts) == 3 && len(parts[0]) == 4 {
			if t, err := parseYMD(parts[0], parts[1], parts[2]); err == nil {
				return t, nil
			}
		} else if len(parts) == 3 {
			if t, err := parseDMY(parts[0], parts[1], parts[2]); err == nil {
				return t, nil
			}
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de fecha desconocido: %q", s)
}

// parseDelimited interpreta "D<sep>M<sep>YYYY" con día primero.
func parseDelimited(s, sep string, dayFirst bool) (time.Time, error) {
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("formato de fecha desconocido: %q", s)
	}
	if !dayFirst {
		parts[0], parts[1] = parts[1], parts[0]
	}
	return parseDMY(parts[0], parts[1], parts[2])
}

func parseDMY(d, m, y string) (time.Time, error) {
	return buildDate(y, m, d)
}

func parseYMD(y, m, d string) (time.Time, error) {
	return buildDate(y, m, d)
}

func buildDate(ys, ms, ds string) (time.Time, error) {
	year, err1 := strconv.Atoi(strings.TrimSpace(ys))
	month, err2 := strconv.Atoi(strings.TrimSpace(ms))
	day, err3 := strconv.Atoi(strings.TrimSpace(ds))
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("fecha no numérica: %s-%s-%s", ys, ms, ds)
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("fecha fuera de rango: %04d-%02d-%02d", year, month, day)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
