// Package spreadsheet lee archivos XLSX y CSV a filas crudas para el
// pipeline de importación. Las celdas se entregan como valores crudos
// (los seriales de fecha de Excel llegan como cadenas numéricas, no como
// fechas ya formateadas) para que el parseo de fechas decida.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet hoja leída: encabezados en el orden de las columnas y una fila por
// registro, indexada por el texto original del encabezado.
type Sheet struct {
	Headers []string
	Rows    []map[string]interface{}
}

// Read despacha por extensión. Soporta .xlsx y .csv.
func Read(filename string, data []byte) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ReadXLSX(bytes.NewReader(data))
	case ".csv":
		return ReadCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("formato no soportado: %s (se aceptan .xlsx y .csv)", filepath.Ext(filename))
	}
}

// ReadXLSX lee la primera hoja de un archivo Excel.
func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir archivo Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el archivo Excel no tiene hojas")
	}

	// RawCellValue: los seriales de fecha llegan como número, no formateados
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("la hoja %q está vacía", sheets[0])
	}

	return buildSheet(rows[0], rows[1:]), nil
}

// ReadCSV lee un archivo CSV con encabezados en la primera línea.
func ReadCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerar filas con menos columnas

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezados CSV: %w", err)
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila CSV: %w", err)
		}
		records = append(records, record)
	}

	return buildSheet(headers, records), nil
}

// buildSheet arma las filas indexadas por encabezado. Solo se descartan las
// filas vacías al final de la hoja: las intermedias se conservan para que la
// numeración de fila reportada coincida con la hoja original.
func buildSheet(headers []string, records [][]string) *Sheet {
	sheet := &Sheet{Headers: headers}
	lastNonEmpty := -1
	for _, record := range records {
		row := make(map[string]interface{}, len(headers))
		empty := true
		for i, value := range record {
			if i >= len(headers) {
				break
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			row[headers[i]] = value
		}
		sheet.Rows = append(sheet.Rows, row)
		if !empty {
			lastNonEmpty = len(sheet.Rows) - 1
		}
	}
	sheet.Rows = sheet.Rows[:lastNonEmpty+1]
	return sheet
}
