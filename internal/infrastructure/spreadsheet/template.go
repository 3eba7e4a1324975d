package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteTemplate genera un XLSX con los encabezados en la primera fila y una
// fila de ejemplo opcional debajo. Es la plantilla que el usuario rellena y
// vuelve a subir al importador.
func WriteTemplate(sheetName string, headers []string, example []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if sheetName != "" && sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return nil, fmt.Errorf("renombrar hoja de plantilla: %w", err)
		}
	} else {
		sheetName = defaultSheet
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("escribir encabezados de plantilla: %w", err)
	}
	if len(example) > 0 {
		if err := f.SetSheetRow(sheetName, "A2", &example); err != nil {
			return nil, fmt.Errorf("escribir fila de ejemplo: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar plantilla: %w", err)
	}
	return buf.Bytes(), nil
}
