// Package archive empaqueta los archivos de una exportación completa en un
// único ZIP en memoria.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// File entrada del paquete: nombre dentro del ZIP y contenido.
type File struct {
	Name string
	Data []byte
}

// BuildBundle empaqueta los archivos, en el orden dado, en un ZIP en memoria
// y devuelve sus bytes.
func BuildBundle(files []File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		fw, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// BundleName nombre del ZIP de exportación con la fecha del día.
// Ejemplo: ventas_export_2026-08-24.zip
func BundleName(date time.Time) string {
	return fmt.Sprintf("ventas_export_%s.zip", date.Format("2006-01-02"))
}
