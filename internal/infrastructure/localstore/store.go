// Package localstore implementa el almacenamiento local de respaldo: blobs
// JSON planos bajo claves fijas, una por colección, más dos banderas
// persistidas (solo lectura y migración completada). Es el backend cuando no
// hay sesión remota o cuando el remoto falla.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Claves fijas de los blobs. El nombre de archivo es <clave>.json.
const (
	KeySales     = "ventas_sales"
	KeyStock     = "ventas_stock"
	KeyMovements = "ventas_movements"
	KeyUsers     = "ventas_users"
	KeyFlags     = "ventas_flags"
)

// flags banderas persistidas del almacenamiento local.
type flags struct {
	ReadOnly bool `json:"read_only"`
	Migrated bool `json:"migrated"`
}

// Store acceso serializado a los blobs JSON en disco.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open prepara el directorio de datos y devuelve el store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// load deserializa el blob de la clave en v. Clave inexistente = valor cero.
func (s *Store) load(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("leer %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decodificar %s: %w", key, err)
	}
	return nil
}

// save serializa v y lo escribe de forma atómica (tmp + rename).
func (s *Store) save(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("reemplazar %s: %w", key, err)
	}
	return nil
}

// ReadOnly devuelve la bandera persistida de solo lectura.
func (s *Store) ReadOnly() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var f flags
	if err := s.load(KeyFlags, &f); err != nil {
		return false, err
	}
	return f.ReadOnly, nil
}

// SetReadOnly persiste la bandera de solo lectura.
func (s *Store) SetReadOnly(v bool) error {
	return s.updateFlags(func(f *flags) { f.ReadOnly = v })
}

// Migrated devuelve la bandera de migración local→remoto ya completada.
func (s *Store) Migrated() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var f flags
	if err := s.load(KeyFlags, &f); err != nil {
		return false, err
	}
	return f.Migrated, nil
}

// SetMigrated persiste la bandera de migración completada.
func (s *Store) SetMigrated(v bool) error {
	return s.updateFlags(func(f *flags) { f.Migrated = v })
}

func (s *Store) updateFlags(fn func(*flags)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var f flags
	if err := s.load(KeyFlags, &f); err != nil {
		return err
	}
	fn(&f)
	return s.save(KeyFlags, &f)
}
