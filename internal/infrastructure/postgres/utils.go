package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// mapError traduce errores del backend remoto al conjunto pequeño de errores
// de usuario: sesión expirada, acceso denegado, clave duplicada, violación de
// referencia y genérico. El caller muestra el mensaje y no reintenta.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrDuplicate
		case "23503":
			return domain.ErrForeignKey
		case "42501":
			return domain.ErrForbidden
		case "28000", "28P01":
			return domain.ErrSessionExpired
		}
	}
	if strings.Contains(err.Error(), "jwt expired") || strings.Contains(err.Error(), "JWT expired") {
		return domain.ErrSessionExpired
	}
	return err
}
