package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// StockMovementRepository puerto de persistencia para el log de movimientos.
// Append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByOwner(ownerID string) ([]*entity.StockMovement, error)
}
