package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL.
// Append-only: solo Create y List.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, owner_id, item_id, type, quantity, reason, register, seller, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.OwnerID, mov.ItemID, mov.Type, mov.Quantity,
		mov.Reason, mov.Register, mov.Seller, mov.CreatedAt,
	)
	if err != nil {
		mapped := mapError(err)
		if mapped == domain.ErrForeignKey {
			return domain.ErrForeignKey
		}
		return fmt.Errorf("insert movement: %w", mapped)
	}
	return nil
}

// ListByOwner lista los movimientos del usuario, más recientes primero.
func (r *MovementRepo) ListByOwner(ownerID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, owner_id, item_id, type, quantity, reason, register, seller, created_at
		FROM stock_movements WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", mapError(err))
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.ItemID, &m.Type, &m.Quantity,
			&m.Reason, &m.Register, &m.Seller, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
