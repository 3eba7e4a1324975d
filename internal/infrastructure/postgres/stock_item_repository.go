package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, owner_id, name, category, subcategory, current_stock, alert_threshold, initial_stock, unit_price, created_at, updated_at`

// Create persiste un nuevo producto. Name es único por usuario (constraint).
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OwnerID, item.Name, item.Category, item.Subcategory,
		item.CurrentStock, item.AlertThreshold, item.InitialStock,
		item.UnitPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", mapError(err))
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByOwnerAndName obtiene un producto por usuario y nombre exacto.
func (r *StockItemRepo) GetByOwnerAndName(ownerID, name string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE owner_id = $1 AND name = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ownerID, name))
}

func (r *StockItemRepo) scanOne(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.OwnerID, &it.Name, &it.Category, &it.Subcategory,
		&it.CurrentStock, &it.AlertThreshold, &it.InitialStock,
		&it.UnitPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", mapError(err))
	}
	return &it, nil
}

// ListByOwner lista los productos del usuario por nombre.
func (r *StockItemRepo) ListByOwner(ownerID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE owner_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", mapError(err))
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Category,
			&it.Subcategory, &it.CurrentStock, &it.AlertThreshold,
			&it.InitialStock, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza los datos del producto. CurrentStock no se toca aquí.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET name = $2, category = $3, subcategory = $4,
			alert_threshold = $5, unit_price = $6, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Subcategory,
		item.AlertThreshold, item.UnitPrice,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock item: %w", mapError(err))
	}
	return nil
}

// UpdateStock cambia solo CurrentStock (ventas y movimientos).
func (r *StockItemRepo) UpdateStock(id string, currentStock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_items SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, currentStock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", mapError(err))
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *StockItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", mapError(err))
	}
	return nil
}
