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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, owner_id, date, client, product, quantity, unit_price, amount, payment, seller, register, category, notes, created_at`

// Create persiste una nueva venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.OwnerID, sale.Date, sale.Client, sale.Product,
		sale.Quantity, sale.UnitPrice, sale.Amount, sale.Payment,
		sale.Seller, sale.Register, sale.Category, sale.Notes, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", mapError(err))
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.OwnerID, &s.Date, &s.Client, &s.Product, &s.Quantity,
		&s.UnitPrice, &s.Amount, &s.Payment, &s.Seller, &s.Register,
		&s.Category, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", mapError(err))
	}
	return &s, nil
}

// ListByOwner lista las ventas del usuario, más recientes primero.
func (r *SaleRepo) ListByOwner(ownerID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE owner_id = $1 ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", mapError(err))
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Date, &s.Client, &s.Product,
			&s.Quantity, &s.UnitPrice, &s.Amount, &s.Payment, &s.Seller,
			&s.Register, &s.Category, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza una venta existente. El ID nunca cambia.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET date = $2, client = $3, product = $4, quantity = $5,
			unit_price = $6, amount = $7, payment = $8, seller = $9,
			register = $10, category = $11, notes = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.Client, sale.Product, sale.Quantity,
		sale.UnitPrice, sale.Amount, sale.Payment, sale.Seller,
		sale.Register, sale.Category, sale.Notes,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", mapError(err))
	}
	return nil
}

// Delete elimina una venta por ID. No repone stock: política asimétrica.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", mapError(err))
	}
	return nil
}
