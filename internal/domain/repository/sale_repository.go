package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByOwner(ownerID string) ([]*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id string) error
}
