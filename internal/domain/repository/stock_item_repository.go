package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// StockItemRepository puerto de persistencia para productos en stock.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetByOwnerAndName(ownerID, name string) (*entity.StockItem, error)
	ListByOwner(ownerID string) ([]*entity.StockItem, error)
	Update(item *entity.StockItem) error
	// UpdateStock cambia solo CurrentStock (usado por ventas y movimientos).
	UpdateStock(id string, currentStock int) error
	Delete(id string) error
}
