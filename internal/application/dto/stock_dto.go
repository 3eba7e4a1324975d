package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest alta de producto en stock.
type CreateStockItemRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory"`
	CurrentStock   int             `json:"current_stock"`
	AlertThreshold int             `json:"alert_threshold"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// UpdateStockItemRequest edición de producto. CurrentStock no se toca aquí:
// se mueve con ventas y movimientos.
type UpdateStockItemRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory"`
	AlertThreshold int             `json:"alert_threshold"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

// StockItemResponse producto serializado.
type StockItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory,omitempty"`
	CurrentStock   int             `json:"current_stock"`
	AlertThreshold int             `json:"alert_threshold"`
	InitialStock   int             `json:"initial_stock"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	BelowThreshold bool            `json:"below_threshold"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RegisterMovementRequest movimiento manual de stock.
type RegisterMovementRequest struct {
	ItemID   string `json:"item_id"`
	Type     string `json:"type"` // in | out
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
	Register string `json:"register"`
	Seller   string `json:"seller"`
}

// MovementResponse movimiento serializado.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name,omitempty"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	Register  string    `json:"register,omitempty"`
	Seller    string    `json:"seller,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
