package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest alta de venta manual.
type CreateSaleRequest struct {
	Date      string          `json:"date"` // DD/MM/YYYY o YYYY-MM-DD
	Client    string          `json:"client"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"` // si es cero se deriva quantity × unit_price
	Payment   string          `json:"payment"`
	Seller    string          `json:"seller"`
	Register  string          `json:"register"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes"`
}

// UpdateSaleRequest edición de venta. El ID no se toca.
type UpdateSaleRequest struct {
	Date      string          `json:"date"`
	Client    string          `json:"client"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
	Payment   string          `json:"payment"`
	Seller    string          `json:"seller"`
	Register  string          `json:"register"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes"`
}

// SaleResponse venta serializada.
type SaleResponse struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"` // YYYY-MM-DD
	Client    string          `json:"client,omitempty"`
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
	Payment   string          `json:"payment,omitempty"`
	Seller    string          `json:"seller,omitempty"`
	Register  string          `json:"register,omitempty"`
	Category  string          `json:"category,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
