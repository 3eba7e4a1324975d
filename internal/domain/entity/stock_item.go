package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un producto con su nivel de stock actual.
// Name es único por usuario. CurrentStock es entero con signo: las ventas
// pueden dejarlo negativo (se vende lo que no estaba registrado) y eso se
// refleja tal cual, no se bloquea.
type StockItem struct {
	ID             string
	OwnerID        string
	Name           string
	Category       string
	Subcategory    string
	CurrentStock   int
	AlertThreshold int
	InitialStock   int
	UnitPrice      decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowThreshold indica si el producto está en nivel de alerta.
func (s *StockItem) BelowThreshold() bool {
	return s.CurrentStock <= s.AlertThreshold
}
