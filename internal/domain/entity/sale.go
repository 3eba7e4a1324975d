package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una transacción de venta registrada por un usuario.
// Amount se almacena explícito: en importaciones puede diferir de
// Quantity × UnitPrice (redondeos del archivo origen).
type Sale struct {
	ID        string
	OwnerID   string
	Date      time.Time
	Client    string
	Product   string
	Quantity  int             // siempre > 0
	UnitPrice decimal.Decimal // >= 0
	Amount    decimal.Decimal // total de la venta
	Payment   string          // efectivo, tarjeta, etc.
	Seller    string
	Register  string // caja/punto de venta
	Category  string
	Notes     string
	CreatedAt time.Time
}
