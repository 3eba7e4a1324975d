package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement es una entrada del log de movimientos de stock.
// El log es append-only: los movimientos nunca se actualizan ni se
// eliminan en operación normal.
type StockMovement struct {
	ID        string
	OwnerID   string
	ItemID    string
	Type      string // in | out
	Quantity  int    // siempre > 0; el signo lo da Type
	Reason    string
	Register  string
	Seller    string
	CreatedAt time.Time
}
