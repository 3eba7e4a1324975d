package entity

import "time"

// User es la cuenta dueña de los datos: cada venta, producto y movimiento
// queda ligado a su OwnerID.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
