package entity

import "time"

// Project es el ámbito de un libro de movimientos (una obra o almacén independiente).
type Project struct {
	ID        string
	Name      string
	Notes     string
	CreatedAt time.Time
	CreatedBy string
}
