package domain

import "time"

// Product товар, продаваемый в салоне
type Product struct {
	ID       int64
	Name     string
	Price    float64
	PhotoURL *string
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
