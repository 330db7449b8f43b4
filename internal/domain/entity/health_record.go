package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HealthRecord registro sanitario de un animal (vacuna, desparasitación, tratamiento).
// El costo se imputa directamente al animal en el cálculo de ganancias.
type HealthRecord struct {
	ID         string
	BusinessID string
	GoatID     string
	Type       string
	Notes      string
	Cost       decimal.Decimal
	Date       time.Time
	CreatedAt  time.Time
}
