package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeightRecord registro de peso de un animal.
type WeightRecord struct {
	ID         string
	BusinessID string
	GoatID     string
	WeightKg   decimal.Decimal
	Date       time.Time
	CreatedAt  time.Time
}
