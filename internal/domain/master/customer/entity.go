package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer carries the base rate orders are priced from.
type Customer struct {
	ID             string
	BusinessID     string
	Name           string
	Person         string
	Rate           decimal.Decimal
	OpeningBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Stats struct {
	Total    int64
	Active   int64
	Inactive int64
}
