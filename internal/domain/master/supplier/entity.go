package supplier

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID             string
	BusinessID     string
	Name           string
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
