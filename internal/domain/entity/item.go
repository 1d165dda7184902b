package entity

import "github.com/shopspring/decimal"

// Item producto vendible.
type Item struct {
	ID            int64
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}
