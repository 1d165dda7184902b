package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido.
type OrderStatus string

const (
	OrderPlaced   OrderStatus = "ORDER"
	OrderCanceled OrderStatus = "CANCEL"
)

// Order pedido de un miembro; sus ítems se cargan como colección.
type Order struct {
	ID         int64
	MemberID   int64
	DeliveryID *int64
	OrderDate  time.Time
	Status     OrderStatus
	Items      []OrderItem
}

// TotalPrice suma precio * cantidad de cada ítem.
func (o Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.TotalPrice())
	}
	return total
}

// OrderItem línea de un pedido; OrderPrice es el precio unitario al momento de la compra.
type OrderItem struct {
	ID         int64
	OrderID    int64
	ItemID     int64
	OrderPrice decimal.Decimal
	Quantity   int
}

// TotalPrice precio de la línea.
func (oi OrderItem) TotalPrice() decimal.Decimal {
	return oi.OrderPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
