package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// OrderSearchRequest filtros opcionales de pedidos.
type OrderSearchRequest struct {
	MemberName  string `query:"memberName"`
	OrderStatus string `query:"orderStatus"`
}

// Criteria convierte la petición en criterios para el composer.
func (r OrderSearchRequest) Criteria() query.Criteria {
	return query.Criteria{"memberName": r.MemberName, "orderStatus": r.OrderStatus}
}

// AddressResponse dirección de entrega.
type AddressResponse struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ItemName   string          `json:"item_name"`
	OrderPrice decimal.Decimal `json:"order_price"`
	Count      int             `json:"count"`
}

// OrderResponse pedido con miembro, envío e ítems.
type OrderResponse struct {
	OrderID     int64               `json:"order_id"`
	Name        string              `json:"name"`
	OrderDate   time.Time           `json:"order_date"`
	OrderStatus string              `json:"order_status"`
	Address     *AddressResponse    `json:"address"`
	OrderItems  []OrderItemResponse `json:"order_items"`
	TotalPrice  decimal.Decimal     `json:"total_price"`
}

// OrderListResponse pedidos cargados con la estrategia indicada.
type OrderListResponse struct {
	Items    []OrderResponse `json:"items"`
	Strategy string          `json:"strategy"`
	Page     *PageResponse   `json:"page,omitempty"`
}
