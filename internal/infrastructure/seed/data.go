package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-query-api/internal/domain/entity"
)

// Dataset datos de ejemplo de la tienda.
type Dataset struct {
	Teams      []entity.Team
	Members    []entity.Member
	Items      []entity.Item
	Deliveries []entity.Delivery
	Orders     []entity.Order
}

func id(v int64) *int64 { return &v }

func won(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(d int) time.Time { return time.Date(2024, time.January, d, 10, 0, 0, 0, time.UTC) }

// Shop dos equipos con cuatro miembros, dos clientes sin equipo (userA, userB) con un pedido de
// dos libros cada uno, un pedido cancelado sin ítems y un pedido sin envío con un solo ítem.
func Shop() Dataset {
	return Dataset{
		Teams: []entity.Team{
			{ID: 1, Name: "teamA"},
			{ID: 2, Name: "teamB"},
		},
		Members: []entity.Member{
			{ID: 1, Username: "member1", Age: 10, TeamID: id(1)},
			{ID: 2, Username: "member2", Age: 20, TeamID: id(1)},
			{ID: 3, Username: "member3", Age: 30, TeamID: id(2)},
			{ID: 4, Username: "member4", Age: 40, TeamID: id(2)},
			{ID: 5, Username: "userA", Age: 25},
			{ID: 6, Username: "userB", Age: 35},
		},
		// el stock ya descuenta lo vendido en los pedidos
		Items: []entity.Item{
			{ID: 1, Name: "JPA1 Book", Price: won(20000), StockQuantity: 94},
			{ID: 2, Name: "JPA2 Book", Price: won(15000), StockQuantity: 98},
			{ID: 3, Name: "Spring1 Book", Price: won(20000), StockQuantity: 97},
			{ID: 4, Name: "Spring2 Book", Price: won(40000), StockQuantity: 96},
		},
		Deliveries: []entity.Delivery{
			{ID: 1, Address: entity.Address{City: "Seoul", Street: "1", Zipcode: "11111"}, Status: entity.DeliveryReady},
			{ID: 2, Address: entity.Address{City: "Gyeonggi", Street: "2", Zipcode: "123123"}, Status: entity.DeliveryReady},
		},
		Orders: []entity.Order{
			{ID: 1, MemberID: 5, DeliveryID: id(1), OrderDate: day(10), Status: entity.OrderPlaced, Items: []entity.OrderItem{
				{ID: 1, OrderID: 1, ItemID: 1, OrderPrice: won(10000), Quantity: 1},
				{ID: 2, OrderID: 1, ItemID: 2, OrderPrice: won(20000), Quantity: 2},
			}},
			{ID: 2, MemberID: 6, DeliveryID: id(2), OrderDate: day(11), Status: entity.OrderPlaced, Items: []entity.OrderItem{
				{ID: 3, OrderID: 2, ItemID: 3, OrderPrice: won(20000), Quantity: 3},
				{ID: 4, OrderID: 2, ItemID: 4, OrderPrice: won(40000), Quantity: 4},
			}},
			{ID: 3, MemberID: 1, OrderDate: day(12), Status: entity.OrderCanceled},
			{ID: 4, MemberID: 3, OrderDate: day(13), Status: entity.OrderPlaced, Items: []entity.OrderItem{
				{ID: 5, OrderID: 4, ItemID: 1, OrderPrice: won(20000), Quantity: 5},
			}},
		},
	}
}
