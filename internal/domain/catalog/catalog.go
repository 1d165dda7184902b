// Package catalog describe el esquema de la tienda: entidades, asociaciones, filtros de búsqueda
// y propiedades ordenables expuestas a los clientes.
package catalog

import "github.com/jhoicas/shop-query-api/internal/domain/query"

// Nombres de entidad.
const (
	Team      = "team"
	Member    = "member"
	Item      = "item"
	Delivery  = "delivery"
	Order     = "order"
	OrderItem = "orderItem"
)

// Nombres de asociación.
const (
	AssocTeam       = "team"
	AssocMembers    = "members"
	AssocOrders     = "orders"
	AssocMember     = "member"
	AssocDelivery   = "delivery"
	AssocOrderItems = "orderItems"
	AssocItem       = "item"
)

// Campos usados por filtros, decodificadores y seeds.
const (
	TeamID   query.Field = "t.id"
	TeamName query.Field = "t.name"

	MemberID       query.Field = "m.id"
	MemberUsername query.Field = "m.username"
	MemberAge      query.Field = "m.age"
	MemberTeamID   query.Field = "m.team_id"

	ItemID    query.Field = "i.id"
	ItemName  query.Field = "i.name"
	ItemPrice query.Field = "i.price"
	ItemStock query.Field = "i.stock_quantity"

	DeliveryID      query.Field = "d.id"
	DeliveryCity    query.Field = "d.city"
	DeliveryStreet  query.Field = "d.street"
	DeliveryZipcode query.Field = "d.zipcode"
	DeliveryStatus  query.Field = "d.status"

	OrderID         query.Field = "o.id"
	OrderMemberID   query.Field = "o.member_id"
	OrderDeliveryID query.Field = "o.delivery_id"
	OrderDate       query.Field = "o.order_date"
	OrderStatus     query.Field = "o.status"

	OrderItemID       query.Field = "oi.id"
	OrderItemOrderID  query.Field = "oi.order_id"
	OrderItemItemID   query.Field = "oi.item_id"
	OrderItemPrice    query.Field = "oi.order_price"
	OrderItemQuantity query.Field = "oi.quantity"
)

// Entities devuelve las entidades en orden de creación (dependencias primero).
func Entities() []query.Entity {
	return []query.Entity{
		{Name: Team, Table: "team", Alias: "t", Key: "id", Columns: []string{"id", "name"}},
		{Name: Member, Table: "member", Alias: "m", Key: "id", Columns: []string{"id", "username", "age", "team_id"}},
		{Name: Item, Table: "item", Alias: "i", Key: "id", Columns: []string{"id", "name", "price", "stock_quantity"}},
		{Name: Delivery, Table: "delivery", Alias: "d", Key: "id", Columns: []string{"id", "city", "street", "zipcode", "status"}},
		{Name: Order, Table: "orders", Alias: "o", Key: "id", Columns: []string{"id", "member_id", "delivery_id", "order_date", "status"}},
		{Name: OrderItem, Table: "order_item", Alias: "oi", Key: "id", Columns: []string{"id", "order_id", "item_id", "order_price", "quantity"}},
	}
}

// Associations relaciones navegables del esquema.
func Associations() []query.Association {
	return []query.Association{
		{Owner: Member, Name: AssocTeam, Target: Team, Cardinality: query.ToOne, OwnerColumn: "team_id", TargetColumn: "id"},
		{Owner: Team, Name: AssocMembers, Target: Member, Cardinality: query.ToMany, OwnerColumn: "id", TargetColumn: "team_id"},
		{Owner: Member, Name: AssocOrders, Target: Order, Cardinality: query.ToMany, OwnerColumn: "id", TargetColumn: "member_id"},
		{Owner: Order, Name: AssocMember, Target: Member, Cardinality: query.ToOne, OwnerColumn: "member_id", TargetColumn: "id"},
		{Owner: Order, Name: AssocDelivery, Target: Delivery, Cardinality: query.ToOne, OwnerColumn: "delivery_id", TargetColumn: "id"},
		{Owner: Order, Name: AssocOrderItems, Target: OrderItem, Cardinality: query.ToMany, OwnerColumn: "id", TargetColumn: "order_id", With: []string{AssocItem}},
		{Owner: OrderItem, Name: AssocItem, Target: Item, Cardinality: query.ToOne, OwnerColumn: "item_id", TargetColumn: "id"},
	}
}

var schema = query.MustSchema(Entities(), Associations())

// Schema esquema inmutable de la tienda.
func Schema() *query.Schema { return schema }

// MemberFilters criterios de búsqueda de miembros.
func MemberFilters() query.Composer {
	return query.NewComposer(
		query.Text("username", MemberUsername),
		query.Text("teamName", TeamName),
		query.AtLeast("ageGoe", MemberAge),
		query.AtMost("ageLoe", MemberAge),
	)
}

// OrderFilters criterios de búsqueda de pedidos.
func OrderFilters() query.Composer {
	return query.NewComposer(
		query.Text("memberName", MemberUsername),
		query.Text("orderStatus", OrderStatus),
	)
}

// MemberSortable propiedades por las que un cliente puede ordenar miembros.
var MemberSortable = map[string]query.Field{
	"id":       MemberID,
	"username": MemberUsername,
	"age":      MemberAge,
	"teamName": TeamName,
}

// OrderSortable propiedades por las que un cliente puede ordenar pedidos.
var OrderSortable = map[string]query.Field{
	"id":          OrderID,
	"orderDate":   OrderDate,
	"orderStatus": OrderStatus,
	"memberName":  MemberUsername,
}

// MemberTeamRequest unión member -> team usada por las búsquedas de miembros.
func MemberTeamRequest(filter query.Predicate, sort query.Sort) query.Request {
	return query.Request{Entity: Member, Joins: []string{AssocTeam}, Filter: filter, Sort: sort}
}

// OrderRequest pedidos con miembro y envío, y sus ítems como colección.
func OrderRequest(filter query.Predicate, sort query.Sort) query.Request {
	return query.Request{
		Entity:      Order,
		Joins:       []string{AssocMember, AssocDelivery},
		Collections: []string{AssocOrderItems},
		Filter:      filter,
		Sort:        sort,
	}
}
