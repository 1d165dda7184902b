package entity

// DeliveryStatus estado del envío.
type DeliveryStatus string

const (
	DeliveryReady DeliveryStatus = "READY"
	DeliveryComp  DeliveryStatus = "COMP"
)

// Address dirección de entrega.
type Address struct {
	City    string
	Street  string
	Zipcode string
}

// Delivery envío asociado a un pedido (a-uno).
type Delivery struct {
	ID      int64
	Address Address
	Status  DeliveryStatus
}
