package entity

// Team agrupa miembros.
type Team struct {
	ID   int64
	Name string
}
