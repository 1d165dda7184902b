package entity

// Member socio de la tienda; TeamID es nil cuando no pertenece a ningún equipo.
type Member struct {
	ID       int64
	Username string
	Age      int
	TeamID   *int64
}

// MemberTeam proyección de un miembro con el nombre de su equipo (vacío si no tiene).
type MemberTeam struct {
	MemberID int64
	Username string
	Age      int
	TeamID   *int64
	TeamName string
}
