package dto

import "github.com/jhoicas/shop-query-api/internal/domain/query"

// MemberSearchRequest condiciones opcionales de búsqueda de miembros. Las edades llegan como
// texto para que un valor no numérico se reporte como criterio inválido.
type MemberSearchRequest struct {
	Username string `query:"username"`
	TeamName string `query:"teamName"`
	AgeGoe   string `query:"ageGoe"`
	AgeLoe   string `query:"ageLoe"`
}

// Criteria convierte la petición en criterios para el composer.
func (r MemberSearchRequest) Criteria() query.Criteria {
	return query.Criteria{
		"username": r.Username,
		"teamName": r.TeamName,
		"ageGoe":   r.AgeGoe,
		"ageLoe":   r.AgeLoe,
	}
}

// MemberTeamResponse miembro con su equipo.
type MemberTeamResponse struct {
	MemberID int64  `json:"member_id"`
	Username string `json:"username"`
	Age      int    `json:"age"`
	TeamID   *int64 `json:"team_id"`
	TeamName string `json:"team_name"`
}

// MemberListResponse lista paginada de miembros.
type MemberListResponse struct {
	Items []MemberTeamResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// MemberSliceResponse slice de miembros.
type MemberSliceResponse struct {
	Items []MemberTeamResponse `json:"items"`
	Slice SliceResponse        `json:"slice"`
}
