package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/shop-query-api/internal/application/dto"
	"github.com/jhoicas/shop-query-api/internal/application/loading"
	"github.com/jhoicas/shop-query-api/internal/application/search"
	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/domain/entity"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// MemberQueryUseCase búsquedas dinámicas de miembros con su equipo.
type MemberQueryUseCase struct {
	searcher     *search.Searcher
	filters      query.Composer
	defaultLimit int
}

// NewMemberQueryUseCase construye el caso de uso.
func NewMemberQueryUseCase(searcher *search.Searcher, defaultLimit int) *MemberQueryUseCase {
	return &MemberQueryUseCase{searcher: searcher, filters: catalog.MemberFilters(), defaultLimit: defaultLimit}
}

func (uc *MemberQueryUseCase) request(in dto.MemberSearchRequest, sort query.Sort) (query.Request, error) {
	filter, err := uc.filters.Compose(in.Criteria())
	if err != nil {
		return query.Request{}, err
	}
	return catalog.MemberTeamRequest(filter, sort), nil
}

// Search lista todos los miembros que cumplen las condiciones presentes.
func (uc *MemberQueryUseCase) Search(ctx context.Context, in dto.MemberSearchRequest, sort []string) ([]dto.MemberTeamResponse, error) {
	s, err := dto.ParseSort(sort, catalog.MemberSortable)
	if err != nil {
		return nil, err
	}
	req, err := uc.request(in, s)
	if err != nil {
		return nil, err
	}
	nodes, err := uc.searcher.Search(ctx, req, query.StrategyBatched)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MemberTeamResponse, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, toMemberTeamResponse(n))
	}
	return items, nil
}

// SearchPage página de miembros con total (el conteo se omite cuando es deducible).
func (uc *MemberQueryUseCase) SearchPage(ctx context.Context, in dto.MemberSearchRequest, page dto.PageRequest) (*dto.MemberListResponse, error) {
	p, err := page.ToQuery(catalog.MemberSortable, uc.defaultLimit)
	if err != nil {
		return nil, err
	}
	req, err := uc.request(in, nil)
	if err != nil {
		return nil, err
	}
	result, err := uc.searcher.SearchPage(ctx, req, p, query.StrategyBatched)
	if err != nil {
		return nil, err
	}
	mapped := query.MapPage(result, toMemberTeamResponse)
	return &dto.MemberListResponse{Items: mapped.Content, Page: dto.NewPageResponse(mapped)}, nil
}

// SearchSlice página sin total.
func (uc *MemberQueryUseCase) SearchSlice(ctx context.Context, in dto.MemberSearchRequest, page dto.PageRequest) (*dto.MemberSliceResponse, error) {
	p, err := page.ToQuery(catalog.MemberSortable, uc.defaultLimit)
	if err != nil {
		return nil, err
	}
	req, err := uc.request(in, nil)
	if err != nil {
		return nil, err
	}
	result, err := uc.searcher.SearchSlice(ctx, req, p, query.StrategyBatched)
	if err != nil {
		return nil, err
	}
	mapped := query.MapSlice(result, toMemberTeamResponse)
	return &dto.MemberSliceResponse{
		Items: mapped.Content,
		Slice: dto.SliceResponse{Limit: mapped.Limit, Offset: mapped.Offset, HasNext: mapped.HasNext},
	}, nil
}

// FindByUsername devuelve el miembro o nil si no existe; varios con el mismo nombre es un error.
func (uc *MemberQueryUseCase) FindByUsername(ctx context.Context, username string) (*dto.MemberTeamResponse, error) {
	if strings.TrimSpace(username) == "" {
		return nil, nil
	}
	node, found, err := uc.searcher.FindOne(ctx, catalog.MemberTeamRequest(query.Eq(catalog.MemberUsername, username), nil))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	out := toMemberTeamResponse(node)
	return &out, nil
}

func toMemberTeam(n loading.Node) entity.MemberTeam {
	return entity.MemberTeam{
		MemberID: n.Row.Int64(catalog.MemberID),
		Username: n.Row.String(catalog.MemberUsername),
		Age:      n.Row.Int(catalog.MemberAge),
		TeamID:   n.Row.Int64Ptr(catalog.TeamID),
		TeamName: n.Row.String(catalog.TeamName),
	}
}

func toMemberTeamResponse(n loading.Node) dto.MemberTeamResponse {
	m := toMemberTeam(n)
	return dto.MemberTeamResponse{
		MemberID: m.MemberID,
		Username: m.Username,
		Age:      m.Age,
		TeamID:   m.TeamID,
		TeamName: m.TeamName,
	}
}
