package usecase

import (
	"context"

	"github.com/jhoicas/shop-query-api/internal/application/dto"
	"github.com/jhoicas/shop-query-api/internal/application/loading"
	"github.com/jhoicas/shop-query-api/internal/application/search"
	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/domain/entity"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
)

// OrderQueryUseCase consulta de pedidos con miembro, envío e ítems, con estrategia de carga elegible.
type OrderQueryUseCase struct {
	searcher        *search.Searcher
	filters         query.Composer
	defaultStrategy query.Strategy
	defaultLimit    int
}

// NewOrderQueryUseCase construye el caso de uso.
func NewOrderQueryUseCase(searcher *search.Searcher, defaultStrategy query.Strategy, defaultLimit int) *OrderQueryUseCase {
	return &OrderQueryUseCase{
		searcher:        searcher,
		filters:         catalog.OrderFilters(),
		defaultStrategy: defaultStrategy,
		defaultLimit:    defaultLimit,
	}
}

// List carga todos los pedidos que cumplen los filtros. strategy vacío usa la configurada.
func (uc *OrderQueryUseCase) List(ctx context.Context, in dto.OrderSearchRequest, strategy string) (*dto.OrderListResponse, error) {
	st, err := dto.ParseStrategy(strategy, uc.defaultStrategy)
	if err != nil {
		return nil, err
	}
	filter, err := uc.filters.Compose(in.Criteria())
	if err != nil {
		return nil, err
	}
	nodes, err := uc.searcher.Search(ctx, catalog.OrderRequest(filter, nil), st)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, toOrderResponse(n))
	}
	return &dto.OrderListResponse{Items: items, Strategy: st.String()}, nil
}

// ListPage página de pedidos. Solo naive y batched paginan; strategy vacío usa batched.
func (uc *OrderQueryUseCase) ListPage(ctx context.Context, in dto.OrderSearchRequest, page dto.PageRequest, strategy string) (*dto.OrderListResponse, error) {
	st, err := dto.ParseStrategy(strategy, query.StrategyBatched)
	if err != nil {
		return nil, err
	}
	p, err := page.ToQuery(catalog.OrderSortable, uc.defaultLimit)
	if err != nil {
		return nil, err
	}
	filter, err := uc.filters.Compose(in.Criteria())
	if err != nil {
		return nil, err
	}
	result, err := uc.searcher.SearchPage(ctx, catalog.OrderRequest(filter, nil), p, st)
	if err != nil {
		return nil, err
	}
	mapped := query.MapPage(result, toOrderResponse)
	meta := dto.NewPageResponse(mapped)
	return &dto.OrderListResponse{Items: mapped.Content, Strategy: st.String(), Page: &meta}, nil
}

// toOrder decodifica el nodo en la entidad; itemNames conserva el nombre de cada línea.
func toOrder(n loading.Node) (order entity.Order, itemNames []string) {
	order = entity.Order{
		ID:         n.Row.Int64(catalog.OrderID),
		MemberID:   n.Row.Int64(catalog.OrderMemberID),
		DeliveryID: n.Row.Int64Ptr(catalog.OrderDeliveryID),
		OrderDate:  n.Row.Time(catalog.OrderDate),
		Status:     entity.OrderStatus(n.Row.String(catalog.OrderStatus)),
	}
	children := n.Children[catalog.AssocOrderItems]
	order.Items = make([]entity.OrderItem, 0, len(children))
	itemNames = make([]string, 0, len(children))
	for _, r := range children {
		order.Items = append(order.Items, entity.OrderItem{
			ID:         r.Int64(catalog.OrderItemID),
			OrderID:    r.Int64(catalog.OrderItemOrderID),
			ItemID:     r.Int64(catalog.OrderItemItemID),
			OrderPrice: r.Decimal(catalog.OrderItemPrice),
			Quantity:   r.Int(catalog.OrderItemQuantity),
		})
		itemNames = append(itemNames, r.String(catalog.ItemName))
	}
	return order, itemNames
}

func toOrderResponse(n loading.Node) dto.OrderResponse {
	order, names := toOrder(n)
	out := dto.OrderResponse{
		OrderID:     order.ID,
		Name:        n.Row.String(catalog.MemberUsername),
		OrderDate:   order.OrderDate,
		OrderStatus: string(order.Status),
		OrderItems:  make([]dto.OrderItemResponse, len(order.Items)),
		TotalPrice:  order.TotalPrice(),
	}
	if order.DeliveryID != nil {
		out.Address = &dto.AddressResponse{
			City:    n.Row.String(catalog.DeliveryCity),
			Street:  n.Row.String(catalog.DeliveryStreet),
			Zipcode: n.Row.String(catalog.DeliveryZipcode),
		}
	}
	for i, it := range order.Items {
		out.OrderItems[i] = dto.OrderItemResponse{ItemName: names[i], OrderPrice: it.OrderPrice, Count: it.Quantity}
	}
	return out
}
