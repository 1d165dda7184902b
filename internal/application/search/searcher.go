// Package search es la fachada del núcleo de consultas: planifica, elige la estrategia de carga,
// pagina con conteo diferido y registra cuántos queries costó cada búsqueda.
package search

import (
	"context"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/application/loading"
	"github.com/jhoicas/shop-query-api/internal/application/ports"
	"github.com/jhoicas/shop-query-api/internal/domain/query"
	"github.com/jhoicas/shop-query-api/pkg/logger"
)

// Options ajustes leídos de la configuración al arrancar.
type Options struct {
	BatchSize int
	// ConsistentCount ejecuta contenido y conteo en una transacción de solo lectura (requiere TxRunner).
	ConsistentCount bool
}

// Searcher ejecuta peticiones de búsqueda sobre un QueryExecutor. Es seguro para uso concurrente:
// no guarda estado entre llamadas.
type Searcher struct {
	planner *query.Planner
	exec    ports.QueryExecutor
	tx      ports.ReadTxRunner
	opts    Options
	log     *logger.Logger
}

// New construye el Searcher. tx puede ser nil; en ese caso ConsistentCount se ignora.
func New(planner *query.Planner, exec ports.QueryExecutor, tx ports.ReadTxRunner, opts Options, log *logger.Logger) (*Searcher, error) {
	if err := loading.ValidateBatchSize(opts.BatchSize); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Searcher{planner: planner, exec: exec, tx: tx, opts: opts, log: log}, nil
}

// Planner devuelve el planificador (para validar peticiones sin ejecutarlas).
func (s *Searcher) Planner() *query.Planner { return s.planner }

// Search carga todos los resultados sin paginar.
func (s *Searcher) Search(ctx context.Context, req query.Request, strategy query.Strategy) ([]loading.Node, error) {
	plan, err := s.planner.Plan(req, nil, strategy)
	if err != nil {
		return nil, err
	}
	exec := &countingExecutor{next: s.exec}
	nodes, err := s.load(ctx, exec, plan)
	if err != nil {
		return nil, err
	}
	s.trace(ctx, "search", plan, exec, len(nodes)).Msg("search")
	return nodes, nil
}

// SearchPage carga una página y su total. El conteo solo se consulta cuando no puede deducirse
// de la página leída.
func (s *Searcher) SearchPage(ctx context.Context, req query.Request, page query.PageRequest, strategy query.Strategy) (query.PageResult[loading.Node], error) {
	plan, err := s.planner.Plan(req, &page, strategy)
	if err != nil {
		return query.PageResult[loading.Node]{}, err
	}

	var result query.PageResult[loading.Node]
	run := func(base ports.QueryExecutor) error {
		exec := &countingExecutor{next: base}
		nodes, err := s.load(ctx, exec, plan)
		if err != nil {
			return err
		}
		counted := false
		result, err = query.NewPage(ctx, nodes, *plan.Page, func(ctx context.Context) (int64, error) {
			counted = true
			return exec.Count(ctx, *plan.Count)
		})
		if err != nil {
			return err
		}
		s.trace(ctx, "search_page", plan, exec, len(nodes)).
			Bool("count_elided", !counted).
			Int64("total", *result.Total).
			Msg("search page")
		return nil
	}

	if s.opts.ConsistentCount && s.tx != nil {
		err = s.tx.ReadOnly(ctx, run)
	} else {
		err = run(s.exec)
	}
	if err != nil {
		return query.PageResult[loading.Node]{}, err
	}
	return result, nil
}

// SearchSlice carga una página sin total: pide limit+1 padres para saber si hay más.
func (s *Searcher) SearchSlice(ctx context.Context, req query.Request, page query.PageRequest, strategy query.Strategy) (query.Slice[loading.Node], error) {
	plan, err := s.planner.Plan(req, &page, strategy)
	if err != nil {
		return query.Slice[loading.Node]{}, err
	}
	plan.Main.Limit = page.Limit + 1
	plan.Count = nil

	exec := &countingExecutor{next: s.exec}
	nodes, err := s.load(ctx, exec, plan)
	if err != nil {
		return query.Slice[loading.Node]{}, err
	}
	hasNext := len(nodes) > page.Limit
	if hasNext {
		nodes = nodes[:page.Limit]
	}
	s.trace(ctx, "search_slice", plan, exec, len(nodes)).Bool("has_next", hasNext).Msg("search slice")
	return query.Slice[loading.Node]{Content: nodes, Offset: page.Offset, Limit: page.Limit, HasNext: hasNext}, nil
}

// FindOne devuelve el único resultado de la petición. Sin resultados devuelve found=false;
// con más de uno, ErrAmbiguousResult. Nunca lee más de dos padres.
func (s *Searcher) FindOne(ctx context.Context, req query.Request) (loading.Node, bool, error) {
	plan, err := s.planner.Plan(req, nil, query.StrategyBatched)
	if err != nil {
		return loading.Node{}, false, err
	}
	plan.Main.Limit = 2

	exec := &countingExecutor{next: s.exec}
	nodes, err := s.load(ctx, exec, plan)
	if err != nil {
		return loading.Node{}, false, err
	}
	s.trace(ctx, "find_one", plan, exec, len(nodes)).Msg("find one")
	switch len(nodes) {
	case 0:
		return loading.Node{}, false, nil
	case 1:
		return nodes[0], true, nil
	default:
		return loading.Node{}, false, fmt.Errorf("%w: %s", query.ErrAmbiguousResult, req.Filter)
	}
}

func (s *Searcher) load(ctx context.Context, exec ports.QueryExecutor, plan query.Plan) ([]loading.Node, error) {
	l, err := loading.New(plan.Strategy, exec, s.opts.BatchSize)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, plan)
}
