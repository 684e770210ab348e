package eval

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Kangyi02/DaoAI-assessment/internal/filter"
	"github.com/Kangyi02/DaoAI-assessment/internal/query"
	"github.com/Kangyi02/DaoAI-assessment/internal/store"
)

// DefaultParallelism is the default number of operands evaluated at once.
// 1 means strictly sequential, depth-first evaluation.
const DefaultParallelism = 1

// Evaluator executes query trees against a store.
//
// The store is injected at construction; the evaluator holds no global
// state and is safe for concurrent Evaluate calls.
type Evaluator struct {
	store    store.Store
	logger   *slog.Logger
	tokens   TokenGenerator
	parallel int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger evaluation records go to.
// Default: a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

// WithParallelism sets how many sibling operands evaluate concurrently.
// Values below 1 are treated as 1 (sequential).
func WithParallelism(n int) Option {
	return func(e *Evaluator) {
		if n < 1 {
			n = 1
		}
		e.parallel = n
	}
}

// WithTokenGenerator sets the source of query correlation tokens.
// Default: UUIDv7Generator. Tests inject a FixedGenerator.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Evaluator) {
		e.tokens = g
	}
}

// New creates an Evaluator backed by s.
func New(s store.Store, opts ...Option) *Evaluator {
	e := &Evaluator{
		store:    s,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokens:   UUIDv7Generator{},
		parallel: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the query tree rooted at root and returns its ResultSet.
//
// Errors from the store propagate unchanged in meaning: a failed fetch
// aborts the whole evaluation, there is no partial result.
func (e *Evaluator) Evaluate(ctx context.Context, root query.Node) (*ResultSet, error) {
	token := e.tokens.Generate()
	log := e.logger.With("query_token", token)

	log.Debug("evaluating query")
	rs, err := e.eval(ctx, log, root)
	if err != nil {
		log.Error("evaluation failed", "error", err)
		return nil, err
	}

	log.Info("query evaluated", "points", rs.Len())
	return rs, nil
}

// eval dispatches on the node kind. The query package's Node interface is
// sealed, so the default arm is unreachable for trees built by query.Parse.
func (e *Evaluator) eval(ctx context.Context, log *slog.Logger, n query.Node) (*ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch node := n.(type) {
	case *query.Crop:
		return e.evalCrop(ctx, log, node)
	case *query.And:
		return e.evalAnd(ctx, log, node)
	case *query.Or:
		return e.evalOr(ctx, log, node)
	default:
		return nil, fmt.Errorf("unsupported query node %T", n)
	}
}

func (e *Evaluator) evalCrop(ctx context.Context, log *slog.Logger, c *query.Crop) (*ResultSet, error) {
	if c.Region.Empty() {
		log.Debug("crop region contains nothing")
		return newResultSet(), nil
	}

	f := filter.FromCrop(c)

	// Store errors pass through unwrapped so callers can classify them.
	pts, err := e.store.FetchByFilter(ctx, f)
	if err != nil {
		return nil, err
	}

	log.Debug("crop evaluated",
		"points", len(pts),
		"proper", c.Proper,
		"has_category", c.Category != nil,
		"groups", len(c.Groups),
	)
	return NewResultSet(pts), nil
}

// evalAnd intersects its operands' id sets, then re-fetches the surviving
// ids in one batched lookup. The combined result therefore carries records
// straight from the store rather than values held over from the operands.
func (e *Evaluator) evalAnd(ctx context.Context, log *slog.Logger, a *query.And) (*ResultSet, error) {
	switch len(a.Operands) {
	case 0:
		return newResultSet(), nil
	case 1:
		return e.eval(ctx, log, a.Operands[0])
	}

	sets, err := e.evalOperands(ctx, log, a.Operands)
	if err != nil {
		return nil, err
	}

	ids := intersectIDs(sets)
	if len(ids) == 0 {
		log.Debug("intersection empty", "operands", len(sets))
		return newResultSet(), nil
	}

	pts, err := e.store.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	log.Debug("intersection evaluated", "operands", len(sets), "points", len(pts))
	return NewResultSet(pts), nil
}

func (e *Evaluator) evalOr(ctx context.Context, log *slog.Logger, o *query.Or) (*ResultSet, error) {
	switch len(o.Operands) {
	case 0:
		return newResultSet(), nil
	case 1:
		return e.eval(ctx, log, o.Operands[0])
	}

	sets, err := e.evalOperands(ctx, log, o.Operands)
	if err != nil {
		return nil, err
	}

	rs := unionSets(sets)
	log.Debug("union evaluated", "operands", len(sets), "points", rs.Len())
	return rs, nil
}

// evalOperands evaluates sibling subtrees, concurrently when parallelism
// allows. Results land in an indexed slice so combination order never
// depends on goroutine scheduling; the first failure cancels the rest.
func (e *Evaluator) evalOperands(ctx context.Context, log *slog.Logger, ops []query.Node) ([]*ResultSet, error) {
	sets := make([]*ResultSet, len(ops))

	if e.parallel <= 1 {
		for i, op := range ops {
			rs, err := e.eval(ctx, log, op)
			if err != nil {
				return nil, err
			}
			sets[i] = rs
		}
		return sets, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			rs, err := e.eval(gctx, log, op)
			if err != nil {
				return err
			}
			sets[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}
