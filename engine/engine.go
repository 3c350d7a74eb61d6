package engine

// Engine bundles a deal with a transposition table for one solving
// session. Passing an existing table reuses its warm entries, which pays
// off across subproblems of the same deal (for example the 66 skat
// discards); pass nil for a fresh table.
type Engine struct {
	Context Context
	TT      *Table
}

// NewEngine creates a session for ctx. tt may be nil.
func NewEngine(ctx Context, tt *Table) *Engine {
	if tt == nil {
		tt = NewTable()
	}
	return &Engine{Context: ctx, TT: tt}
}

// InitialPosition derives the root position of the session's deal.
func (e *Engine) InitialPosition() Position {
	return InitialPosition(&e.Context)
}

// Search runs the alpha-beta search from pos within [alpha, beta].
func (e *Engine) Search(pos *Position, cnt *Counters, alpha, beta uint8) (Cards, uint8) {
	return Search(&e.Context, pos, e.TT, cnt, alpha, beta)
}
