// Package solver provides the high-level solving entry points on top of
// the engine: win checks, exact double-dummy values, per-card evaluations,
// optimum move selection, skat discard enumeration and the all-games
// calculator.
package solver

import (
	"github.com/pkg/errors"

	"github.com/jenafrank/skatsearch/engine"
)

// WinResult is the outcome of a win check.
type WinResult struct {
	BestCard     engine.Cards
	DeclarerWins bool
	Counters     engine.Counters
}

// ValueResult is the outcome of a value search.
type ValueResult struct {
	BestCard  engine.Cards
	Value     uint8
	Counters  engine.Counters
}

// CardLine is the evaluation of a single candidate move: the card, the best
// reply found, and the resulting declarer points.
type CardLine struct {
	Card     engine.Cards
	FollowUp engine.Cards
	Value    uint8
}

// SolveWin decides whether the declarer reaches the context's winning
// threshold under optimal play, using a null window at the threshold.
func SolveWin(e *engine.Engine) WinResult {
	var cnt engine.Counters

	alpha := e.Context.PointsToWin - 1
	beta := e.Context.PointsToWin
	if e.Context.GameType == engine.Null {
		alpha, beta = 0, 1
	}

	pos := e.InitialPosition()
	bestCard, value := e.Search(&pos, &cnt, alpha, beta)

	declarerWins := value > alpha
	if e.Context.GameType == engine.Null {
		declarerWins = !declarerWins
	}

	return WinResult{BestCard: bestCard, DeclarerWins: declarerWins, Counters: cnt}
}

// SolveDoubleDummy determines the declarer's point result inside
// [alpha, beta] by sliding a window of the given width upward until the
// search falls below the window's top. Width 1 yields the exact value;
// wider windows trade precision for speed when a bound suffices.
func SolveDoubleDummy(e *engine.Engine, alpha, beta, width uint8) ValueResult {
	var cnt engine.Counters
	var bestCard engine.Cards
	var value uint8

	current := alpha
	for current < beta {
		top := current + width
		if top > beta {
			top = beta
		}

		pos := e.InitialPosition()
		bestCard, value = e.Search(&pos, &cnt, current, top)

		if value < top {
			break
		}
		current = top
	}

	return ValueResult{BestCard: bestCard, Value: value, Counters: cnt}
}

// Solve returns the exact declarer points of the deal.
func Solve(e *engine.Engine) ValueResult {
	return SolveDoubleDummy(e, 0, 120, 1)
}

// SolveWithSkatValue solves the deal and adds the points lying in the
// skat, giving the declarer's full game value for a hand game. Null values
// pass through unchanged.
func SolveWithSkatValue(e *engine.Engine) ValueResult {
	ret := SolveDoubleDummy(e, 0, 120, 1)
	if e.Context.GameType != engine.Null {
		ret.Value += e.Context.Skat().Points()
	}
	return ret
}

// SolveAllCards evaluates every legal move of the player to move within
// [alpha, beta], one sub-search per move.
func SolveAllCards(e *engine.Engine, alpha, beta uint8) []CardLine {
	pos := e.InitialPosition()
	return SolveAllCardsFromPosition(e, &pos, alpha, beta)
}

// SolveAllCardsFromPosition is SolveAllCards starting from an arbitrary
// position.
func SolveAllCardsFromPosition(e *engine.Engine, pos *engine.Position, alpha, beta uint8) []CardLine {
	moves, n := engine.SortedMoves(pos.LegalMoves())

	var cnt engine.Counters
	lines := make([]CardLine, 0, n)
	for i := 0; i < n; i++ {
		child := pos.MakeMove(moves[i], &e.Context)
		followUp, value := e.Search(&child, &cnt, alpha, beta)
		lines = append(lines, CardLine{Card: moves[i], FollowUp: followUp, Value: value})
	}
	return lines
}

// OptimumMode selects the candidate filter of SolveOptimum.
type OptimumMode uint8

const (
	// BestValue keeps only the moves achieving the best exact value.
	BestValue OptimumMode = iota
	// AllWinning keeps every move that still wins for the mover's side,
	// falling back to all moves when none does.
	AllWinning
)

// SolveOptimum picks the move to actually play: among the candidates left
// by the mode filter, the depth-biased optimum search breaks ties towards
// fast wins and slow losses.
func SolveOptimum(e *engine.Engine, mode OptimumMode) (engine.Cards, error) {
	pos := e.InitialPosition()
	return SolveOptimumFromPosition(e, &pos, mode)
}

// SolveOptimumFromPosition is SolveOptimum starting from an arbitrary
// position.
func SolveOptimumFromPosition(e *engine.Engine, pos *engine.Position, mode OptimumMode) (engine.Cards, error) {
	lines := SolveAllCardsFromPosition(e, pos, 0, 120)
	if len(lines) == 0 {
		return 0, errors.New("no legal moves")
	}

	candidates := filterCandidates(lines, pos.Player, e.Context.GameType, mode)
	if len(candidates) == 0 {
		return 0, errors.New("no candidates after filtering")
	}

	var cnt engine.Counters
	isDeclarer := pos.Player == engine.Declarer

	bestMove := candidates[0]
	bestScore := 1 << 30
	if isDeclarer {
		bestScore = -bestScore
	}

	for _, move := range candidates {
		child := pos.MakeMove(move, &e.Context)
		_, score := engine.SearchOptimum(&e.Context, &child, &cnt, -(1 << 30), 1<<30, 1)

		if isDeclarer && score > bestScore || !isDeclarer && score < bestScore {
			bestScore = score
			bestMove = move
		}
	}

	return bestMove, nil
}

func filterCandidates(lines []CardLine, player engine.Player, game engine.Game, mode OptimumMode) []engine.Cards {
	isDeclarer := player == engine.Declarer
	isNull := game == engine.Null

	// wantHigh: the mover prefers higher declarer points.
	wantHigh := isDeclarer != isNull

	switch mode {
	case BestValue:
		best := lines[0].Value
		for _, l := range lines[1:] {
			if wantHigh && l.Value > best || !wantHigh && l.Value < best {
				best = l.Value
			}
		}
		var out []engine.Cards
		for _, l := range lines {
			if l.Value == best {
				out = append(out, l.Card)
			}
		}
		return out

	default: // AllWinning
		winning := func(v uint8) bool {
			if isNull {
				if isDeclarer {
					return v == 0
				}
				return v == 1
			}
			if isDeclarer {
				return v > 60
			}
			return v <= 60
		}

		var out []engine.Cards
		for _, l := range lines {
			if winning(l.Value) {
				out = append(out, l.Card)
			}
		}
		if len(out) == 0 {
			for _, l := range lines {
				out = append(out, l.Card)
			}
		}
		return out
	}
}
