package solver

import (
	"golang.org/x/sync/errgroup"

	"github.com/jenafrank/skatsearch/engine"
)

// All-games calculator: the value of every announceable contract for one
// hand. The engine only knows Clubs as the trump suit; the other three
// suit games are solved on the suit-swapped deal and the results mapped
// back, which is exact because the swap is a bijection on deals.

// GameKey names an announceable contract.
type GameKey uint8

const (
	ClubsGame GameKey = iota
	SpadesGame
	HeartsGame
	DiamondsGame
	GrandGame
	NullGame
)

func (k GameKey) String() string {
	switch k {
	case ClubsGame:
		return "Clubs"
	case SpadesGame:
		return "Spades"
	case HeartsGame:
		return "Hearts"
	case DiamondsGame:
		return "Diamonds"
	case GrandGame:
		return "Grand"
	default:
		return "Null"
	}
}

// GameValue is the result of one contract: the value when the skat is
// taken up and the best discard made, and the hand value with the skat
// left face down (its points still count for the declarer).
type GameValue struct {
	Key       GameKey
	WithSkat  uint8
	HandValue uint8
	BestSkat  *SkatLine
}

// AllGamesResult collects the six contract evaluations.
type AllGamesResult struct {
	Games [6]GameValue
}

// CalcAllGames evaluates every contract for the declarer's ten cards
// against the two known opposing hands. The six contracts are independent
// and run concurrently.
func CalcAllGames(declarerCards, leftCards, rightCards engine.Cards, start engine.Player) AllGamesResult {
	type task struct {
		key       GameKey
		ctx       engine.Context
		game      engine.Game
	}

	base := engine.NewContext(declarerCards, leftCards, rightCards, engine.Suit, start)

	tasks := []task{
		{ClubsGame, base, engine.Suit},
		{SpadesGame, base.Transformed(engine.SpadesSwitch), engine.Suit},
		{HeartsGame, base.Transformed(engine.HeartsSwitch), engine.Suit},
		{DiamondsGame, base.Transformed(engine.DiamondsSwitch), engine.Suit},
		{GrandGame, engine.NewContext(declarerCards, leftCards, rightCards, engine.Grand, start), engine.Grand},
		{NullGame, engine.NewContext(declarerCards, leftCards, rightCards, engine.Null, start), engine.Null},
	}

	var result AllGamesResult
	var g errgroup.Group

	for i := range tasks {
		g.Go(func() error {
			t := tasks[i]

			skatRes := SolveWithSkat(t.ctx.LeftCards, t.ctx.RightCards, t.ctx.DeclarerCards,
				t.game, t.ctx.StartPlayer, AlphaBetaAccelerating)

			e := engine.NewEngine(t.ctx, nil)
			handRes := SolveWithSkatValue(e)

			gv := GameValue{Key: t.key, HandValue: handRes.Value}
			if skatRes.BestSkat != nil {
				gv.WithSkat = skatRes.BestSkat.Value
				best := *skatRes.BestSkat
				if sw, ok := transformFor(t.key); ok {
					// Map the discard back to the caller's suit naming.
					best.SkatCard1 = engine.SwitchCards(best.SkatCard1, sw)
					best.SkatCard2 = engine.SwitchCards(best.SkatCard2, sw)
				}
				gv.BestSkat = &best
			}
			result.Games[t.key] = gv
			return nil
		})
	}
	_ = g.Wait()

	return result
}

func transformFor(key GameKey) (engine.Transformation, bool) {
	switch key {
	case SpadesGame:
		return engine.SpadesSwitch, true
	case HeartsGame:
		return engine.HeartsSwitch, true
	case DiamondsGame:
		return engine.DiamondsSwitch, true
	default:
		return 0, false
	}
}

// BestGame returns the contract with the highest declarer value when the
// skat may be exchanged. A won Null (value 0, no trick taken) is only
// preferred when no point contract wins.
func (r *AllGamesResult) BestGame() GameValue {
	best := r.Games[0]
	for _, gv := range r.Games[1:] {
		if gv.Key == NullGame {
			continue
		}
		if gv.WithSkat > best.WithSkat {
			best = gv
		}
	}
	if best.WithSkat <= 60 {
		if null := r.Games[NullGame]; null.WithSkat == 0 {
			return null
		}
	}
	return best
}
