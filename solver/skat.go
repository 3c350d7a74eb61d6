package solver

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jenafrank/skatsearch/engine"
)

// Skat discard enumeration. With the skat picked up the declarer holds
// twelve cards and must put two back; the 66 possible discards are solved
// as separate deals. One transposition table serves all of them because
// the sub-deals overlap heavily.

// AccelerationMode controls how aggressively the enumeration prunes.
type AccelerationMode uint8

const (
	// AlphaBetaAccelerating starts each sub-search at the best value found
	// so far (minus the discard's points), so hopeless discards fail fast.
	AlphaBetaAccelerating AccelerationMode = iota
	// WinningOnly asks only "does this discard win", with a null window at
	// the threshold, and stops at the first winning discard.
	WinningOnly
	// NotAccelerating computes the exact value of all 66 discards.
	NotAccelerating
)

// SkatLine is the result of one discard pair: the two cards put away and
// the game value (double-dummy result plus the discarded points, or the
// 0/1 outcome for Null).
type SkatLine struct {
	SkatCard1 engine.Cards
	SkatCard2 engine.Cards
	Value     uint8
}

// SkatResult is the outcome of a discard enumeration.
type SkatResult struct {
	BestSkat *SkatLine
	AllSkats []SkatLine
	Counters engine.Counters
}

// SolveWithSkat enumerates all discards for the declarer's twelve-card
// pile. declarerCards is the ten-card hand; the two cards missing from the
// full deck form the skat and join the pile.
func SolveWithSkat(leftCards, rightCards, declarerCards engine.Cards, game engine.Game, start engine.Player, mode AccelerationMode) SkatResult {
	var ret SkatResult

	ctx := engine.NewContext(declarerCards, leftCards, rightCards, game, start)
	e := engine.NewEngine(ctx, nil)

	twelve := declarerCards | ctx.Skat()
	combos := skatCombinations(twelve)

	alpha := uint8(0)
	if game == engine.Null {
		alpha = 1
	}

	for _, combo := range combos {
		skat := combo[0] | combo[1]
		e.Context.DeclarerCards = twelve ^ skat

		value := evaluateSkatCombination(e, skat.Points(), mode, alpha, game, &ret.Counters)

		ret.AllSkats = append(ret.AllSkats, SkatLine{SkatCard1: combo[0], SkatCard2: combo[1], Value: value})
		updateBestSkat(&ret, combo[0], combo[1], value, game, &alpha)

		if mode != NotAccelerating && game == engine.Null && value == 0 {
			break
		}
		if mode == WinningOnly && game != engine.Null && value > 60 {
			break
		}
	}

	return ret
}

// SolveWithSkatParallel runs the enumeration across worker goroutines.
// Each worker keeps a private transposition table; the best-so-far value
// is shared under a mutex so late workers still benefit from the pruning
// bound. WinningOnly and the Null early-out degrade to "stop submitting
// once found" rather than an exact cut.
func SolveWithSkatParallel(leftCards, rightCards, declarerCards engine.Cards, game engine.Game, start engine.Player, mode AccelerationMode, workers int) SkatResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx := engine.NewContext(declarerCards, leftCards, rightCards, game, start)
	twelve := declarerCards | ctx.Skat()
	combos := skatCombinations(twelve)

	var (
		mu    sync.Mutex
		ret   SkatResult
		alpha = uint8(0)
		done  bool
	)
	if game == engine.Null {
		alpha = 1
	}

	jobs := make(chan [2]engine.Cards, len(combos))
	for _, combo := range combos {
		jobs <- combo
	}
	close(jobs)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			e := engine.NewEngine(ctx, nil)
			for combo := range jobs {
				mu.Lock()
				if done {
					mu.Unlock()
					return nil
				}
				currentAlpha := alpha
				mu.Unlock()

				skat := combo[0] | combo[1]
				e.Context.DeclarerCards = twelve ^ skat

				var cnt engine.Counters
				value := evaluateSkatCombination(e, skat.Points(), mode, currentAlpha, game, &cnt)

				mu.Lock()
				ret.Counters.Add(cnt)
				ret.AllSkats = append(ret.AllSkats, SkatLine{SkatCard1: combo[0], SkatCard2: combo[1], Value: value})
				updateBestSkat(&ret, combo[0], combo[1], value, game, &alpha)
				if mode != NotAccelerating && game == engine.Null && value == 0 {
					done = true
				}
				if mode == WinningOnly && game != engine.Null && value > 60 {
					done = true
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(ret.AllSkats, func(i, j int) bool {
		if ret.AllSkats[i].Value != ret.AllSkats[j].Value {
			return ret.AllSkats[i].Value > ret.AllSkats[j].Value
		}
		return ret.AllSkats[i].SkatCard1 > ret.AllSkats[j].SkatCard1
	})

	return ret
}

// evaluateSkatCombination solves one sub-deal. The declarer hand is
// already set on the engine; skatValue is the point value of the discard.
func evaluateSkatCombination(e *engine.Engine, skatValue uint8, mode AccelerationMode, alpha uint8, game engine.Game, cnt *engine.Counters) uint8 {
	if game == engine.Null {
		result := SolveDoubleDummy(e, 0, 1, 1)
		cnt.Add(result.Counters)
		return result.Value
	}

	lower, upper := uint8(0), uint8(120)
	switch mode {
	case AlphaBetaAccelerating:
		if alpha > skatValue {
			lower = alpha - skatValue
		}
	case WinningOnly:
		if alpha >= 61 {
			return 0
		}
		lower = 60 - skatValue
		upper = lower + 1
	}

	result := SolveDoubleDummy(e, lower, upper, 1)
	cnt.Add(result.Counters)
	return result.Value + skatValue
}

// updateBestSkat tracks the best discard and keeps alpha at its value.
// For Null smaller is better.
func updateBestSkat(ret *SkatResult, card1, card2 engine.Cards, value uint8, game engine.Game, alpha *uint8) {
	better := value > *alpha
	if game == engine.Null {
		better = value < *alpha
	}
	if better || ret.BestSkat == nil {
		ret.BestSkat = &SkatLine{SkatCard1: card1, SkatCard2: card2, Value: value}
		*alpha = value
	}
}

// skatCombinations returns the 66 unordered pairs of the twelve-card pile.
func skatCombinations(twelve engine.Cards) [][2]engine.Cards {
	singles, n := twelve.Decompose()
	combos := make([][2]engine.Cards, 0, 66)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			combos = append(combos, [2]engine.Cards{singles[i], singles[j]})
		}
	}
	return combos
}
