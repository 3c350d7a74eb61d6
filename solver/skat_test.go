package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jenafrank/skatsearch/engine"
)

func TestSkatCombinations(t *testing.T) {
	twelve := mustCards(t, "CJ SJ HJ DJ CA CT CK CQ C9 C8 C7 SA")
	combos := skatCombinations(twelve)
	require.Len(t, combos, 66)

	seen := map[engine.Cards]bool{}
	for _, c := range combos {
		require.Equal(t, 2, (c[0] | c[1]).Count())
		require.False(t, seen[c[0]|c[1]], "duplicate pair")
		seen[c[0]|c[1]] = true
	}
}

func TestSolveWithSkatExact(t *testing.T) {
	if testing.Short() {
		t.Skip("66 full searches")
	}
	ctx := tenTricks(t)

	res := SolveWithSkat(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
		engine.Suit, engine.Declarer, NotAccelerating)

	// Exact mode evaluates every pair of the twelve-card pile.
	require.Len(t, res.AllSkats, 66)
	require.NotNil(t, res.BestSkat)

	// The best pair is at least as good as every enumerated one, and at
	// least as good as discarding the skat unchanged (59 + 7).
	for _, line := range res.AllSkats {
		require.GreaterOrEqual(t, res.BestSkat.Value, line.Value)
	}
	require.GreaterOrEqual(t, res.BestSkat.Value, uint8(66))
}

func TestSolveWithSkatWinningOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("full deal searches")
	}
	ctx := tenTricks(t)

	res := SolveWithSkat(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
		engine.Suit, engine.Declarer, WinningOnly)

	// The hand wins with the right discard, so a winning pair must be
	// reported.
	require.NotNil(t, res.BestSkat)
	require.Greater(t, res.BestSkat.Value, uint8(60))
}

func TestSolveWithSkatAccelerating(t *testing.T) {
	if testing.Short() {
		t.Skip("66 full searches")
	}
	ctx := tenTricks(t)

	exact := SolveWithSkat(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
		engine.Suit, engine.Declarer, NotAccelerating)
	accel := SolveWithSkat(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
		engine.Suit, engine.Declarer, AlphaBetaAccelerating)

	// Acceleration may blur the non-best lines but must find the same
	// best value.
	require.Equal(t, exact.BestSkat.Value, accel.BestSkat.Value)
}

func TestSolveWithSkatParallelMatchesSerial(t *testing.T) {
	if testing.Short() {
		t.Skip("66 full searches")
	}
	ctx := tenTricks(t)

	serial := SolveWithSkat(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
		engine.Suit, engine.Declarer, NotAccelerating)
	parallel := SolveWithSkatParallel(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
		engine.Suit, engine.Declarer, NotAccelerating, 4)

	require.Len(t, parallel.AllSkats, 66)
	require.Equal(t, serial.BestSkat.Value, parallel.BestSkat.Value)
}
