package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jenafrank/skatsearch/engine"
)

func mustCards(t *testing.T, s string) engine.Cards {
	t.Helper()
	c, err := engine.ParseCards(s)
	require.NoError(t, err)
	return c
}

// tenTricks is a full ten-trick suit deal with a known double-dummy value
// of 59 declarer points.
func tenTricks(t *testing.T) engine.Context {
	t.Helper()
	ctx := engine.NewContext(
		mustCards(t, "CJ CA C9 C8 C7 HA HT HK H7 S8"),
		mustCards(t, "SJ HJ SA ST SK S9 H9 H8 DA DT"),
		mustCards(t, "DJ CT CK CQ HQ S7 DQ D9 D8 D7"),
		engine.Suit, engine.Declarer)
	require.NoError(t, ctx.Validate())
	return ctx
}

// nullLoss is a Null deal where the declarer is forced into a trick.
func nullLoss(t *testing.T) engine.Context {
	t.Helper()
	ctx := engine.NewContext(
		mustCards(t, "SJ C9 C7 ST S9 S8 H9 DT D9 D8"),
		mustCards(t, "HJ DJ CA CT CK C8 SA SK HA H8"),
		mustCards(t, "CJ CQ SQ HT HK HQ H7 DA DK DQ"),
		engine.Null, engine.Declarer)
	require.NoError(t, ctx.Validate())
	return ctx
}

func TestSolveSmallDeal(t *testing.T) {
	ctx := engine.NewContext(
		mustCards(t, "SA S7"), mustCards(t, "HA D7"), mustCards(t, "DA H7"),
		engine.Suit, engine.Declarer)
	e := engine.NewEngine(ctx, nil)

	res := Solve(e)
	require.Equal(t, uint8(33), res.Value)
	require.Equal(t, engine.AceOfSpades, res.BestCard)
}

func TestSolveTenTricks(t *testing.T) {
	if testing.Short() {
		t.Skip("full deal search")
	}
	e := engine.NewEngine(tenTricks(t), nil)
	res := Solve(e)
	require.Equal(t, uint8(59), res.Value)
}

func TestSolveWinTenTricks(t *testing.T) {
	if testing.Short() {
		t.Skip("full deal search")
	}
	// 59 trick points plus the 7 in the skat clear the 61 threshold.
	ctx := tenTricks(t)
	require.Equal(t, uint8(7), ctx.Skat().Points())
	ctx.DeclarerStartPoints = ctx.Skat().Points()

	e := engine.NewEngine(ctx, nil)
	res := SolveWin(e)
	require.True(t, res.DeclarerWins)
}

func TestSolveNullLoss(t *testing.T) {
	if testing.Short() {
		t.Skip("full deal search")
	}
	e := engine.NewEngine(nullLoss(t), nil)
	res := SolveDoubleDummy(e, 0, 1, 1)
	require.Equal(t, uint8(1), res.Value)

	e = engine.NewEngine(nullLoss(t), nil)
	win := SolveWin(e)
	require.False(t, win.DeclarerWins)
}

func TestSolveDoubleDummyWindowWidth(t *testing.T) {
	ctx := engine.NewContext(
		mustCards(t, "SA S7"), mustCards(t, "HA D7"), mustCards(t, "DA H7"),
		engine.Suit, engine.Declarer)

	// A wide window still brackets the true value.
	e := engine.NewEngine(ctx, nil)
	res := SolveDoubleDummy(e, 0, 120, 40)
	require.Equal(t, uint8(33), res.Value)

	// A window capped below the value reports the cap.
	e = engine.NewEngine(ctx, nil)
	res = SolveDoubleDummy(e, 0, 20, 1)
	require.Equal(t, uint8(20), res.Value)
}

func TestSolveAllCards(t *testing.T) {
	ctx := engine.NewContext(
		mustCards(t, "SA S7"), mustCards(t, "HA D7"), mustCards(t, "DA H7"),
		engine.Suit, engine.Declarer)
	e := engine.NewEngine(ctx, nil)

	lines := SolveAllCards(e, 0, 120)
	require.Len(t, lines, 2)

	byCard := map[engine.Cards]uint8{}
	for _, l := range lines {
		byCard[l.Card] = l.Value
	}
	// Both openings reach 33: the two tricks split the same way.
	require.Equal(t, uint8(33), byCard[engine.AceOfSpades])
	require.Equal(t, uint8(33), byCard[engine.SevenOfSpades])
}

func TestSolveWithSkatValue(t *testing.T) {
	if testing.Short() {
		t.Skip("full deal search")
	}
	e := engine.NewEngine(tenTricks(t), nil)
	res := SolveWithSkatValue(e)
	require.Equal(t, uint8(59+7), res.Value)
}

func TestSolveOptimum(t *testing.T) {
	ctx := engine.NewContext(
		mustCards(t, "SA S7"), mustCards(t, "HA D7"), mustCards(t, "DA H7"),
		engine.Suit, engine.Declarer)
	e := engine.NewEngine(ctx, nil)

	card, err := SolveOptimum(e, BestValue)
	require.NoError(t, err)
	require.True(t, card == engine.AceOfSpades || card == engine.SevenOfSpades)

	e = engine.NewEngine(ctx, nil)
	card, err = SolveOptimum(e, AllWinning)
	require.NoError(t, err)
	require.NotZero(t, card)
}
