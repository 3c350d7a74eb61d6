package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, declarer, left, right string, game Game, start Player) Context {
	t.Helper()
	ctx := NewContext(mustCards(t, declarer), mustCards(t, left), mustCards(t, right), game, start)
	require.NoError(t, ctx.Validate())
	return ctx
}

func TestInitialPosition(t *testing.T) {
	ctx := testContext(t, "SA S7", "HA D7", "DA H7", Suit, Declarer)
	pos := InitialPosition(&ctx)

	require.Equal(t, Declarer, pos.Player)
	require.Equal(t, Cards(0), pos.PlayedCards)
	require.Equal(t, ctx.DeclarerCards, pos.PlayerCards)
	require.Equal(t, uint8(0), pos.AugenDeclarer)
	require.Equal(t, uint8(0), pos.AugenTeam)
	require.Equal(t, ctx.augenTotal(), pos.AugenFuture)
}

func TestMakeMoveTrickResolution(t *testing.T) {
	// SA wins over ST and SK; the declarer banks 25 points and leads on.
	ctx := testContext(t, "SA", "ST", "SK", Suit, Declarer)
	pos := InitialPosition(&ctx)

	pos = pos.MakeMove(AceOfSpades, &ctx)
	require.Equal(t, Left, pos.Player)
	require.Equal(t, uint8(1), pos.TrickCardsCount)
	require.Equal(t, Spades, pos.TrickSuit)

	pos = pos.MakeMove(TenOfSpades, &ctx)
	require.Equal(t, Right, pos.Player)

	pos = pos.MakeMove(KingOfSpades, &ctx)
	require.Equal(t, Declarer, pos.Player) // winner leads
	require.Equal(t, uint8(0), pos.TrickCardsCount)
	require.Equal(t, Cards(0), pos.TrickSuit)
	require.Equal(t, uint8(25), pos.AugenDeclarer)
	require.Equal(t, uint8(0), pos.AugenTeam)
	require.Equal(t, uint8(0), pos.AugenFuture)
	require.Equal(t, Cards(0), pos.PlayerCards)
}

func TestMakeMoveNullTrickValue(t *testing.T) {
	ctx := testContext(t, "SA", "ST", "SK", Null, Declarer)
	pos := InitialPosition(&ctx)

	pos = pos.MakeMove(AceOfSpades, &ctx)
	pos = pos.MakeMove(TenOfSpades, &ctx)
	pos = pos.MakeMove(KingOfSpades, &ctx)

	// A Null trick is worth one symbolic point to its winner.
	require.Equal(t, Declarer, pos.Player)
	require.Equal(t, uint8(1), pos.AugenDeclarer)
}

// Hands plus played cards must always reproduce the deal, and the current
// hands stay pairwise disjoint.
func TestCardConservation(t *testing.T) {
	ctx := testContext(t,
		"CJ CA SA HA ST",
		"SJ CT SK SQ HK",
		"HJ CK S9 S8 H9",
		Suit, Declarer)

	all := ctx.DeclarerCards | ctx.LeftCards | ctx.RightCards
	pos := InitialPosition(&ctx)

	for pos.PlayerCards != 0 {
		moves, n := SortedMoves(pos.LegalMoves())
		require.Greater(t, n, 0)

		prevDeclarer := pos.AugenDeclarer
		pos = pos.MakeMove(moves[0], &ctx)

		require.Equal(t, all, pos.DeclarerCards|pos.LeftCards|pos.RightCards|pos.PlayedCards)
		require.Zero(t, pos.DeclarerCards&pos.LeftCards)
		require.Zero(t, pos.DeclarerCards&pos.RightCards)
		require.Zero(t, pos.LeftCards&pos.RightCards)

		// Points only ever accumulate.
		require.GreaterOrEqual(t, pos.AugenDeclarer, prevDeclarer)
	}
}

func TestMidTrickContext(t *testing.T) {
	// Right has led the HA; declarer to move must follow hearts.
	ctx := NewContext(
		mustCards(t, "SA H7"),
		mustCards(t, "DA D7"),
		mustCards(t, "HA HT"),
		Suit, Declarer)
	ctx.TrickCards = mustCards(t, "HA")
	ctx.TrickSuit = Hearts
	require.NoError(t, ctx.Validate())

	pos := InitialPosition(&ctx)
	require.Equal(t, uint8(1), pos.TrickCardsCount)
	require.Equal(t, mustCards(t, "SA H7"), pos.PlayerCards)
	require.Equal(t, SevenOfHearts, pos.LegalMoves())

	pos = pos.MakeMove(SevenOfHearts, &ctx)
	require.Equal(t, Left, pos.Player)

	pos = pos.MakeMove(SevenOfDiamonds, &ctx)
	// Right took the trick with the Ace of Hearts.
	require.Equal(t, Right, pos.Player)
	require.Equal(t, uint8(11), pos.AugenTeam)
}

func TestForecastTrickWinner(t *testing.T) {
	// Declarer leads the SA; no spade beats it and nobody can trump.
	ctx := testContext(t, "SA", "ST", "SK", Suit, Declarer)
	pos := InitialPosition(&ctx)

	winner, decided := pos.ForecastTrickWinner(AceOfSpades, &ctx)
	require.True(t, decided)
	require.Equal(t, Declarer, winner)

	// Leading the S7 the outcome depends on the opponents' choices.
	ctx = testContext(t, "S7 SA", "ST S8", "SK S9", Suit, Declarer)
	pos = InitialPosition(&ctx)
	_, decided = pos.ForecastTrickWinner(SevenOfSpades, &ctx)
	require.False(t, decided)
}

func TestReducedMovesSubsetOfLegal(t *testing.T) {
	ctx := testContext(t,
		"CJ CA C9 C8 HA",
		"SJ CT SK SQ HK",
		"HJ CK S9 S8 H9",
		Suit, Declarer)
	pos := InitialPosition(&ctx)

	legal := pos.LegalMoves()
	reduced := pos.ReducedMoves(&ctx)
	require.NotZero(t, reduced)
	require.Zero(t, reduced&^legal, "reduced moves must be legal moves")
	// C9 C8 are an equal run; at most one survives.
	require.NotEqual(t, mustCards(t, "C9 C8"), reduced&mustCards(t, "C9 C8"))
}
