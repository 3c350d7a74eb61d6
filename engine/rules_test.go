package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalMoves(t *testing.T) {
	hand := mustCards(t, "SA S7 HA CJ")

	// Leading: everything goes.
	require.Equal(t, hand, LegalMoves(0, hand))

	// Spades led: must follow.
	require.Equal(t, mustCards(t, "SA S7"), LegalMoves(Spades, hand))

	// Void in the led suit: full hand again.
	require.Equal(t, hand, LegalMoves(Diamonds, hand))

	// Trump led in a suit game: the Jack follows.
	require.Equal(t, JackOfClubs, LegalMoves(TrumpSuit, mustCards(t, "CJ SA HA")))
}

func TestSuitForCard(t *testing.T) {
	// Suit game: Jacks and Clubs are one suit.
	require.Equal(t, TrumpSuit, SuitForCard(JackOfDiamonds, Suit))
	require.Equal(t, TrumpSuit, SuitForCard(AceOfClubs, Suit))
	require.Equal(t, Spades, SuitForCard(AceOfSpades, Suit))

	// Grand: Jacks alone are trump, Clubs is a plain suit.
	require.Equal(t, TrumpGrand, SuitForCard(JackOfDiamonds, Grand))
	require.Equal(t, Clubs, SuitForCard(AceOfClubs, Grand))

	// Null: the Jack belongs to its printed suit.
	require.Equal(t, NullSpades, SuitForCard(JackOfSpades, Null))
	require.Equal(t, NullSpades, SuitForCard(AceOfSpades, Null))
}

func TestTrickWinnerPointGames(t *testing.T) {
	declarer := mustCards(t, "SA")
	left := mustCards(t, "ST")
	right := mustCards(t, "SK")

	// Plain suit trick, highest bit wins.
	w := TrickWinner(declarer|left|right, Spades, Suit, declarer, left, right)
	require.Equal(t, Declarer, w)

	// A trump beats every plain card.
	declarer = mustCards(t, "SA")
	left = mustCards(t, "C7")
	right = mustCards(t, "ST")
	w = TrickWinner(declarer|left|right, Spades, Suit, declarer, left, right)
	require.Equal(t, Left, w)

	// Jack tops the plain trump cards.
	declarer = mustCards(t, "CA")
	left = mustCards(t, "DJ")
	right = mustCards(t, "CT")
	w = TrickWinner(declarer|left|right, TrumpSuit, Suit, declarer, left, right)
	require.Equal(t, Left, w)

	// In Grand the club Ace is just a club.
	declarer = mustCards(t, "CA")
	left = mustCards(t, "DJ")
	right = mustCards(t, "CT")
	w = TrickWinner(declarer|left|right, Clubs, Grand, declarer, left, right)
	require.Equal(t, Left, w)
}

func TestTrickWinnerNull(t *testing.T) {
	// In Null the 10 ranks between Jack and 9: J beats T.
	declarer := mustCards(t, "ST")
	left := mustCards(t, "SJ")
	right := mustCards(t, "S9")
	w := TrickWinner(declarer|left|right, NullSpades, Null, declarer, left, right)
	require.Equal(t, Left, w)

	// King beats Jack beats Ten.
	declarer = mustCards(t, "SK")
	left = mustCards(t, "SJ")
	right = mustCards(t, "ST")
	w = TrickWinner(declarer|left|right, NullSpades, Null, declarer, left, right)
	require.Equal(t, Declarer, w)

	// Off-suit cards never win.
	declarer = mustCards(t, "S7")
	left = mustCards(t, "HA")
	right = mustCards(t, "DA")
	w = TrickWinner(declarer|left|right, NullSpades, Null, declarer, left, right)
	require.Equal(t, Declarer, w)
}

func TestSortedMoves(t *testing.T) {
	moves := mustCards(t, "D7 CA SJ HT CQ")
	ordered, n := SortedMoves(moves)
	require.Equal(t, 5, n)
	require.Equal(t, JackOfSpades, ordered[0])
	require.Equal(t, AceOfClubs, ordered[1])
	require.Equal(t, TenOfHearts, ordered[2])
	require.Equal(t, QueenOfClubs, ordered[3])
	require.Equal(t, SevenOfDiamonds, ordered[4])
}

func TestPositionHashVariesByPlayer(t *testing.T) {
	d := mustCards(t, "CJ CA")
	l := mustCards(t, "SA ST")
	r := mustCards(t, "HA HT")

	h1 := positionHash(Declarer, l, r, d, 0)
	h2 := positionHash(Left, l, r, d, 0)
	require.NotEqual(t, h1, h2)

	// Deterministic.
	require.Equal(t, h1, positionHash(Declarer, l, r, d, 0))
}

func TestReduceEqual(t *testing.T) {
	// The 9-8-7 run of one hand collapses to the 9.
	moves := mustCards(t, "C9 C8 C7")
	got := reduceEqual(moves, moves, pointConnEq)
	require.Equal(t, NineOfClubs, got)

	// A gap held by another player keeps both sides of the run.
	moves = mustCards(t, "C9 C7")
	all := mustCards(t, "C9 C8 C7")
	got = reduceEqual(moves, all, pointConnEq)
	require.Equal(t, mustCards(t, "C9 C7"), got)

	// A played card does not interrupt the run.
	moves = mustCards(t, "C9 C7")
	got = reduceEqual(moves, moves, pointConnEq)
	require.Equal(t, NineOfClubs, got)

	// All four Jacks in hand: only the highest survives.
	got = reduceEqual(Jacks, AllCards, pointConnEq)
	require.Equal(t, JackOfClubs, got)

	// Null: a whole suit in one hand is a single equivalence class.
	moves = mustCards(t, "SA SK SQ SJ ST S9 S8 S7")
	got = reduceEqual(moves, moves, nullConnEq)
	require.Equal(t, AceOfSpades, got)
}

func TestConnections(t *testing.T) {
	// CA CT in hand with CK elsewhere: one connection of two cards.
	moves := mustCards(t, "CA CT")
	unplayed := mustCards(t, "CA CT CK C9")
	conns := connections(moves, unplayed, suitConnSeq)

	require.Equal(t, Cards(1), conns[0][0])
	require.Equal(t, mustCards(t, "CA CT"), conns[1][0])
	require.Equal(t, AceOfClubs, conns[1][1]) // highest value
	require.Equal(t, TenOfClubs, conns[1][2]) // lowest value

	// CA and CK with the CT in another hand: two singles, no connection.
	moves = mustCards(t, "CA CK")
	unplayed = mustCards(t, "CA CT CK")
	conns = connections(moves, unplayed, suitConnSeq)
	require.Equal(t, Cards(0), conns[0][0])
	require.Equal(t, mustCards(t, "CA CK"), conns[0][1])

	// CA and CK with the CT already played: the run closes over the gap.
	moves = mustCards(t, "CA CK")
	unplayed = mustCards(t, "CA CK")
	conns = connections(moves, unplayed, suitConnSeq)
	require.Equal(t, Cards(1), conns[0][0])
	require.Equal(t, AceOfClubs, conns[1][1])
	require.Equal(t, KingOfClubs, conns[1][2])
}
