package engine

// Move-equivalence reduction. Cards that are interchangeable for the side
// to move need only one representative in the search tree. Two mechanisms
// apply: equal-rank collapse (adjacent cards of identical value, e.g. 9-8-7
// of a suit in one hand) and connection reduction (adjacent cards of
// different value whose trick outcome is forecast to be identical).

// rankedCard pairs a card with its point value for connection scanning.
type rankedCard struct {
	card  Cards
	value uint8
}

// connBreaker terminates a run in a connection sequence.
const connBreaker Cards = 0

// suitConnSeq lists the cards of a Suit game in rank order. A run of
// consecutive entries held by one player forms a connection; runs never
// cross a breaker. The trump block (Jacks + Clubs) is contiguous because a
// Jack sequence connects to the Ace of trumps.
var suitConnSeq = []rankedCard{
	{JackOfClubs, 2}, {JackOfSpades, 2}, {JackOfHearts, 2}, {JackOfDiamonds, 2},
	{AceOfClubs, 11}, {TenOfClubs, 10}, {KingOfClubs, 4}, {QueenOfClubs, 3},
	{NineOfClubs, 0}, {EightOfClubs, 0}, {SevenOfClubs, 0},
	{connBreaker, 0},
	{AceOfSpades, 11}, {TenOfSpades, 10}, {KingOfSpades, 4}, {QueenOfSpades, 3},
	{NineOfSpades, 0}, {EightOfSpades, 0}, {SevenOfSpades, 0},
	{connBreaker, 0},
	{AceOfHearts, 11}, {TenOfHearts, 10}, {KingOfHearts, 4}, {QueenOfHearts, 3},
	{NineOfHearts, 0}, {EightOfHearts, 0}, {SevenOfHearts, 0},
	{connBreaker, 0},
	{AceOfDiamonds, 11}, {TenOfDiamonds, 10}, {KingOfDiamonds, 4}, {QueenOfDiamonds, 3},
	{NineOfDiamonds, 0}, {EightOfDiamonds, 0}, {SevenOfDiamonds, 0},
	{connBreaker, 0},
}

// grandConnSeq is the Grand variant: the Jacks stand alone and Clubs is an
// ordinary suit.
var grandConnSeq = []rankedCard{
	{JackOfClubs, 2}, {JackOfSpades, 2}, {JackOfHearts, 2}, {JackOfDiamonds, 2},
	{connBreaker, 0},
	{AceOfClubs, 11}, {TenOfClubs, 10}, {KingOfClubs, 4}, {QueenOfClubs, 3},
	{NineOfClubs, 0}, {EightOfClubs, 0}, {SevenOfClubs, 0},
	{connBreaker, 0},
	{AceOfSpades, 11}, {TenOfSpades, 10}, {KingOfSpades, 4}, {QueenOfSpades, 3},
	{NineOfSpades, 0}, {EightOfSpades, 0}, {SevenOfSpades, 0},
	{connBreaker, 0},
	{AceOfHearts, 11}, {TenOfHearts, 10}, {KingOfHearts, 4}, {QueenOfHearts, 3},
	{NineOfHearts, 0}, {EightOfHearts, 0}, {SevenOfHearts, 0},
	{connBreaker, 0},
	{AceOfDiamonds, 11}, {TenOfDiamonds, 10}, {KingOfDiamonds, 4}, {QueenOfDiamonds, 3},
	{NineOfDiamonds, 0}, {EightOfDiamonds, 0}, {SevenOfDiamonds, 0},
	{connBreaker, 0},
}

// pointConnEq lists the value-equivalent runs of the point games: the four
// Jacks and the 9-8-7 tail of each suit.
var pointConnEq = []Cards{
	JackOfClubs, JackOfSpades, JackOfHearts, JackOfDiamonds,
	connBreaker,
	NineOfClubs, EightOfClubs, SevenOfClubs,
	connBreaker,
	NineOfSpades, EightOfSpades, SevenOfSpades,
	connBreaker,
	NineOfHearts, EightOfHearts, SevenOfHearts,
	connBreaker,
	NineOfDiamonds, EightOfDiamonds, SevenOfDiamonds,
	connBreaker,
}

// nullConnEq lists every card in Null rank order (A K Q J T 9 8 7 per
// suit). In Null all cards are value-equivalent, so whole suits collapse.
var nullConnEq = []Cards{
	AceOfClubs, KingOfClubs, QueenOfClubs, JackOfClubs,
	TenOfClubs, NineOfClubs, EightOfClubs, SevenOfClubs,
	connBreaker,
	AceOfSpades, KingOfSpades, QueenOfSpades, JackOfSpades,
	TenOfSpades, NineOfSpades, EightOfSpades, SevenOfSpades,
	connBreaker,
	AceOfHearts, KingOfHearts, QueenOfHearts, JackOfHearts,
	TenOfHearts, NineOfHearts, EightOfHearts, SevenOfHearts,
	connBreaker,
	AceOfDiamonds, KingOfDiamonds, QueenOfDiamonds, JackOfDiamonds,
	TenOfDiamonds, NineOfDiamonds, EightOfDiamonds, SevenOfDiamonds,
	connBreaker,
}

// connectionSet holds the connections found in a hand. Index 0 carries the
// bookkeeping row (number of connections, single-card pattern); rows 1..n
// hold one connection each as (all cards, highest card, lowest card).
type connectionSet [7][3]Cards

// connections scans seq for runs of unplayed cards the mover holds.
// moves is the mover's candidate set, unplayed the union of all cards still
// in any hand. Cards already played do not interrupt a run; a card held by
// another player or a sequence breaker does.
func connections(moves, unplayed Cards, seq []rankedCard) connectionSet {
	var (
		conns       connectionSet
		nrConns     int
		singleMoves Cards

		runLength int
		runAll    Cards
		runHigh   rankedCard
		runLow    rankedCard
	)

	endRun := func() {
		if runLength == 1 {
			singleMoves |= runAll
		}
		runLength = 0
	}

	for _, rc := range seq {
		if rc.card == connBreaker {
			endRun()
			continue
		}
		if unplayed&rc.card == 0 {
			continue
		}
		if moves&rc.card == 0 {
			endRun()
			continue
		}

		runLength++
		if runLength == 1 {
			runHigh = rc
			runLow = rc
			runAll = rc.card
		}
		runAll |= rc.card
		if rc.value > runHigh.value {
			runHigh = rc
		}
		if rc.value <= runLow.value {
			runLow = rc
		}
		if runLength == 2 {
			nrConns++
		}
		if runLength >= 2 {
			conns[nrConns] = [3]Cards{runAll, runHigh.card, runLow.card}
		}
	}
	endRun()

	conns[0] = [3]Cards{Cards(nrConns), singleMoves, singleMoves}
	return conns
}

// reduceEqual drops all but the first card of every value-equivalent run
// the mover holds. A run is interrupted by a card of another hand; played
// cards are skipped.
func reduceEqual(moves, unplayed Cards, seq []Cards) Cards {
	ret := moves
	prevSeen := false

	for _, card := range seq {
		if card == connBreaker {
			prevSeen = false
			continue
		}
		if unplayed&card == 0 {
			continue
		}
		if moves&card != 0 {
			if prevSeen {
				ret &^= card
			}
			prevSeen = true
		} else {
			prevSeen = false
		}
	}
	return ret
}
