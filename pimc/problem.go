package pimc

import (
	"fmt"

	"lukechampine.com/frand"

	"github.com/jenafrank/skatsearch/engine"
)

// Problem captures everything the sampling player knows: their own cards,
// the pool of cards still in the game, the partial trick on the table and
// the void facts about the two opponents. Concretise draws one hidden-hand
// distribution consistent with all of it.
type Problem struct {
	GameType engine.Game
	MyPlayer engine.Player
	MyCards  engine.Cards

	// PreviousCard and NextCard are the trick cards already on the table,
	// played by the seat before and the seat after MyPlayer; zero when that
	// seat has not played to the current trick.
	PreviousCard engine.Cards
	NextCard     engine.Cards

	// AllCards is the union of every card still in the game, the table
	// cards and own hand included. The skat and completed tricks are
	// excluded.
	AllCards engine.Cards

	// Threshold is the declarer target to test against, 61 for a full
	// point game, 1 for Null.
	Threshold uint8

	// DeclarerStartPoints carries points already banked by the declarer
	// (discarded skat, completed tricks).
	DeclarerStartPoints uint8

	FactsPrevious Facts
	FactsNext     Facts
}

// CardsOnTable returns the partial trick.
func (p *Problem) CardsOnTable() engine.Cards {
	return p.PreviousCard | p.NextCard
}

// validate panics on an ill-formed problem; the caller is expected to
// supply consistent knowledge.
func (p *Problem) validate() {
	if p.AllCards&p.MyCards != p.MyCards {
		panic("pimc: own cards not contained in card pool")
	}
	if table := p.CardsOnTable(); p.AllCards&table != table {
		panic("pimc: table cards not contained in card pool")
	}
	if p.AllCards.Count()%3 != 0 {
		panic("pimc: card pool not divisible among three hands")
	}
	if p.AllCards.Count() != 3*p.MyCards.Count() {
		panic("pimc: card pool inconsistent with own hand size")
	}
}

// Concretise draws one plausible full deal. Cards an opponent cannot hold
// (facts, the other's table card) are assigned deterministically; the
// remainder is split at random so that both opponents end up with the
// right hand size. It panics when the facts are contradictory, i.e. no
// consistent deal exists.
func (p *Problem) Concretise() engine.Context {
	p.validate()

	hidden := p.AllCards &^ p.MyCards

	nextCandidates := p.FactsNext.restrict(hidden, p.GameType)
	prevCandidates := p.FactsPrevious.restrict(hidden, p.GameType)

	// A table card is fixed to the seat that played it.
	nextCandidates &^= p.PreviousCard
	prevCandidates &^= p.NextCard

	nextCards, prevCards := drawHands(nextCandidates, prevCandidates, p.MyCards.Count())

	ctx := engine.Context{
		GameType:            p.GameType,
		StartPlayer:         p.MyPlayer,
		PointsToWin:         p.Threshold,
		TrickCards:          p.CardsOnTable(),
		DeclarerStartPoints: p.DeclarerStartPoints,
	}
	if ctx.TrickCards != 0 {
		ctx.TrickSuit = engine.SuitForCard(p.leadingCard(), p.GameType)
	}

	setHand(&ctx, p.MyPlayer, p.MyCards)
	setHand(&ctx, p.MyPlayer.Next(), nextCards)
	setHand(&ctx, p.MyPlayer.Prev(), prevCards)

	if ctx.DeclarerCards&ctx.LeftCards != 0 ||
		ctx.DeclarerCards&ctx.RightCards != 0 ||
		ctx.LeftCards&ctx.RightCards != 0 {
		panic("pimc: drawn hands overlap")
	}

	return ctx
}

// leadingCard is the card that opened the current trick. With two cards on
// the table the next seat led (it plays two seats before us); with one,
// the previous seat did.
func (p *Problem) leadingCard() engine.Cards {
	if p.NextCard != 0 {
		return p.NextCard
	}
	return p.PreviousCard
}

func setHand(ctx *engine.Context, player engine.Player, cards engine.Cards) {
	switch player {
	case engine.Declarer:
		ctx.DeclarerCards = cards
	case engine.Left:
		ctx.LeftCards = cards
	case engine.Right:
		ctx.RightCards = cards
	}
}

// drawHands partitions the hidden cards between the two opponents. Cards
// only one of them may hold are definite; the ambiguous rest is sampled
// uniformly. handSize is the target size of each opponent hand.
func drawHands(candidates1, candidates2 engine.Cards, handSize int) (engine.Cards, engine.Cards) {
	definite1 := candidates1 &^ candidates2
	definite2 := candidates2 &^ candidates1
	ambiguous := candidates1 & candidates2

	need1 := handSize - definite1.Count()
	need2 := handSize - definite2.Count()
	if need1 < 0 || need2 < 0 || need1+need2 != ambiguous.Count() {
		panic(fmt.Sprintf("pimc: contradictory facts, cannot distribute %d ambiguous cards (need %d + %d)",
			ambiguous.Count(), need1, need2))
	}

	draw1 := randomCards(ambiguous, need1)
	return definite1 | draw1, definite2 | (ambiguous &^ draw1)
}

// randomCards picks n distinct cards from the set uniformly at random.
func randomCards(cards engine.Cards, n int) engine.Cards {
	singles, total := cards.Decompose()
	if n > total {
		panic("pimc: not enough cards to draw from")
	}

	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	frand.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})

	var ret engine.Cards
	for _, k := range idx[:n] {
		ret |= singles[k]
	}
	return ret
}
