package engine

import "github.com/pkg/errors"

// Context holds the static description of a deal: the three original
// hands, the game, the player to move and an optional trick already on the
// table. It is immutable during a search and shared by every Position
// derived from it.
//
// Cards already lying in the trick stay inside their owners' hand sets;
// the initial position marks them as played. DeclarerStartPoints carries
// points credited to the declarer before play starts, typically the two
// discarded skat cards.
type Context struct {
	DeclarerCards Cards
	LeftCards     Cards
	RightCards    Cards
	GameType      Game
	StartPlayer   Player

	// PointsToWin is the declarer's target, 61 for the point games and 1
	// for Null ("declarer took a trick").
	PointsToWin uint8

	TrickCards          Cards
	TrickSuit           Cards
	DeclarerStartPoints uint8
}

// NewContext returns a context for a deal with no trick on the table and
// the default winning threshold of the game.
func NewContext(declarer, left, right Cards, game Game, start Player) Context {
	threshold := uint8(61)
	if game == Null {
		threshold = 1
	}
	return Context{
		DeclarerCards: declarer,
		LeftCards:     left,
		RightCards:    right,
		GameType:      game,
		StartPlayer:   start,
		PointsToWin:   threshold,
	}
}

// TotalPoints is the point total of a full deal.
func (c *Context) TotalPoints() uint8 {
	return 120
}

// augenTotal is the card-point sum still tied to this deal's hands.
func (c *Context) augenTotal() uint8 {
	return (c.DeclarerCards | c.LeftCards | c.RightCards).Points()
}

// Skat returns the two cards belonging to neither hand nor trick.
func (c *Context) Skat() Cards {
	return AllCards &^ (c.DeclarerCards | c.LeftCards | c.RightCards)
}

// HandOf returns the original hand of the given player.
func (c *Context) HandOf(p Player) Cards {
	switch p {
	case Declarer:
		return c.DeclarerCards
	case Left:
		return c.LeftCards
	default:
		return c.RightCards
	}
}

// Validate checks the structural invariants of the context: pairwise
// disjoint hands, consistent hand sizes, and a well-formed trick. A
// violation means the caller supplied a malformed deal.
func (c *Context) Validate() error {
	if c.DeclarerCards&c.LeftCards != 0 ||
		c.DeclarerCards&c.RightCards != 0 ||
		c.LeftCards&c.RightCards != 0 {
		return errors.New("hands are not pairwise disjoint")
	}

	all := c.DeclarerCards | c.LeftCards | c.RightCards
	if c.TrickCards&^all != 0 {
		return errors.Errorf("trick cards %v not contained in any hand", c.TrickCards&^all)
	}

	nTrick := c.TrickCards.Count()
	if nTrick > 2 {
		return errors.Errorf("trick holds %d cards, at most 2 allowed", nTrick)
	}

	// Trick cards stay inside their owners' hands, so the three hands have
	// equal sizes whether or not a trick is on the table.
	nd, nl, nr := c.DeclarerCards.Count(), c.LeftCards.Count(), c.RightCards.Count()
	if nd != nl || nl != nr {
		return errors.Errorf("hand sizes differ: declarer=%d left=%d right=%d", nd, nl, nr)
	}

	if nTrick > 0 {
		if c.TrickSuit == 0 {
			return errors.New("trick cards present but no trick suit set")
		}
		suitMatches := false
		singles, n := c.TrickCards.Decompose()
		for i := 0; i < n; i++ {
			if SuitForCard(singles[i], c.GameType) == c.TrickSuit {
				suitMatches = true
				break
			}
		}
		if !suitMatches {
			return errors.Errorf("trick suit %v matches no card on the table", c.TrickSuit)
		}

		// The player one seat before the mover must have contributed the
		// last trick card, two seats before the first one.
		if (c.HandOf(c.StartPlayer.Prev()) & c.TrickCards).Count() != 1 {
			return errors.New("previous player did not contribute a trick card")
		}
		if nTrick == 2 && (c.HandOf(c.StartPlayer.Prev().Prev())&c.TrickCards).Count() != 1 {
			return errors.New("trick cards not owned by the two preceding players")
		}
	}

	return nil
}

// Transformation mirrors one suit's bits onto the Clubs bits and back.
// Suit games in Spades, Hearts or Diamonds are solved by transforming the
// deal into the equivalent Clubs game; the transformation is its own
// inverse, so applying it to the result maps cards back.
type Transformation uint8

const (
	SpadesSwitch Transformation = iota
	HeartsSwitch
	DiamondsSwitch
)

// shift is the bit distance between the switched suit and Clubs.
func (t Transformation) shift() uint {
	switch t {
	case SpadesSwitch:
		return 7
	case HeartsSwitch:
		return 14
	default:
		return 21
	}
}

func (t Transformation) suit() Cards {
	switch t {
	case SpadesSwitch:
		return Spades
	case HeartsSwitch:
		return Hearts
	default:
		return Diamonds
	}
}

// SwitchCards exchanges the Clubs bits with the transformation's suit bits.
// Jacks are unaffected.
func SwitchCards(cards Cards, t Transformation) Cards {
	shift := t.shift()
	suit := t.suit()

	var ret Cards
	singles, n := cards.Decompose()
	for i := 0; i < n; i++ {
		card := singles[i]
		switch {
		case Clubs.Has(card):
			card >>= shift
		case suit.Has(card):
			card <<= shift
		}
		ret ^= card
	}
	return ret
}

// Transformed returns a copy of the context with every card set switched.
func (c Context) Transformed(t Transformation) Context {
	c.DeclarerCards = SwitchCards(c.DeclarerCards, t)
	c.LeftCards = SwitchCards(c.LeftCards, t)
	c.RightCards = SwitchCards(c.RightCards, t)
	c.TrickCards = SwitchCards(c.TrickCards, t)
	if c.TrickSuit != 0 {
		c.TrickSuit = SwitchCards(c.TrickSuit, t)
	}
	return c
}
