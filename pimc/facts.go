// Package pimc estimates winning chances from a single player's viewpoint
// by Perfect-Information Monte Carlo: the two hidden hands are randomised
// under the constraints deduced from play so far, every sample is solved
// double-dummy, and the per-card outcomes are aggregated.
package pimc

import (
	"fmt"

	"github.com/jenafrank/skatsearch/engine"
)

// Facts are the public constraints known about one opponent: suits they
// demonstrably no longer hold because they failed to follow.
type Facts struct {
	NoTrump    bool
	NoClubs    bool
	NoSpades   bool
	NoHearts   bool
	NoDiamonds bool
}

func (f Facts) String() string {
	return fmt.Sprintf("noTrump=%t noClubs=%t noSpades=%t noHearts=%t noDiamonds=%t",
		f.NoTrump, f.NoClubs, f.NoSpades, f.NoHearts, f.NoDiamonds)
}

// restrict removes from cards everything the facts rule out. The meaning
// of a void depends on the game: in a Suit game "no trump" and "no clubs"
// both strip Jacks and Clubs (Clubs is trump), while a void in a side suit
// leaves that suit's Jack holdable. In Grand only the Jacks are trump. In
// Null a void strips the whole printed suit, Jack included.
func (f Facts) restrict(cards engine.Cards, game engine.Game) engine.Cards {
	if f.NoTrump {
		cards &^= game.Trump()
	}
	if f.NoClubs {
		switch game {
		case engine.Suit:
			cards &^= engine.TrumpSuit
		case engine.Grand:
			cards &^= engine.Clubs
		case engine.Null:
			cards &^= engine.NullClubs
		}
	}
	if f.NoSpades {
		if game == engine.Null {
			cards &^= engine.NullSpades
		} else {
			cards &^= engine.Spades
		}
	}
	if f.NoHearts {
		if game == engine.Null {
			cards &^= engine.NullHearts
		} else {
			cards &^= engine.Hearts
		}
	}
	if f.NoDiamonds {
		if game == engine.Null {
			cards &^= engine.NullDiamonds
		} else {
			cards &^= engine.Diamonds
		}
	}
	return cards
}
