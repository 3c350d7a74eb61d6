package engine

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Cards is a set of Skat cards packed into a 32-bit word, one bit per card.
//
// Bit layout from the most significant bit down: the four Jacks (Clubs,
// Spades, Hearts, Diamonds), then seven bits per suit in descending value
// order (A, 10, K, Q, 9, 8, 7) for Clubs, Spades, Hearts and Diamonds.
// The layout makes suit membership a single mask test and lets the trick
// winner fall out of an integer comparison: within any follow-suit set of
// the point games a higher bit is a higher card. Null ranks differ from
// the bit order and are mapped separately by the trick resolution.
//
// Set operations are the plain bit operations: union |, intersection &,
// difference &^.
type Cards uint32

// Single cards.
const (
	JackOfClubs    Cards = 1 << 31
	JackOfSpades   Cards = 1 << 30
	JackOfHearts   Cards = 1 << 29
	JackOfDiamonds Cards = 1 << 28

	AceOfClubs    Cards = 1 << 27
	TenOfClubs    Cards = 1 << 26
	KingOfClubs   Cards = 1 << 25
	QueenOfClubs  Cards = 1 << 24
	NineOfClubs   Cards = 1 << 23
	EightOfClubs  Cards = 1 << 22
	SevenOfClubs  Cards = 1 << 21

	AceOfSpades   Cards = 1 << 20
	TenOfSpades   Cards = 1 << 19
	KingOfSpades  Cards = 1 << 18
	QueenOfSpades Cards = 1 << 17
	NineOfSpades  Cards = 1 << 16
	EightOfSpades Cards = 1 << 15
	SevenOfSpades Cards = 1 << 14

	AceOfHearts   Cards = 1 << 13
	TenOfHearts   Cards = 1 << 12
	KingOfHearts  Cards = 1 << 11
	QueenOfHearts Cards = 1 << 10
	NineOfHearts  Cards = 1 << 9
	EightOfHearts Cards = 1 << 8
	SevenOfHearts Cards = 1 << 7

	AceOfDiamonds   Cards = 1 << 6
	TenOfDiamonds   Cards = 1 << 5
	KingOfDiamonds  Cards = 1 << 4
	QueenOfDiamonds Cards = 1 << 3
	NineOfDiamonds  Cards = 1 << 2
	EightOfDiamonds Cards = 1 << 1
	SevenOfDiamonds Cards = 1 << 0
)

// Suit and rank masks.
const (
	Jacks Cards = JackOfClubs | JackOfSpades | JackOfHearts | JackOfDiamonds

	// Natural suits without their Jack. These are the follow-suit sets of
	// the point games, where the Jack is trump rather than a suit member.
	Clubs    Cards = 0b0000_1111111_0000000_0000000_0000000
	Spades   Cards = 0b0000_0000000_1111111_0000000_0000000
	Hearts   Cards = 0b0000_0000000_0000000_1111111_0000000
	Diamonds Cards = 0b0000_0000000_0000000_0000000_1111111

	// Natural suits including their Jack, the follow-suit sets of Null.
	NullClubs    Cards = JackOfClubs | Clubs
	NullSpades   Cards = JackOfSpades | Spades
	NullHearts   Cards = JackOfHearts | Hearts
	NullDiamonds Cards = JackOfDiamonds | Diamonds

	// TrumpSuit is the trump set of a Suit game (Clubs stands in for the
	// announced suit). TrumpGrand is the trump set of Grand.
	TrumpSuit  Cards = Jacks | Clubs
	TrumpGrand Cards = Jacks

	Aces   Cards = AceOfClubs | AceOfSpades | AceOfHearts | AceOfDiamonds
	Tens   Cards = TenOfClubs | TenOfSpades | TenOfHearts | TenOfDiamonds
	Kings  Cards = KingOfClubs | KingOfSpades | KingOfHearts | KingOfDiamonds
	Queens Cards = QueenOfClubs | QueenOfSpades | QueenOfHearts | QueenOfDiamonds
	Nines  Cards = NineOfClubs | NineOfSpades | NineOfHearts | NineOfDiamonds
	Eights Cards = EightOfClubs | EightOfSpades | EightOfHearts | EightOfDiamonds
	Sevens Cards = SevenOfClubs | SevenOfSpades | SevenOfHearts | SevenOfDiamonds

	// AllCards is the full 32-card deck.
	AllCards Cards = 0xFFFFFFFF
)

// cardNames maps a bit index (0 = D7 ... 31 = CJ) to the two-letter card
// mnemonic: suit letter (C, S, H, D) followed by rank (A, T, K, Q, J, 9, 8, 7).
var cardNames = [32]string{
	"D7", "D8", "D9", "DQ", "DK", "DT", "DA",
	"H7", "H8", "H9", "HQ", "HK", "HT", "HA",
	"S7", "S8", "S9", "SQ", "SK", "ST", "SA",
	"C7", "C8", "C9", "CQ", "CK", "CT", "CA",
	"DJ", "HJ", "SJ", "CJ",
}

// cardValues maps a bit index to the card's point value
// (A=11, 10=10, K=4, Q=3, J=2, rest 0).
var cardValues = [32]uint8{
	0, 0, 0, 3, 4, 10, 11,
	0, 0, 0, 3, 4, 10, 11,
	0, 0, 0, 3, 4, 10, 11,
	0, 0, 0, 3, 4, 10, 11,
	2, 2, 2, 2,
}

// Count returns the number of cards in the set.
func (c Cards) Count() int {
	return bits.OnesCount32(uint32(c))
}

// Has reports whether the set intersects sub.
func (c Cards) Has(sub Cards) bool {
	return c&sub != 0
}

// Points returns the sum of card point values in the set. A full deck is
// worth 120.
func (c Cards) Points() uint8 {
	x := uint32(c)
	var total uint8
	for x != 0 {
		total += cardValues[bits.TrailingZeros32(x)]
		x &= x - 1
	}
	return total
}

// TrickPoints returns the point value of a completed trick. The set is
// expected to hold exactly three cards.
func (c Cards) TrickPoints() uint8 {
	x := uint32(c)
	i1 := bits.TrailingZeros32(x)
	x &= x - 1
	i2 := bits.TrailingZeros32(x)
	x &= x - 1
	i3 := bits.TrailingZeros32(x)
	return cardValues[i1] + cardValues[i2] + cardValues[i3]
}

// Decompose splits the set into single cards, highest bit first. The
// returned array is filled from index 0; n is the number of cards.
func (c Cards) Decompose() (singles [32]Cards, n int) {
	for card := JackOfClubs; card > 0; card >>= 1 {
		if c&card != 0 {
			singles[n] = card
			n++
		}
	}
	return singles, n
}

// String renders the set with the standard mnemonics, highest card first.
// A single card renders bare ("CJ"), anything else in brackets
// ("[CJ SJ HJ DJ]", "[]").
func (c Cards) String() string {
	var names []string
	for i := 31; i >= 0; i-- {
		if c&(1<<uint(i)) != 0 {
			names = append(names, cardNames[i])
		}
	}
	if len(names) == 1 {
		return names[0]
	}
	return "[" + strings.Join(names, " ") + "]"
}

// ParseCards parses a card-set string of space-separated mnemonics,
// optionally wrapped in brackets: "CJ", "CA CT C7", "[SA ST SK]".
func ParseCards(s string) (Cards, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var set Cards
	for _, tok := range strings.Fields(s) {
		card, err := parseCard(tok)
		if err != nil {
			return 0, err
		}
		if set&card != 0 {
			return 0, errors.Errorf("duplicate card %q", tok)
		}
		set |= card
	}
	return set, nil
}

func parseCard(tok string) (Cards, error) {
	for i, name := range cardNames {
		if name == tok {
			return 1 << uint(i), nil
		}
	}
	return 0, errors.Errorf("unknown card %q", tok)
}
