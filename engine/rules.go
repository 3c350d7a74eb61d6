package engine

// Rules: legal-move generation, suit classification, trick resolution and
// position hashing.

// LegalMoves returns the cards the holder of hand may play onto a trick of
// the given suit. With no suit led (trickSuit == 0) the whole hand is
// legal. Otherwise the player must follow suit; a void hand may discard or
// trump with anything.
func LegalMoves(trickSuit, hand Cards) Cards {
	if follow := trickSuit & hand; follow != 0 {
		return follow
	}
	return hand
}

// SuitForCard returns the follow-suit set the card belongs to under the
// given game. In the point games a Jack belongs to the trump set, not its
// printed suit; in Null it belongs to its printed suit.
func SuitForCard(card Cards, game Game) Cards {
	switch game {
	case Suit:
		switch {
		case TrumpSuit.Has(card):
			return TrumpSuit
		case Spades.Has(card):
			return Spades
		case Hearts.Has(card):
			return Hearts
		case Diamonds.Has(card):
			return Diamonds
		}
	case Grand:
		switch {
		case TrumpGrand.Has(card):
			return TrumpGrand
		case Clubs.Has(card):
			return Clubs
		case Spades.Has(card):
			return Spades
		case Hearts.Has(card):
			return Hearts
		case Diamonds.Has(card):
			return Diamonds
		}
	case Null:
		switch {
		case NullClubs.Has(card):
			return NullClubs
		case NullSpades.Has(card):
			return NullSpades
		case NullHearts.Has(card):
			return NullHearts
		case NullDiamonds.Has(card):
			return NullDiamonds
		}
	}
	return 0
}

// TrickWinner determines who takes a completed trick. The hand arguments
// are the players' full original hands; each trick card identifies its
// owner through them. If trump was played the trump set decides, otherwise
// the led suit does. Within the deciding set the bit order is the rank
// order for the point games; Null re-ranks through nullRank so that the 10
// sits between Jack and 9.
func TrickWinner(trickCards, trickSuit Cards, game Game, declarerAll, leftAll, rightAll Cards) Player {
	effective := trickSuit
	if trump := game.Trump(); trickCards&trump != 0 {
		effective = trump
	}
	lead := effective & trickCards

	leadDeclarer := lead & declarerAll
	leadLeft := lead & leftAll
	leadRight := lead & rightAll

	if game == Null {
		leadDeclarer = nullRank(leadDeclarer)
		leadLeft = nullRank(leadLeft)
		leadRight = nullRank(leadRight)
	}

	if leadLeft > leadDeclarer || leadRight > leadDeclarer {
		if leadLeft < leadRight {
			return Right
		}
		return Left
	}
	return Declarer
}

// nullRank maps a single card (or the empty set) to its Null strength,
// A > K > Q > J > 10 > 9 > 8 > 7.
func nullRank(card Cards) Cards {
	switch {
	case card == 0:
		return 0
	case Sevens.Has(card):
		return 1
	case Eights.Has(card):
		return 2
	case Nines.Has(card):
		return 3
	case Tens.Has(card):
		return 4
	case Jacks.Has(card):
		return 5
	case Queens.Has(card):
		return 6
	case Kings.Has(card):
		return 7
	default:
		return 8
	}
}

// sortedCards is the fixed move ordering used when no principal-variation
// hint is available: Jacks, then Aces, Tens, Kings, Queens, then the small
// cards. Trying high captures first tends to produce the earliest cutoffs.
var sortedCards = [32]Cards{
	JackOfClubs, JackOfSpades, JackOfHearts, JackOfDiamonds,
	AceOfClubs, AceOfSpades, AceOfHearts, AceOfDiamonds,
	TenOfClubs, TenOfSpades, TenOfHearts, TenOfDiamonds,
	KingOfClubs, KingOfSpades, KingOfHearts, KingOfDiamonds,
	QueenOfClubs, QueenOfSpades, QueenOfHearts, QueenOfDiamonds,
	NineOfClubs, EightOfClubs, SevenOfClubs,
	NineOfSpades, EightOfSpades, SevenOfSpades,
	NineOfHearts, EightOfHearts, SevenOfHearts,
	NineOfDiamonds, EightOfDiamonds, SevenOfDiamonds,
}

// SortedMoves spreads a move set into single cards in the fixed ordering.
// A hand never holds more than ten cards.
func SortedMoves(moves Cards) (ordered [10]Cards, n int) {
	for _, card := range sortedCards {
		if moves&card != 0 {
			ordered[n] = card
			n++
		}
	}
	return ordered, n
}

// FNV-1a parameters for position hashing.
const (
	hashInit uint64 = 0xcbf29ce484222325
	hashMul  uint64 = 0x00000100000001b3
)

// positionHash mixes the four card words (little-endian byte order) and
// the player byte FNV-1a style. The result is not the TT key; table reads
// re-verify the full state.
func positionHash(player Player, leftCards, rightCards, declarerCards, trickCards Cards) uint64 {
	h := hashInit
	for _, word := range [4]Cards{leftCards, rightCards, declarerCards, trickCards} {
		x := uint32(word)
		for i := 0; i < 4; i++ {
			h ^= uint64(x & 0xFF)
			h *= hashMul
			x >>= 8
		}
	}
	h ^= uint64(player) & 0xFF
	h *= hashMul
	return h
}

// ttSlot maps a position hash to its transposition-table slot.
func ttSlot(hash uint64) int {
	return int(hash % uint64(ttSize))
}
