package engine

// Position is one node of the card-play tree. It is a small value type:
// every move produces a new Position, nothing is mutated in place.
//
// The primary state is the player to move, the played cards and the trick
// in progress. Everything else is derived once at construction because the
// search reads it many times: the three remaining hands, the mover's hand,
// the point bookkeeping and the transposition-table slot.
type Position struct {
	Player        Player
	PlayedCards   Cards
	TrickCards    Cards
	TrickSuit     Cards
	AugenDeclarer uint8

	DeclarerCards   Cards
	LeftCards       Cards
	RightCards      Cards
	PlayerCards     Cards
	TrickCardsCount uint8
	AugenFuture     uint8
	AugenTeam       uint8

	// isRoot blocks transposition-table writes at the caller-visible entry
	// node, whose value reflects the external alpha/beta window.
	isRoot bool

	hash int
}

// InitialPosition derives the root node from a context. A trick already on
// the table is taken over; its cards count as played but remain unscored
// until the trick completes.
func InitialPosition(ctx *Context) Position {
	return makePosition(ctx, ctx.TrickCards, ctx.TrickCards, ctx.TrickSuit,
		ctx.DeclarerStartPoints, ctx.StartPlayer, true)
}

func makePosition(ctx *Context, played, trickCards, trickSuit Cards, augenDeclarer uint8, player Player, isRoot bool) Position {
	declarerCards := ctx.DeclarerCards &^ played
	leftCards := ctx.LeftCards &^ played
	rightCards := ctx.RightCards &^ played

	playerCards := declarerCards
	switch player {
	case Left:
		playerCards = leftCards
	case Right:
		playerCards = rightCards
	}

	augenFuture := ctx.augenTotal() - (played &^ trickCards).Points()
	augenTeam := ctx.augenTotal() + ctx.DeclarerStartPoints - augenFuture - augenDeclarer

	pos := Position{
		Player:          player,
		PlayedCards:     played,
		TrickCards:      trickCards,
		TrickSuit:       trickSuit,
		AugenDeclarer:   augenDeclarer,
		DeclarerCards:   declarerCards,
		LeftCards:       leftCards,
		RightCards:      rightCards,
		PlayerCards:     playerCards,
		TrickCardsCount: uint8(trickCards.Count()),
		AugenFuture:     augenFuture,
		AugenTeam:       augenTeam,
		isRoot:          isRoot,
	}
	pos.hash = ttSlot(positionHash(player, pos.LeftCards, pos.RightCards, pos.DeclarerCards, trickCards))
	return pos
}

// MakeMove applies a legal card of the player to move and returns the
// child position. Completing a trick resolves it: the winner takes the
// trick's points (one symbolic point in Null), leads the next trick, and
// the table is cleared.
func (p *Position) MakeMove(card Cards, ctx *Context) Position {
	newPlayer := p.Player.Next()

	newTrickSuit := p.TrickSuit
	if newTrickSuit == 0 {
		newTrickSuit = SuitForCard(card, ctx.GameType)
	}

	newPlayed := p.PlayedCards ^ card
	newTrickCards := p.TrickCards ^ card
	newTrickCount := p.TrickCardsCount + 1

	newAugenDeclarer := p.AugenDeclarer
	newAugenTeam := p.AugenTeam
	newAugenFuture := p.AugenFuture

	newDeclarerCards := p.DeclarerCards
	newLeftCards := p.LeftCards
	newRightCards := p.RightCards
	switch p.Player {
	case Declarer:
		newDeclarerCards ^= card
	case Left:
		newLeftCards ^= card
	case Right:
		newRightCards ^= card
	}

	if newTrickCount == 3 {
		augen := uint8(1)
		if ctx.GameType != Null {
			augen = newTrickCards.TrickPoints()
		}

		winner := TrickWinner(newTrickCards, newTrickSuit, ctx.GameType,
			ctx.DeclarerCards, ctx.LeftCards, ctx.RightCards)

		newTrickCards = 0
		newTrickCount = 0
		newTrickSuit = 0
		newPlayer = winner

		if winner == Declarer {
			newAugenDeclarer += augen
		} else {
			newAugenTeam += augen
		}
		newAugenFuture -= augen
	}

	newPlayerCards := newDeclarerCards
	switch newPlayer {
	case Left:
		newPlayerCards = newLeftCards
	case Right:
		newPlayerCards = newRightCards
	}

	pos := Position{
		Player:          newPlayer,
		PlayedCards:     newPlayed,
		TrickCards:      newTrickCards,
		TrickSuit:       newTrickSuit,
		AugenDeclarer:   newAugenDeclarer,
		DeclarerCards:   newDeclarerCards,
		LeftCards:       newLeftCards,
		RightCards:      newRightCards,
		PlayerCards:     newPlayerCards,
		TrickCardsCount: newTrickCount,
		AugenFuture:     newAugenFuture,
		AugenTeam:       newAugenTeam,
	}
	pos.hash = ttSlot(positionHash(newPlayer, newLeftCards, newRightCards, newDeclarerCards, newTrickCards))
	return pos
}

// LegalMoves returns the mover's legal cards.
func (p *Position) LegalMoves() Cards {
	return LegalMoves(p.TrickSuit, p.PlayerCards)
}

// UnplayedCards returns the union of all cards still held.
func (p *Position) UnplayedCards() Cards {
	return p.DeclarerCards | p.LeftCards | p.RightCards
}

// Slot returns the precomputed transposition-table slot of the position.
func (p *Position) Slot() int {
	return p.hash
}

// ReducedMoves returns the legal moves with equivalent alternatives pruned
// away. Reduction does not change the minimax value of the position.
func (p *Position) ReducedMoves(ctx *Context) Cards {
	moves := p.LegalMoves()
	if ctx.GameType != Null {
		moves = p.reduceUnequal(moves, ctx)
	}
	return reduceEqual(moves, p.UnplayedCards()|p.TrickCards, ctx.GameType.equalSequence())
}

// reduceUnequal applies connection reduction: for every connection the
// mover holds, forecast the trick winner when playing a representative.
// If the mover's team wins regardless of choice only the highest card is
// kept, if the opponents win regardless only the lowest, and if the
// outcome depends on the choice the whole connection stays.
func (p *Position) reduceUnequal(moves Cards, ctx *Context) Cards {
	var ret Cards
	conns := connections(moves, p.UnplayedCards(), ctx.GameType.unequalSequence())

	for i := 1; conns[i][0] != 0; i++ {
		high, low := conns[i][1], conns[i][2]
		winner, decided := p.ForecastTrickWinner(high, ctx)
		switch {
		case !decided:
			ret |= conns[i][0]
		case winner.SameTeam(p.Player):
			ret |= high
		default:
			ret |= low
		}
	}

	// Singles pass through untouched.
	return ret | conns[0][1]
}

// ForecastTrickWinner determines the winner of the current trick assuming
// the mover plays card now, provided every completion of the trick by the
// remaining players yields the same winner. decided is false when the
// completions disagree.
func (p *Position) ForecastTrickWinner(card Cards, ctx *Context) (winner Player, decided bool) {
	switch p.TrickCardsCount {
	case 2:
		return p.trickWinnerWith(p.TrickCards|card, p.TrickSuit, ctx), true
	case 1:
		return p.forecastOneOnTable(card, ctx)
	case 0:
		return p.forecastEmptyTable(card, ctx)
	default:
		panic("engine: invalid trick card count")
	}
}

func (p *Position) trickWinnerWith(trickCards, trickSuit Cards, ctx *Context) Player {
	return TrickWinner(trickCards, trickSuit, ctx.GameType,
		ctx.DeclarerCards, ctx.LeftCards, ctx.RightCards)
}

func (p *Position) forecastEmptyTable(card Cards, ctx *Context) (Player, bool) {
	trickSuit := SuitForCard(card, ctx.GameType)

	moves1, n1 := p.forecastMoves(p.Player.Next(), trickSuit).Decompose()
	moves2, n2 := p.forecastMoves(p.Player.Next().Next(), trickSuit).Decompose()

	var winner Player
	haveWinner := false
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			w := p.trickWinnerWith(card|moves1[i]|moves2[j], trickSuit, ctx)
			if !haveWinner {
				winner = w
				haveWinner = true
			} else if winner != w {
				return 0, false
			}
		}
	}
	return winner, haveWinner
}

func (p *Position) forecastOneOnTable(card Cards, ctx *Context) (Player, bool) {
	moves1, n1 := p.forecastMoves(p.Player.Next(), p.TrickSuit).Decompose()

	var winner Player
	haveWinner := false
	for i := 0; i < n1; i++ {
		w := p.trickWinnerWith(p.TrickCards|card|moves1[i], p.TrickSuit, ctx)
		if !haveWinner {
			winner = w
			haveWinner = true
		} else if winner != w {
			return 0, false
		}
	}
	return winner, haveWinner
}

func (p *Position) forecastMoves(player Player, trickSuit Cards) Cards {
	hand := p.DeclarerCards
	switch player {
	case Left:
		hand = p.LeftCards
	case Right:
		hand = p.RightCards
	}
	return LegalMoves(trickSuit, hand)
}
