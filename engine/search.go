package engine

// Alpha-beta search over the card-play tree. Values are absolute declarer
// points (0..120); the window [alpha, beta] narrows them from both sides.
// The two game families differ only in direction: in the point games the
// declarer maximises and the defenders minimise, in Null the declarer
// drives the value to 0 while the defenders force it to 1.

// strategy captures the Null/point dichotomy: comparison direction and
// start value per side.
type strategy uint8

const (
	pointStrategy strategy = iota
	nullStrategy
)

func strategyFor(game Game) strategy {
	if game == Null {
		return nullStrategy
	}
	return pointStrategy
}

// better reports whether value a improves on b from the mover's viewpoint.
func (s strategy) better(a, b uint8, player Player) bool {
	if s == nullStrategy {
		if player == Declarer {
			return a < b
		}
		return a > b
	}
	if player == Declarer {
		return a > b
	}
	return a < b
}

// initialValue is the worst case the mover starts from.
func (s strategy) initialValue(player Player) uint8 {
	if s == nullStrategy {
		if player == Declarer {
			return 1
		}
		return 0
	}
	if player == Declarer {
		return 0
	}
	return 120
}

// Search returns the best card and the minimax value of pos within the
// window [alpha, beta]. Values outside the window are only bounded by the
// returned value, per the usual alpha-beta semantics.
func Search(ctx *Context, pos *Position, tt *Table, cnt *Counters, alpha, beta uint8) (Cards, uint8) {
	cnt.Iters++

	strat := strategyFor(ctx.GameType)

	if value, done := terminate(ctx, pos, alpha, beta); done {
		return 0, value
	}

	bestCard := Cards(0)
	bestValue := strat.initialValue(pos.Player)

	var pvCard Cards
	if card, value, done := ttLookup(tt, pos, cnt, &alpha, &beta, &pvCard); done {
		return card, value
	}

	alphaOrig := alpha
	betaOrig := beta

	moves, n := SortedMoves(pos.ReducedMoves(ctx))

	// Front-load the principal-variation card from the table.
	if pvCard != 0 {
		for i := 0; i < n; i++ {
			if moves[i] == pvCard {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}

	bestCard = moves[0]

	for i := 0; i < n; i++ {
		child := pos.MakeMove(moves[i], ctx)
		_, childValue := Search(ctx, &child, tt, cnt, alpha, beta)

		if strat.better(childValue, bestValue, pos.Player) {
			bestCard = moves[i]
			bestValue = childValue
		}

		if shrinkWindow(pos.Player, &alpha, &beta, childValue, ctx.GameType) {
			cnt.Breaks++
			break
		}
	}

	if ttCompatible(pos) {
		cnt.Writes++
		tt.Write(pos, alphaOrig, betaOrig, bestCard, bestValue)
	}

	return bestCard, bestValue
}

// terminate applies the leaf and cutoff criteria. No cards left ends the
// game; in Null a banked declarer trick is an immediate loss; in the point
// games the window closes as soon as one side can no longer cross it.
func terminate(ctx *Context, pos *Position, alpha, beta uint8) (uint8, bool) {
	if pos.PlayerCards == 0 {
		return pos.AugenDeclarer, true
	}

	if ctx.GameType == Null {
		if pos.AugenDeclarer > 0 {
			return 1, true
		}
		return 0, false
	}

	if ctx.TotalPoints()-pos.AugenTeam <= alpha {
		return alpha, true
	}
	if pos.AugenDeclarer >= beta {
		return beta, true
	}
	return 0, false
}

// ttCompatible restricts table traffic to clean subproblems: between-trick
// positions below the root. A root entry would bake the caller's external
// window into the table; a mid-trick position depends on the suit led.
func ttCompatible(pos *Position) bool {
	return !pos.isRoot && pos.TrickCardsCount == 0
}

// ttLookup consults the table. An Exact hit returns immediately; bound
// hits tighten the window and return early if it closes. The stored best
// card is exported as the PV hint either way.
func ttLookup(tt *Table, pos *Position, cnt *Counters, alpha, beta *uint8, pvCard *Cards) (Cards, uint8, bool) {
	if !ttCompatible(pos) {
		return 0, 0, false
	}
	entry := tt.Read(pos, cnt)
	if entry == nil {
		return 0, 0, false
	}

	*pvCard = entry.BestCard
	value := entry.Value + pos.AugenDeclarer

	switch entry.Flag {
	case Exact:
		cnt.ExactReads++
		return entry.BestCard, value, true
	case Lower:
		if value > *alpha {
			*alpha = value
		}
	case Upper:
		if value < *beta {
			*beta = value
		}
	}
	if *alpha >= *beta {
		return entry.BestCard, value, true
	}
	return 0, 0, false
}

// shrinkWindow updates the side's bound with the child value and reports
// whether the window closed. The declarer raises alpha in the point games
// and lowers beta in Null; the defenders do the opposite.
func shrinkWindow(player Player, alpha, beta *uint8, childValue uint8, game Game) bool {
	raisesAlpha := player == Declarer
	if game == Null {
		raisesAlpha = !raisesAlpha
	}

	if raisesAlpha {
		if childValue > *alpha {
			*alpha = childValue
		}
	} else {
		if childValue < *beta {
			*beta = childValue
		}
	}
	return *alpha >= *beta
}

// Optimum search. The plain search proves a value but does not
// distinguish between equally-valued moves; for actual play a fast win
// beats a slow one and a late loss beats an early one. SearchOptimum
// scores terminal nodes with a depth bias from the declarer's viewpoint
// and lets the declarer maximise and the defenders minimise.

const (
	optimumMaxDepth = 40

	optimumWin  = 10000
	optimumLoss = -10000

	nullSurvived = 1000
	nullLost     = -1000
)

// SearchOptimum returns the move preferred for over-the-board play and its
// depth-biased score. Positive scores are declarer wins.
func SearchOptimum(ctx *Context, pos *Position, cnt *Counters, alpha, beta, depth int) (Cards, int) {
	cnt.Iters++

	if pos.PlayerCards == 0 {
		return 0, evaluateOptimumLeaf(ctx, pos, depth)
	}
	if ctx.GameType == Null && pos.AugenDeclarer > 0 {
		return 0, evaluateOptimumLeaf(ctx, pos, depth)
	}

	isDeclarer := pos.Player == Declarer

	moves, n := SortedMoves(pos.ReducedMoves(ctx))

	bestMove := moves[0]
	bestScore := 1 << 30
	if isDeclarer {
		bestScore = -bestScore
	}

	for i := 0; i < n; i++ {
		child := pos.MakeMove(moves[i], ctx)
		_, score := SearchOptimum(ctx, &child, cnt, alpha, beta, depth+1)

		if isDeclarer {
			if score > bestScore {
				bestScore = score
				bestMove = moves[i]
			}
			if bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if score < bestScore {
				bestScore = score
				bestMove = moves[i]
			}
			if bestScore < beta {
				beta = bestScore
			}
		}
		if alpha >= beta {
			cnt.Breaks++
			break
		}
	}

	return bestMove, bestScore
}

// evaluateOptimumLeaf biases terminal scores: wins decay with depth so the
// search prefers the quickest proof, losses grow with depth so it holds
// out as long as possible. Null wins carry no depth term because survival
// always means reaching the end of the deal.
func evaluateOptimumLeaf(ctx *Context, pos *Position, depth int) int {
	if ctx.GameType == Null {
		if pos.AugenDeclarer > 0 {
			return nullLost + depth
		}
		return nullSurvived
	}

	if pos.AugenDeclarer > 60 {
		return optimumWin + (optimumMaxDepth-depth)*10
	}
	return optimumLoss + depth*10
}
