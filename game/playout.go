// Package game plays complete deals move by move, producing a
// trick-by-trick protocol. Every move is chosen by the optimum search, so
// the protocol shows best play from both sides including tie-breaking
// towards fast wins and slow losses.
package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jenafrank/skatsearch/engine"
	"github.com/jenafrank/skatsearch/solver"
)

// Row records one card played during a playout.
type Row struct {
	Trick          int
	Player         engine.Player
	Card           engine.Cards
	AugenDeclarer  uint8
	TrickComplete  bool
}

// Result is a finished playout: the move protocol and the final declarer
// points.
type Result struct {
	Rows          []Row
	DeclarerScore uint8
	DeclarerWins  bool
}

// Play runs the deal to the end. The transposition table persists across
// moves, so later decisions reuse earlier analysis.
func Play(ctx engine.Context) (Result, error) {
	if err := ctx.Validate(); err != nil {
		return Result{}, err
	}

	e := engine.NewEngine(ctx, nil)
	pos := e.InitialPosition()

	var result Result
	trick := 1

	for pos.PlayerCards != 0 {
		card, err := solver.SolveOptimumFromPosition(e, &pos, solver.AllWinning)
		if err != nil {
			return Result{}, err
		}

		next := pos.MakeMove(card, &e.Context)
		completed := next.TrickCardsCount == 0

		result.Rows = append(result.Rows, Row{
			Trick:         trick,
			Player:        pos.Player,
			Card:          card,
			AugenDeclarer: next.AugenDeclarer,
			TrickComplete: completed,
		})

		log.Debug().
			Int("trick", trick).
			Str("player", pos.Player.Short()).
			Stringer("card", card).
			Uint8("declarer_points", next.AugenDeclarer).
			Msg("playout move")

		if completed {
			trick++
		}
		pos = next
	}

	result.DeclarerScore = pos.AugenDeclarer
	if ctx.GameType == engine.Null {
		result.DeclarerWins = pos.AugenDeclarer == 0
	} else {
		result.DeclarerWins = pos.AugenDeclarer >= e.Context.PointsToWin
	}
	return result, nil
}

// Protocol renders the playout as text, one line per trick.
func (r *Result) Protocol() string {
	var b strings.Builder
	var line []string
	for _, row := range r.Rows {
		line = append(line, fmt.Sprintf("%s:%v", row.Player.Short(), row.Card))
		if row.TrickComplete {
			fmt.Fprintf(&b, "trick %2d  %-30s declarer %3d\n",
				row.Trick, strings.Join(line, " "), row.AugenDeclarer)
			line = line[:0]
		}
	}
	fmt.Fprintf(&b, "final declarer score: %d\n", r.DeclarerScore)
	return b.String()
}
