// Package main provides the skatcalc CLI: double-dummy values, skat
// discard analysis, all-games evaluation, best-play playouts and PIMC
// estimates for Skat deals described in a JSON file.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jenafrank/skatsearch/engine"
	"github.com/jenafrank/skatsearch/game"
	"github.com/jenafrank/skatsearch/pimc"
	"github.com/jenafrank/skatsearch/solver"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "skatcalc",
		Short:         "Double-dummy solver and Monte-Carlo sampler for Skat",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(solveCmd(), skatCmd(), gamesCmd(), playoutCmd(), pimcCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("skatcalc failed")
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <deal.json>",
		Short: "Compute the declarer's double-dummy result for a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deal, err := loadDeal(args[0])
			if err != nil {
				return err
			}
			ctx, tf, err := deal.context()
			if err != nil {
				return err
			}

			e := engine.NewEngine(ctx, nil)
			switch deal.Mode {
			case "Win", "win":
				res := solver.SolveWin(e)
				fmt.Printf("declarer wins: %t\n", res.DeclarerWins)
				fmt.Printf("best card: %v\n", mapBack(res.BestCard, tf))
			default: // Value
				res := solver.Solve(e)
				fmt.Printf("value: %d\n", res.Value)
				fmt.Printf("best card: %v\n", mapBack(res.BestCard, tf))
				log.Debug().
					Uint64("nodes", res.Counters.Iters).
					Uint64("tt_reads", res.Counters.Reads).
					Uint64("tt_writes", res.Counters.Writes).
					Msg("search statistics")
			}
			return nil
		},
	}
}

func skatCmd() *cobra.Command {
	var mode string
	var parallel bool
	cmd := &cobra.Command{
		Use:   "skat <deal.json>",
		Short: "Find the best two-card discard for a twelve-card pile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deal, err := loadDeal(args[0])
			if err != nil {
				return err
			}
			ctx, tf, err := deal.context()
			if err != nil {
				return err
			}

			accel, err := parseAcceleration(mode)
			if err != nil {
				return err
			}

			var res solver.SkatResult
			if parallel {
				res = solver.SolveWithSkatParallel(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
					ctx.GameType, ctx.StartPlayer, accel, 0)
			} else {
				res = solver.SolveWithSkat(ctx.LeftCards, ctx.RightCards, ctx.DeclarerCards,
					ctx.GameType, ctx.StartPlayer, accel)
			}

			for _, line := range res.AllSkats {
				fmt.Printf("%v %v : %d\n", mapBack(line.SkatCard1, tf), mapBack(line.SkatCard2, tf), line.Value)
			}
			if res.BestSkat != nil {
				fmt.Printf("best discard: %v %v (value %d)\n",
					mapBack(res.BestSkat.SkatCard1, tf), mapBack(res.BestSkat.SkatCard2, tf), res.BestSkat.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "acceleration", "alphabeta", "acceleration mode: alphabeta, winning, none")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "enumerate discards on all CPUs")
	return cmd
}

func gamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games <deal.json>",
		Short: "Evaluate every announceable contract for the declarer hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deal, err := loadDeal(args[0])
			if err != nil {
				return err
			}
			ctx, _, err := deal.context()
			if err != nil {
				return err
			}

			res := solver.CalcAllGames(ctx.DeclarerCards, ctx.LeftCards, ctx.RightCards, ctx.StartPlayer)
			for _, gv := range res.Games {
				fmt.Printf("%-8s  with skat: %3d   hand: %3d\n", gv.Key, gv.WithSkat, gv.HandValue)
			}
			best := res.BestGame()
			fmt.Printf("best game: %v (value %d)\n", best.Key, best.WithSkat)
			return nil
		},
	}
}

func playoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "playout <deal.json>",
		Short: "Play the deal to the end with optimum moves on both sides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deal, err := loadDeal(args[0])
			if err != nil {
				return err
			}
			ctx, _, err := deal.context()
			if err != nil {
				return err
			}

			res, err := game.Play(ctx)
			if err != nil {
				return err
			}
			fmt.Print(res.Protocol())
			return nil
		},
	}
}

func pimcCmd() *cobra.Command {
	var samples int
	var perCard bool
	cmd := &cobra.Command{
		Use:   "pimc <problem.json>",
		Short: "Estimate winning chances against randomised hidden hands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := loadProblem(args[0])
			if err != nil {
				return err
			}

			sampler := pimc.NewSampler(problem, samples)
			if perCard {
				for _, est := range sampler.EstimateProbabilityOfAllCards() {
					fmt.Printf("%v : %.3f\n", est.Card, est.Score)
				}
				return nil
			}

			prob, wins := sampler.EstimateWin()
			fmt.Printf("win probability: %.3f (%d/%d)\n", prob, wins, samples)
			return nil
		},
	}
	cmd.Flags().IntVar(&samples, "samples", 500, "number of Monte-Carlo samples")
	cmd.Flags().BoolVar(&perCard, "per-card", false, "estimate every playable card separately")
	return cmd
}
