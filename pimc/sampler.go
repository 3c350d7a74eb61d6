package pimc

import (
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jenafrank/skatsearch/engine"
	"github.com/jenafrank/skatsearch/solver"
)

// Sampler runs the Monte-Carlo estimation: SampleSize independent
// concretisations, each solved double-dummy on a worker goroutine with its
// own fresh transposition table. Only the per-card accumulator is shared,
// guarded by a mutex.
type Sampler struct {
	Problem    Problem
	SampleSize int

	// Workers is the size of the worker pool; 0 means one per CPU.
	Workers int
}

// NewSampler returns a sampler with the default worker pool.
func NewSampler(problem Problem, sampleSize int) *Sampler {
	return &Sampler{Problem: problem, SampleSize: sampleSize}
}

// CardEstimate is an aggregated per-card outcome: the win probability or
// mean score of playing that card, from the sampling player's viewpoint.
type CardEstimate struct {
	Card  engine.Cards
	Score float64
}

func (s *Sampler) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

// forEachSample runs fn for every sample index across the worker pool.
func (s *Sampler) forEachSample(fn func(sample int)) {
	jobs := make(chan int, s.SampleSize)
	for i := 0; i < s.SampleSize; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < s.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	wg.Wait()
}

// EstimateWin estimates the probability that the sampling player wins the
// deal, together with the raw win count.
func (s *Sampler) EstimateWin() (float64, int) {
	var (
		mu   sync.Mutex
		wins int
	)

	s.forEachSample(func(sample int) {
		ctx := s.Problem.Concretise()
		e := engine.NewEngine(ctx, nil)
		result := solver.SolveWin(e)

		iWin := result.DeclarerWins
		if s.Problem.MyPlayer != engine.Declarer {
			iWin = !iWin
		}

		log.Debug().
			Int("sample", sample).
			Stringer("declarer", ctx.DeclarerCards).
			Stringer("left", ctx.LeftCards).
			Stringer("right", ctx.RightCards).
			Bool("win", iWin).
			Msg("pimc sample")

		if iWin {
			mu.Lock()
			wins++
			mu.Unlock()
		}
	})

	return float64(wins) / float64(s.SampleSize), wins
}

// EstimateProbabilityOfAllCards estimates, for every card the player may
// play now, the probability that playing it wins. The result is sorted
// best card first.
func (s *Sampler) EstimateProbabilityOfAllCards() []CardEstimate {
	threshold := s.Problem.Threshold
	gameType := s.Problem.GameType
	myPlayer := s.Problem.MyPlayer

	var (
		mu   sync.Mutex
		wins = make(map[engine.Cards]int)
	)

	s.forEachSample(func(sample int) {
		ctx := s.Problem.Concretise()
		e := engine.NewEngine(ctx, nil)
		lines := solver.SolveAllCards(e, threshold-1, threshold)

		local := make(map[engine.Cards]int, len(lines))
		for _, line := range lines {
			declarerWins := line.Value >= threshold
			if gameType == engine.Null {
				declarerWins = line.Value == 0
			}
			win := declarerWins == (myPlayer == engine.Declarer)
			if win {
				local[line.Card] = 1
			} else {
				local[line.Card] = 0
			}
		}

		mu.Lock()
		for card, w := range local {
			wins[card] += w
		}
		mu.Unlock()
	})

	estimates := make([]CardEstimate, 0, len(wins))
	for card, w := range wins {
		estimates = append(estimates, CardEstimate{Card: card, Score: float64(w) / float64(s.SampleSize)})
	}
	sortEstimates(estimates)
	return estimates
}

// EstimateAvgPointsOfAllCards estimates the mean declarer points of every
// playable card, inverted to 120-x for a defender so that higher is always
// better for the caller. Null deals map to 120 for a win and 0 for a loss.
func (s *Sampler) EstimateAvgPointsOfAllCards() []CardEstimate {
	gameType := s.Problem.GameType
	myPlayer := s.Problem.MyPlayer

	type accum struct {
		sum   float64
		count int
	}
	var (
		mu     sync.Mutex
		scores = make(map[engine.Cards]*accum)
	)

	s.forEachSample(func(sample int) {
		ctx := s.Problem.Concretise()
		e := engine.NewEngine(ctx, nil)
		lines := solver.SolveAllCards(e, 0, 120)

		mu.Lock()
		for _, line := range lines {
			var score float64
			switch {
			case gameType == engine.Null:
				declarerWins := line.Value == 0
				if declarerWins == (myPlayer == engine.Declarer) {
					score = 120
				}
			case myPlayer == engine.Declarer:
				score = float64(line.Value)
			default:
				score = 120 - float64(line.Value)
			}

			a := scores[line.Card]
			if a == nil {
				a = &accum{}
				scores[line.Card] = a
			}
			a.sum += score
			a.count++
		}
		mu.Unlock()
	})

	estimates := make([]CardEstimate, 0, len(scores))
	for card, a := range scores {
		estimates = append(estimates, CardEstimate{Card: card, Score: a.sum / float64(a.count)})
	}
	sortEstimates(estimates)
	return estimates
}

func sortEstimates(estimates []CardEstimate) {
	sort.Slice(estimates, func(i, j int) bool {
		if estimates[i].Score != estimates[j].Score {
			return estimates[i].Score > estimates[j].Score
		}
		return estimates[i].Card > estimates[j].Card
	})
}
