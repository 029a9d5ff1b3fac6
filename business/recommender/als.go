package recommender

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"movieRecommender/domain"
	"movieRecommender/pkg/logger"
)

// TrainingConfig are the ALS hyperparameters. Zero values fall back to the
// defaults below.
type TrainingConfig struct {
	Rank           int
	Iterations     int
	Regularization float64

	// Holdout is the fraction of ratings held out for RMSE evaluation.
	Holdout float64

	Seed    int64
	Workers int
}

const (
	defaultRank       = 10
	defaultIterations = 10
	defaultRegParam   = 0.1
	defaultWorkers    = 4
)

func (c TrainingConfig) withDefaults() TrainingConfig {
	if c.Rank <= 0 {
		c.Rank = defaultRank
	}
	if c.Iterations <= 0 {
		c.Iterations = defaultIterations
	}
	if c.Regularization <= 0 {
		c.Regularization = defaultRegParam
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.Holdout < 0 || c.Holdout >= 1 {
		c.Holdout = 0
	}

	return c
}

type ratingEntry struct {
	id    int
	score float64
}

// TrainALS fits user and movie factor vectors by alternating least squares:
// fix the movie side and solve each user's ridge regression, then fix the user
// side and solve each movie's, for a configured number of sweeps. Training is
// long-running; the caller must keep it off the request-serving path. A
// cancelled context aborts between sweeps and leaves no partial model behind.
func TrainALS(ctx context.Context, ratings []domain.Rating, cfg TrainingConfig) (*FactorModel, error) {
	cfg = cfg.withDefaults()

	if len(ratings) == 0 {
		return nil, fmt.Errorf("no ratings to train on")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	train, holdout := splitRatings(ratings, cfg.Holdout, rng)
	if len(train) == 0 {
		return nil, fmt.Errorf("holdout split left no training ratings")
	}

	byUser := groupRatings(train, func(r domain.Rating) (int, int) { return r.UserID, r.MovieID })
	byMovie := groupRatings(train, func(r domain.Rating) (int, int) { return r.MovieID, r.UserID })

	started := time.Now()
	logger.Info("training ALS model",
		"ratings", len(train),
		"holdout", len(holdout),
		"users", len(byUser),
		"movies", len(byMovie),
		"rank", cfg.Rank,
		"iterations", cfg.Iterations,
		"reg_param", cfg.Regularization,
	)

	movieFactors := initFactors(byMovie, cfg.Rank, rng)
	var userFactors map[int][]float64

	for iter := 0; iter < cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("training cancelled: %w", err)
		}

		userFactors = solveSide(byUser, movieFactors, cfg)
		movieFactors = solveSide(byMovie, userFactors, cfg)
	}

	model := &FactorModel{
		Rank:         cfg.Rank,
		UserFactors:  userFactors,
		MovieFactors: movieFactors,
		TrainedAt:    time.Now(),
	}

	evalSet := holdout
	if len(evalSet) == 0 {
		evalSet = train
	}
	model.RMSE = evaluateRMSE(model, evalSet)

	logger.Info("ALS training finished",
		"duration", time.Since(started).String(),
		"rmse", model.RMSE,
	)

	return model, nil
}

// splitRatings assigns each rating to the holdout set with probability
// fraction. Deterministic for a fixed seed and input order.
func splitRatings(ratings []domain.Rating, fraction float64, rng *rand.Rand) (train, holdout []domain.Rating) {
	if fraction <= 0 {
		return ratings, nil
	}

	train = make([]domain.Rating, 0, len(ratings))
	holdout = make([]domain.Rating, 0, int(float64(len(ratings))*fraction)+1)

	for _, r := range ratings {
		if rng.Float64() < fraction {
			holdout = append(holdout, r)
		} else {
			train = append(train, r)
		}
	}

	return train, holdout
}

func groupRatings(ratings []domain.Rating, key func(domain.Rating) (int, int)) map[int][]ratingEntry {
	grouped := make(map[int][]ratingEntry)
	for _, r := range ratings {
		k, other := key(r)
		grouped[k] = append(grouped[k], ratingEntry{id: other, score: r.Score})
	}

	return grouped
}

// initFactors draws random starting vectors in sorted id order so a fixed
// seed always produces the same model.
func initFactors(grouped map[int][]ratingEntry, rank int, rng *rand.Rand) map[int][]float64 {
	ids := make([]int, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	scale := 1.0 / math.Sqrt(float64(rank))
	factors := make(map[int][]float64, len(ids))

	for _, id := range ids {
		vec := make([]float64, rank)
		for i := range vec {
			vec[i] = rng.Float64() * scale
		}
		factors[id] = vec
	}

	return factors
}

// solveSide solves one half-sweep: for every target (user or movie) it builds
// the ridge normal equations against the fixed side's factors and solves them.
// Targets are partitioned into contiguous chunks, one goroutine per chunk,
// each writing to its own index range.
func solveSide(targets map[int][]ratingEntry, fixed map[int][]float64, cfg TrainingConfig) map[int][]float64 {
	ids := make([]int, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}

	results := make([][]float64, len(ids))

	workers := cfg.Workers
	if workers > len(ids) {
		workers = len(ids)
	}
	if workers < 1 {
		workers = 1
	}

	chunk := (len(ids) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(ids) {
			break
		}
		end := start + chunk
		if end > len(ids) {
			end = len(ids)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				results[i] = solveOne(targets[ids[i]], fixed, cfg)
			}
		}(start, end)
	}
	wg.Wait()

	solved := make(map[int][]float64, len(ids))
	for i, id := range ids {
		if results[i] != nil {
			solved[id] = results[i]
		}
	}

	return solved
}

// solveOne computes one factor vector from (sum v v^T + reg*I) w = sum r v.
func solveOne(entries []ratingEntry, fixed map[int][]float64, cfg TrainingConfig) []float64 {
	rank := cfg.Rank

	A := make([][]float64, rank)
	for i := range A {
		A[i] = make([]float64, rank)
		A[i][i] = cfg.Regularization
	}
	b := make([]float64, rank)

	observed := 0
	for _, e := range entries {
		v, ok := fixed[e.id]
		if !ok {
			continue
		}
		observed++
		for i := 0; i < rank; i++ {
			for j := 0; j < rank; j++ {
				A[i][j] += v[i] * v[j]
			}
			b[i] += e.score * v[i]
		}
	}
	if observed == 0 {
		return nil
	}

	w, err := solveLinear(A, b)
	if err != nil {
		// regularized system should never be singular; drop the target
		return nil
	}

	return w
}

// evaluateRMSE scores every rating the model can predict and returns the root
// mean squared error. Pairs without trained factors are dropped, matching the
// serving side's unknown-movie handling.
func evaluateRMSE(model *FactorModel, ratings []domain.Rating) float64 {
	sum := 0.0
	n := 0

	for _, r := range ratings {
		pred, err := model.Score(r.UserID, r.MovieID)
		if err != nil {
			continue
		}
		diff := pred - r.Score
		sum += diff * diff
		n++
	}

	if n == 0 {
		return 0
	}

	return math.Sqrt(sum / float64(n))
}
