package recommender

import (
	"context"
	"math"
	"testing"

	"movieRecommender/domain"
)

func TestSolveLinear(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 -> x = 1, y = 3
	A := [][]float64{
		{2, 1},
		{1, 3},
	}
	b := []float64{5, 10}

	x, err := solveLinear(A, b)
	if err != nil {
		t.Fatalf("solveLinear returned error: %v", err)
	}

	if math.Abs(x[0]-1) > 1e-9 || math.Abs(x[1]-3) > 1e-9 {
		t.Errorf("expected solution [1, 3], got %v", x)
	}
}

func TestSolveLinearSingular(t *testing.T) {
	A := [][]float64{
		{1, 2},
		{2, 4},
	}
	b := []float64{1, 2}

	if _, err := solveLinear(A, b); err == nil {
		t.Fatal("expected error for singular matrix")
	}
}

// two taste groups: users 1-3 love movies 1-3 and dislike 4-6, users 4-6 the
// opposite; a rank-2 model must separate them
func blockRatings() []domain.Rating {
	var ratings []domain.Rating
	for u := 1; u <= 6; u++ {
		for m := 1; m <= 6; m++ {
			score := 1.0
			sameBlock := (u <= 3) == (m <= 3)
			if sameBlock {
				score = 5.0
			}
			ratings = append(ratings, domain.Rating{UserID: u, MovieID: m, Score: score})
		}
	}
	return ratings
}

func TestTrainALSFitsBlockStructure(t *testing.T) {
	cfg := TrainingConfig{
		Rank:           2,
		Iterations:     15,
		Regularization: 0.05,
		Holdout:        0,
		Seed:           42,
		Workers:        2,
	}

	model, err := TrainALS(context.Background(), blockRatings(), cfg)
	if err != nil {
		t.Fatalf("TrainALS returned error: %v", err)
	}

	if len(model.UserFactors) != 6 || len(model.MovieFactors) != 6 {
		t.Fatalf("expected 6 users and 6 movies, got %d / %d",
			len(model.UserFactors), len(model.MovieFactors))
	}

	if model.RMSE > 1.0 {
		t.Errorf("training RMSE too high: %f", model.RMSE)
	}

	// a group-1 user must rank in-block movies above out-of-block ones
	liked, err := model.Score(1, 2)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	disliked, err := model.Score(1, 5)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if liked <= disliked {
		t.Errorf("expected in-block movie to score higher: liked=%f disliked=%f", liked, disliked)
	}
}

func TestTrainALSDeterministicForFixedSeed(t *testing.T) {
	cfg := TrainingConfig{Rank: 2, Iterations: 5, Regularization: 0.1, Seed: 7, Workers: 3}

	first, err := TrainALS(context.Background(), blockRatings(), cfg)
	if err != nil {
		t.Fatalf("TrainALS returned error: %v", err)
	}
	second, err := TrainALS(context.Background(), blockRatings(), cfg)
	if err != nil {
		t.Fatalf("TrainALS returned error: %v", err)
	}

	for id, vec := range first.UserFactors {
		other := second.UserFactors[id]
		for i := range vec {
			if math.Abs(vec[i]-other[i]) > 1e-12 {
				t.Fatalf("user %d factor %d differs between runs: %f vs %f", id, i, vec[i], other[i])
			}
		}
	}
}

func TestTrainALSHoldoutEvaluation(t *testing.T) {
	cfg := TrainingConfig{Rank: 2, Iterations: 10, Regularization: 0.05, Holdout: 0.2, Seed: 42, Workers: 2}

	model, err := TrainALS(context.Background(), blockRatings(), cfg)
	if err != nil {
		t.Fatalf("TrainALS returned error: %v", err)
	}

	if model.RMSE < 0 {
		t.Errorf("RMSE must be non-negative, got %f", model.RMSE)
	}
}

func TestTrainALSCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := TrainALS(ctx, blockRatings(), TrainingConfig{Seed: 1}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestTrainALSNoRatings(t *testing.T) {
	if _, err := TrainALS(context.Background(), nil, TrainingConfig{}); err == nil {
		t.Fatal("expected error for empty ratings")
	}
}

func TestScoreManySkipsUnknownMovies(t *testing.T) {
	model := &FactorModel{
		Rank:         1,
		UserFactors:  map[int][]float64{1: {2.0}},
		MovieFactors: map[int][]float64{10: {1.5}},
	}

	scores, err := model.ScoreMany(1, []int{10, 11, 12})
	if err != nil {
		t.Fatalf("ScoreMany returned error: %v", err)
	}

	if len(scores) != 1 || scores[0].MovieID != 10 {
		t.Fatalf("expected only movie 10 scored, got %+v", scores)
	}
	if math.Abs(scores[0].Score-3.0) > 1e-9 {
		t.Errorf("expected score 3.0, got %f", scores[0].Score)
	}
}

func TestScoreUnknownPairs(t *testing.T) {
	model := &FactorModel{
		Rank:         1,
		UserFactors:  map[int][]float64{1: {1}},
		MovieFactors: map[int][]float64{10: {1}},
	}

	if _, err := model.Score(99, 10); err != domain.ErrUnknownUser {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
	if _, err := model.Score(1, 99); err != domain.ErrUnknownMovie {
		t.Errorf("expected ErrUnknownMovie, got %v", err)
	}
	if _, err := model.ScoreMany(99, []int{10}); err != domain.ErrUnknownUser {
		t.Errorf("expected ErrUnknownUser from ScoreMany, got %v", err)
	}
}
