package query

import (
	"context"
	"errors"
	"testing"

	"movieRecommender/domain"
	"movieRecommender/internal/repository/memory"
)

func newTestService() *QueryService {
	catalogRepo := memory.NewCatalogRepository([]domain.Movie{
		{ID: 1, Title: "Alpha", Genres: []string{"Drama"}},
		{ID: 2, Title: "Beta", Genres: []string{"Comedy"}},
		{ID: 3, Title: "Gamma", Genres: []string{"Drama"}},
	})
	ratingRepo := memory.NewRatingRepository([]domain.Rating{
		{UserID: 7, MovieID: 1, Score: 5},
		{UserID: 7, MovieID: 2, Score: 4},
		{UserID: 3, MovieID: 3, Score: 3},
	})

	return NewQueryService(catalogRepo, ratingRepo, 2)
}

func TestStatsIdempotent(t *testing.T) {
	svc := newTestService()

	first, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	second, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}

	if first != second {
		t.Errorf("stats changed without ingestion: %+v vs %+v", first, second)
	}
	if first.UserCount != 2 || first.MovieCount != 3 || first.RatingCount != 3 {
		t.Errorf("unexpected stats: %+v", first)
	}
}

func TestListUsers(t *testing.T) {
	svc := newTestService()

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}

	if len(users) != 2 || users[0] != 3 || users[1] != 7 {
		t.Errorf("expected ascending [3, 7], got %v", users)
	}
}

func TestSearchMoviesDefaultLimit(t *testing.T) {
	svc := newTestService()

	// no limit supplied -> configured default of 2
	movies, err := svc.SearchMovies(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("SearchMovies returned error: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("expected default limit 2, got %d results", len(movies))
	}
}

func TestSearchMoviesByTerm(t *testing.T) {
	svc := newTestService()

	movies, err := svc.SearchMovies(context.Background(), "beta", 10)
	if err != nil {
		t.Fatalf("SearchMovies returned error: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != 2 {
		t.Errorf("expected only Beta, got %v", movies)
	}
}

func TestGetMovieNotFound(t *testing.T) {
	svc := newTestService()

	if _, err := svc.GetMovie(context.Background(), 42); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}
