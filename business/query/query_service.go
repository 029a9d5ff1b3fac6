package query

import (
	"context"
	"fmt"

	"movieRecommender/domain"
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	FindByID(id int) (domain.Movie, error)
	Search(term string, limit int) []domain.Movie
	Count() int
}

type RatingRepository interface {
	UserIDs() []int
	UserCount() int
	TotalRatings() int
}

// ---- Usecase / Service ----

// QueryService answers the model-independent dashboard queries: dataset stats,
// user listing and catalog search. All counts are fixed at load time, so stats
// are O(1) and idempotent.
type QueryService struct {
	catalogRepo  CatalogRepository
	ratingRepo   RatingRepository
	defaultLimit int
}

func NewQueryService(catalogRepo CatalogRepository, ratingRepo RatingRepository, defaultLimit int) *QueryService {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}

	return &QueryService{
		catalogRepo:  catalogRepo,
		ratingRepo:   ratingRepo,
		defaultLimit: defaultLimit,
	}
}

func (s *QueryService) Stats(ctx context.Context) (domain.CatalogStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogStats{}, fmt.Errorf("context error: %w", err)
	}

	return domain.CatalogStats{
		UserCount:   s.ratingRepo.UserCount(),
		MovieCount:  s.catalogRepo.Count(),
		RatingCount: s.ratingRepo.TotalRatings(),
	}, nil
}

func (s *QueryService) ListUsers(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.ratingRepo.UserIDs(), nil
}

// SearchMovies forwards to the catalog. A missing limit falls back to the
// configured default; an empty term lists the catalog head.
func (s *QueryService) SearchMovies(ctx context.Context, term string, limit int) ([]domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}

	return s.catalogRepo.Search(term, limit), nil
}

func (s *QueryService) GetMovie(ctx context.Context, id int) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, fmt.Errorf("context error: %w", err)
	}

	return s.catalogRepo.FindByID(id)
}
