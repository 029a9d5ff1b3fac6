package recommender

import (
	"context"
	"fmt"
	"sort"
	"time"

	"movieRecommender/domain"
	"movieRecommender/pkg/logger"
	"movieRecommender/pkg/metrics"
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	FindByID(id int) (domain.Movie, error)
	All() []domain.Movie
}

type RatingRepository interface {
	RatedMovies(userID int) map[int]struct{}
}

// RecommendationCache is an optional result cache keyed per (model version,
// user, n). A nil cache disables caching entirely.
type RecommendationCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ---- Usecase / Service ----

type RecommenderService struct {
	accessor    *ModelAccessor
	catalogRepo CatalogRepository
	ratingRepo  RatingRepository
	cache       RecommendationCache
	defaultN    int
	maxN        int
	cacheTTL    time.Duration
}

func NewRecommenderService(
	accessor *ModelAccessor,
	catalogRepo CatalogRepository,
	ratingRepo RatingRepository,
	cache RecommendationCache,
	defaultN int,
	maxN int,
	cacheTTL time.Duration,
) *RecommenderService {
	if defaultN <= 0 {
		defaultN = 10
	}
	if maxN < defaultN {
		maxN = defaultN
	}

	return &RecommenderService{
		accessor:    accessor,
		catalogRepo: catalogRepo,
		ratingRepo:  ratingRepo,
		cache:       cache,
		defaultN:    defaultN,
		maxN:        maxN,
		cacheTTL:    cacheTTL,
	}
}

// Recommend returns the top-N movies for a user: every catalog movie the user
// has not rated, scored in one batch against the current model, sorted by
// descending predicted score with ties broken by ascending movie id. Movies
// without trained factors are dropped, and an empty result is a valid answer.
func (s *RecommenderService) Recommend(ctx context.Context, userID, n int) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}

	// out-of-range n is clamped, not rejected
	if n <= 0 {
		n = s.defaultN
	}
	if n > s.maxN {
		n = s.maxN
	}

	model, err := s.accessor.Current()
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	// fail fast before any scoring work
	if !model.HasUser(userID) {
		return domain.RecommendationResult{}, domain.ErrUnknownUser
	}

	cacheKey := fmt.Sprintf("rec:v%d:user:%d:n:%d", model.Version, userID, n)
	if s.cache != nil {
		var cached domain.RecommendationResult
		if ok, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && ok {
			metrics.RecommendCacheHitsTotal.Inc()
			return cached, nil
		}
	}

	// candidate set = catalog minus already-rated
	rated := s.ratingRepo.RatedMovies(userID)
	catalog := s.catalogRepo.All()

	candidates := make([]int, 0, len(catalog))
	for _, m := range catalog {
		if _, seen := rated[m.ID]; seen {
			continue
		}
		candidates = append(candidates, m.ID)
	}

	scores, err := model.ScoreMany(userID, candidates)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score == scores[j].Score {
			return scores[i].MovieID < scores[j].MovieID
		}
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > n {
		scores = scores[:n]
	}

	recs := make([]domain.MovieRecommendation, 0, len(scores))
	for _, sc := range scores {
		movie, err := s.catalogRepo.FindByID(sc.MovieID)
		if err != nil {
			continue
		}
		recs = append(recs, domain.MovieRecommendation{
			MovieID:        movie.ID,
			Title:          movie.Title,
			Genres:         movie.Genres,
			PredictedScore: sc.Score,
		})
	}

	result := domain.RecommendationResult{
		UserID:          userID,
		Recommendations: recs,
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("recommendations served",
		"trace_id", tid,
		"user_id", userID,
		"n", n,
		"candidates", len(candidates),
		"returned", len(recs),
		"model_version", model.Version,
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			logger.Debug("recommendation cache write failed", "trace_id", tid, "error", err)
		}
	}

	return result, nil
}

// Retrain runs a full synchronous retrain. Exposed for the admin surface and
// tests; HTTP callers should prefer StartRetrain.
func (s *RecommenderService) Retrain(ctx context.Context) (domain.ModelInfo, error) {
	model, err := s.accessor.Retrain(ctx)
	if err != nil {
		return domain.ModelInfo{}, err
	}

	return model.Info(), nil
}

// StartRetrain kicks off a background retrain, failing fast when one is
// already running.
func (s *RecommenderService) StartRetrain(ctx context.Context) error {
	return s.accessor.StartRetrain(ctx)
}

// ModelInfo describes the currently served model.
func (s *RecommenderService) ModelInfo() (domain.ModelInfo, error) {
	model, err := s.accessor.Current()
	if err != nil {
		return domain.ModelInfo{}, err
	}

	return model.Info(), nil
}
