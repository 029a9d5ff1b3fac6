package memory

import (
	"strings"

	"movieRecommender/domain"
)

// CatalogRepository is the immutable in-memory movie index. Built once at
// startup from movies.csv; safe for concurrent reads without locking.
type CatalogRepository struct {
	movies []domain.Movie
	byID   map[int]int // movie id -> index into movies, ingestion order
}

func NewCatalogRepository(movies []domain.Movie) *CatalogRepository {
	byID := make(map[int]int, len(movies))
	kept := make([]domain.Movie, 0, len(movies))

	for _, m := range movies {
		if _, dup := byID[m.ID]; dup {
			continue
		}
		byID[m.ID] = len(kept)
		kept = append(kept, m)
	}

	return &CatalogRepository{
		movies: kept,
		byID:   byID,
	}
}

func (r *CatalogRepository) FindByID(id int) (domain.Movie, error) {
	idx, ok := r.byID[id]
	if !ok {
		return domain.Movie{}, domain.ErrMovieNotFound
	}

	return r.movies[idx], nil
}

// Search returns up to limit movies whose title contains term
// case-insensitively, in catalog ingestion order. An empty term matches
// everything. Empty results are a valid answer, never an error.
func (r *CatalogRepository) Search(term string, limit int) []domain.Movie {
	if limit <= 0 {
		return []domain.Movie{}
	}

	needle := strings.ToLower(term)
	out := make([]domain.Movie, 0, limit)

	for _, m := range r.movies {
		if needle != "" && !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}

	return out
}

// All returns every catalog movie in ingestion order. Callers must not mutate
// the returned slice.
func (r *CatalogRepository) All() []domain.Movie {
	return r.movies
}

func (r *CatalogRepository) Count() int {
	return len(r.movies)
}
