package memory

import (
	"errors"
	"testing"

	"movieRecommender/domain"
)

func catalogFixture() *CatalogRepository {
	return NewCatalogRepository([]domain.Movie{
		{ID: 1, Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
		{ID: 2, Title: "Jumanji (1995)", Genres: []string{"Adventure"}},
		{ID: 3, Title: "Grumpier Old Men (1995)", Genres: []string{"Comedy", "Romance"}},
		{ID: 4, Title: "Story of Us, The (1999)", Genres: []string{"Drama"}},
	})
}

func TestCatalogFindByID(t *testing.T) {
	repo := catalogFixture()

	movie, err := repo.FindByID(2)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if movie.Title != "Jumanji (1995)" {
		t.Errorf("unexpected title %q", movie.Title)
	}

	if _, err := repo.FindByID(99); !errors.Is(err, domain.ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestCatalogSearchCaseInsensitive(t *testing.T) {
	repo := catalogFixture()

	results := repo.Search("STORY", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	// ingestion order is preserved
	if results[0].ID != 1 || results[1].ID != 4 {
		t.Errorf("expected ids [1, 4], got [%d, %d]", results[0].ID, results[1].ID)
	}
}

func TestCatalogSearchEmptyTermListsAll(t *testing.T) {
	repo := catalogFixture()

	results := repo.Search("", 3)
	if len(results) != 3 {
		t.Fatalf("expected limit to bound results, got %d", len(results))
	}
	if results[0].ID != 1 {
		t.Errorf("expected ingestion order, first id was %d", results[0].ID)
	}
}

func TestCatalogSearchNoMatches(t *testing.T) {
	repo := catalogFixture()

	results := repo.Search("does-not-exist", 10)
	if len(results) != 0 {
		t.Errorf("expected empty result, got %d", len(results))
	}
}

func TestCatalogIgnoresDuplicateIDs(t *testing.T) {
	repo := NewCatalogRepository([]domain.Movie{
		{ID: 1, Title: "First"},
		{ID: 1, Title: "Duplicate"},
	})

	if repo.Count() != 1 {
		t.Fatalf("expected duplicate id to be dropped, count=%d", repo.Count())
	}
	movie, _ := repo.FindByID(1)
	if movie.Title != "First" {
		t.Errorf("first occurrence must win, got %q", movie.Title)
	}
}
