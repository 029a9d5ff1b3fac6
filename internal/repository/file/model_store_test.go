package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"movieRecommender/business/recommender"
	"movieRecommender/domain"
)

func TestModelStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "als.json")
	store := NewModelStore(path)

	model := &recommender.FactorModel{
		Rank:         2,
		UserFactors:  map[int][]float64{1: {0.5, -0.25}},
		MovieFactors: map[int][]float64{10: {1.5, 0.75}},
		RMSE:         0.87,
		Version:      3,
		TrainedAt:    time.Now().UTC(),
	}

	if err := store.Save(context.Background(), model); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if loaded.Rank != 2 || loaded.RMSE != 0.87 || loaded.Version != 3 {
		t.Errorf("artifact fields lost: %+v", loaded)
	}
	if loaded.UserFactors[1][1] != -0.25 {
		t.Errorf("user factors lost: %v", loaded.UserFactors)
	}
	if loaded.MovieFactors[10][0] != 1.5 {
		t.Errorf("movie factors lost: %v", loaded.MovieFactors)
	}
}

func TestModelStoreMissingArtifact(t *testing.T) {
	store := NewModelStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load(context.Background())
	if !errors.Is(err, domain.ErrModelArtifactNotFound) {
		t.Fatalf("expected ErrModelArtifactNotFound, got %v", err)
	}
}

func TestModelStoreRejectsTruncatedArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"rank": 2`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := NewModelStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for truncated artifact")
	}
}

func TestModelStoreRejectsEmptyModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"rank": 0}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := NewModelStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for empty model artifact")
	}
}
