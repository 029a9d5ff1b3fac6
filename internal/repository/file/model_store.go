package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"movieRecommender/business/recommender"
	"movieRecommender/domain"
)

// ModelStore persists the factor model as a JSON artifact at a fixed path.
// The artifact is versioned by its path; there is no automatic hot reload.
type ModelStore struct {
	path string
}

func NewModelStore(path string) *ModelStore {
	return &ModelStore{path: path}
}

func (s *ModelStore) Load(ctx context.Context) (*recommender.FactorModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrModelArtifactNotFound
		}
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var model recommender.FactorModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if model.Rank <= 0 || len(model.UserFactors) == 0 || len(model.MovieFactors) == 0 {
		return nil, fmt.Errorf("model artifact at %s is empty or truncated", s.path)
	}

	return &model, nil
}

// Save writes the artifact via a temp file and rename so a crash mid-write
// never leaves a truncated artifact at the configured path.
func (s *ModelStore) Save(ctx context.Context, model *recommender.FactorModel) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace model artifact: %w", err)
	}

	return nil
}
