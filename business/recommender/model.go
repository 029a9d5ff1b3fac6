package recommender

import (
	"time"

	"movieRecommender/domain"
)

// FactorModel is the trained latent-factor model: one low-dimensional vector
// per user and per movie, predicted affinity = dot product. Read-only once
// built; reload replaces the whole model via the accessor's atomic swap.
type FactorModel struct {
	Rank         int                 `json:"rank"`
	UserFactors  map[int][]float64   `json:"user_factors"`
	MovieFactors map[int][]float64   `json:"movie_factors"`
	RMSE         float64             `json:"rmse"`
	Version      int                 `json:"version"`
	TrainedAt    time.Time           `json:"trained_at"`
}

// HasUser reports whether the user was present in the training set.
func (m *FactorModel) HasUser(userID int) bool {
	_, ok := m.UserFactors[userID]
	return ok
}

// Score predicts the affinity of one (user, movie) pair.
func (m *FactorModel) Score(userID, movieID int) (float64, error) {
	u, ok := m.UserFactors[userID]
	if !ok {
		return 0, domain.ErrUnknownUser
	}

	v, ok := m.MovieFactors[movieID]
	if !ok {
		return 0, domain.ErrUnknownMovie
	}

	return dot(u, v), nil
}

// ScoreMany scores a whole candidate list in one pass. The user vector is
// resolved once; movies without trained factors are silently dropped. This is
// the batch path the engine uses, so per-request cost stays one map lookup
// plus a dot product per candidate.
func (m *FactorModel) ScoreMany(userID int, movieIDs []int) ([]domain.MovieScore, error) {
	u, ok := m.UserFactors[userID]
	if !ok {
		return nil, domain.ErrUnknownUser
	}

	scores := make([]domain.MovieScore, 0, len(movieIDs))
	for _, id := range movieIDs {
		v, ok := m.MovieFactors[id]
		if !ok {
			continue
		}
		scores = append(scores, domain.MovieScore{
			MovieID: id,
			Score:   dot(u, v),
		})
	}

	return scores, nil
}

// UserIDs returns the trained user set (unordered).
func (m *FactorModel) UserIDs() []int {
	ids := make([]int, 0, len(m.UserFactors))
	for id := range m.UserFactors {
		ids = append(ids, id)
	}

	return ids
}

// Info summarizes the model for the admin surface.
func (m *FactorModel) Info() domain.ModelInfo {
	return domain.ModelInfo{
		Version:    m.Version,
		Rank:       m.Rank,
		UserCount:  len(m.UserFactors),
		MovieCount: len(m.MovieFactors),
		RMSE:       m.RMSE,
		TrainedAt:  m.TrainedAt.UTC().Format(time.RFC3339),
	}
}
