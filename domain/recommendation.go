package domain

// MovieScore is a raw (movie, predicted score) pair produced by model scoring.
type MovieScore struct {
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// MovieRecommendation is a scored movie enriched with catalog fields.
type MovieRecommendation struct {
	MovieID        int      `json:"movie_id"`
	Title          string   `json:"title"`
	Genres         []string `json:"genres"`
	PredictedScore float64  `json:"predicted_score"`
}

// RecommendationResult is the full answer for one user: at most N movies,
// descending by predicted score, ties broken by ascending movie id.
type RecommendationResult struct {
	UserID          int                   `json:"user_id"`
	Recommendations []MovieRecommendation `json:"recommendations"`
}
