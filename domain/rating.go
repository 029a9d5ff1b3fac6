package domain

// Rating is a single row of ratings.csv. Individual ratings are consumed at
// ingestion (rating index + model training) and not retained per-row afterwards.
type Rating struct {
	UserID    int     `json:"user_id"`
	MovieID   int     `json:"movie_id"`
	Score     float64 `json:"score"`
	Timestamp int64   `json:"timestamp"`
}
