package domain

// CatalogStats are dataset-level counts, fixed after ingestion.
type CatalogStats struct {
	UserCount   int `json:"user_count"`
	MovieCount  int `json:"movie_count"`
	RatingCount int `json:"rating_count"`
}

// ModelInfo describes the currently served model artifact.
type ModelInfo struct {
	Version    int     `json:"version"`
	Rank       int     `json:"rank"`
	UserCount  int     `json:"user_count"`
	MovieCount int     `json:"movie_count"`
	RMSE       float64 `json:"rmse"`
	TrainedAt  string  `json:"trained_at"`
}
