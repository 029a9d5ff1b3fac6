package domain

// Movie is a catalog entry loaded once from movies.csv. Immutable after load.
type Movie struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}
