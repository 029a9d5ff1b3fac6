package movielens

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"movieRecommender/domain"
	"movieRecommender/pkg/logger"
)

// Loader reads the MovieLens-style tabular datasets:
//
//	ratings.csv  userId,movieId,rating,timestamp
//	movies.csv   movieId,title,genres   (genres pipe-separated)
//
// Malformed rows are logged and skipped; a missing file is an error so the
// caller can fail startup loudly.
type Loader struct {
	ratingsPath string
	moviesPath  string
}

func NewLoader(ratingsPath, moviesPath string) *Loader {
	return &Loader{
		ratingsPath: ratingsPath,
		moviesPath:  moviesPath,
	}
}

func (l *Loader) LoadRatings(ctx context.Context) ([]domain.Rating, error) {
	file, err := os.Open(l.ratingsPath)
	if err != nil {
		return nil, fmt.Errorf("open ratings dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	ratings := make([]domain.Rating, 0, 1024)
	line := 0
	skipped := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context error: %w", err)
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		// rows the csv parser rejects (bad quoting) are skipped like any
		// other malformed row; only I/O errors abort the load
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			skipped++
			logger.Warn("skipping unparseable rating row", "line", csvErr.Line, "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read ratings dataset: %w", err)
		}
		line++

		// header row
		if line == 1 && strings.EqualFold(record[0], "userId") {
			continue
		}

		rating, ok := parseRatingRow(record)
		if !ok {
			skipped++
			logger.Warn("skipping malformed rating row", "line", line, "row", strings.Join(record, ","))
			continue
		}

		ratings = append(ratings, rating)
	}

	logger.Info("ratings dataset loaded",
		"path", l.ratingsPath,
		"ratings", len(ratings),
		"skipped", skipped,
	)

	return ratings, nil
}

func (l *Loader) LoadMovies(ctx context.Context) ([]domain.Movie, error) {
	file, err := os.Open(l.moviesPath)
	if err != nil {
		return nil, fmt.Errorf("open movies dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	movies := make([]domain.Movie, 0, 1024)
	line := 0
	skipped := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context error: %w", err)
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			skipped++
			logger.Warn("skipping unparseable movie row", "line", csvErr.Line, "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read movies dataset: %w", err)
		}
		line++

		if line == 1 && strings.EqualFold(record[0], "movieId") {
			continue
		}

		movie, ok := parseMovieRow(record)
		if !ok {
			skipped++
			logger.Warn("skipping malformed movie row", "line", line, "row", strings.Join(record, ","))
			continue
		}

		movies = append(movies, movie)
	}

	logger.Info("movies dataset loaded",
		"path", l.moviesPath,
		"movies", len(movies),
		"skipped", skipped,
	)

	return movies, nil
}

func parseRatingRow(record []string) (domain.Rating, bool) {
	if len(record) < 3 {
		return domain.Rating{}, false
	}

	userID, err1 := strconv.Atoi(strings.TrimSpace(record[0]))
	movieID, err2 := strconv.Atoi(strings.TrimSpace(record[1]))
	score, err3 := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return domain.Rating{}, false
	}
	if userID < 1 || movieID < 1 {
		return domain.Rating{}, false
	}

	var ts int64
	if len(record) >= 4 {
		ts, _ = strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
	}

	return domain.Rating{
		UserID:    userID,
		MovieID:   movieID,
		Score:     score,
		Timestamp: ts,
	}, true
}

func parseMovieRow(record []string) (domain.Movie, bool) {
	if len(record) < 2 {
		return domain.Movie{}, false
	}

	movieID, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil || movieID < 1 {
		return domain.Movie{}, false
	}

	title := strings.TrimSpace(record[1])
	if title == "" {
		return domain.Movie{}, false
	}

	var genres []string
	if len(record) >= 3 {
		genres = parseGenres(record[2])
	}

	return domain.Movie{
		ID:     movieID,
		Title:  title,
		Genres: genres,
	}, true
}

func parseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "(no genres listed)" {
		return []string{}
	}

	parts := strings.Split(raw, "|")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}

	return genres
}
