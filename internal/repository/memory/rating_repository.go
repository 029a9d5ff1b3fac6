package memory

import (
	"sort"

	"movieRecommender/domain"
)

// RatingRepository is the immutable user -> rated movie set index, built in a
// single pass over the ratings dataset. Per-row ratings are not retained.
type RatingRepository struct {
	ratedBy map[int]map[int]struct{}
	userIDs []int
	total   int
}

func NewRatingRepository(ratings []domain.Rating) *RatingRepository {
	ratedBy := make(map[int]map[int]struct{})
	total := 0

	for _, r := range ratings {
		set, ok := ratedBy[r.UserID]
		if !ok {
			set = make(map[int]struct{})
			ratedBy[r.UserID] = set
		}
		set[r.MovieID] = struct{}{}
		total++
	}

	userIDs := make([]int, 0, len(ratedBy))
	for id := range ratedBy {
		userIDs = append(userIDs, id)
	}
	sort.Ints(userIDs)

	return &RatingRepository{
		ratedBy: ratedBy,
		userIDs: userIDs,
		total:   total,
	}
}

// RatedMovies returns the set of movie ids the user has already rated. Unknown
// users get an empty set, not an error.
func (r *RatingRepository) RatedMovies(userID int) map[int]struct{} {
	if set, ok := r.ratedBy[userID]; ok {
		return set
	}

	return map[int]struct{}{}
}

// UserIDs returns all distinct user ids in ascending order. Callers must not
// mutate the returned slice.
func (r *RatingRepository) UserIDs() []int {
	return r.userIDs
}

func (r *RatingRepository) UserCount() int {
	return len(r.userIDs)
}

func (r *RatingRepository) TotalRatings() int {
	return r.total
}
