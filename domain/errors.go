package domain

import "errors"

var (
	// ErrMovieNotFound is returned for catalog lookups of unknown movie ids.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrUnknownUser is returned when recommendations are requested for a user
	// absent from the trained model. Distinct from a user with zero ratings in
	// the current dataset: model membership is authoritative.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownMovie means the movie has no trained factors. Internal only:
	// the engine drops such candidates instead of surfacing the error.
	ErrUnknownMovie = errors.New("unknown movie")

	// ErrModelNotTrained means no model has been loaded or trained yet.
	ErrModelNotTrained = errors.New("model not trained")

	// ErrTrainingInProgress guards the single-writer training lock.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrModelArtifactNotFound means no artifact exists at the configured path.
	ErrModelArtifactNotFound = errors.New("model artifact not found")
)
