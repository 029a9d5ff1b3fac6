package recommender

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"movieRecommender/domain"
	"movieRecommender/pkg/logger"
	"movieRecommender/pkg/metrics"
)

// ModelStore persists the trained model artifact at its configured path.
type ModelStore interface {
	Load(ctx context.Context) (*FactorModel, error)
	Save(ctx context.Context, model *FactorModel) error
}

// RatingsSource re-reads the ratings dataset for retraining.
type RatingsSource interface {
	LoadRatings(ctx context.Context) ([]domain.Rating, error)
}

// ModelAccessor owns the process-wide model reference. Readers take a full
// snapshot through Current; the single writer (startup init or an admin
// retrain) swaps a completely built model in one atomic store. A failed or
// cancelled training run never disturbs the model being served.
type ModelAccessor struct {
	store   ModelStore
	source  RatingsSource
	cfg     TrainingConfig
	current atomic.Pointer[FactorModel]
	trainMu sync.Mutex
}

func NewModelAccessor(store ModelStore, source RatingsSource, cfg TrainingConfig) *ModelAccessor {
	return &ModelAccessor{
		store:  store,
		source: source,
		cfg:    cfg,
	}
}

// Current returns the served model snapshot.
func (a *ModelAccessor) Current() (*FactorModel, error) {
	if m := a.current.Load(); m != nil {
		return m, nil
	}

	return nil, domain.ErrModelNotTrained
}

// Init loads the artifact from the store, or trains a fresh model from the
// startup ratings when no artifact exists. Must complete before the server
// accepts queries; any error here is fatal to startup.
func (a *ModelAccessor) Init(ctx context.Context, ratings []domain.Rating) error {
	model, err := a.store.Load(ctx)
	if err == nil {
		model.Version = 1
		a.publish(model)
		logger.Info("model artifact loaded",
			"rank", model.Rank,
			"users", len(model.UserFactors),
			"movies", len(model.MovieFactors),
			"rmse", model.RMSE,
		)
		return nil
	}

	if !errors.Is(err, domain.ErrModelArtifactNotFound) {
		return fmt.Errorf("load model artifact: %w", err)
	}

	logger.Info("no model artifact found, training from ratings dataset")

	model, err = a.train(ctx, ratings, 1)
	if err != nil {
		return err
	}

	a.publish(model)
	return nil
}

// Retrain re-reads the ratings dataset, trains a new model and swaps it in.
// Serialized against itself: a second caller gets ErrTrainingInProgress
// instead of queueing up behind a minutes-long run.
func (a *ModelAccessor) Retrain(ctx context.Context) (*FactorModel, error) {
	if !a.trainMu.TryLock() {
		return nil, domain.ErrTrainingInProgress
	}
	defer a.trainMu.Unlock()

	return a.retrainLocked(ctx)
}

// StartRetrain acquires the training lock synchronously, then runs the
// retrain in the background so an HTTP trigger can return immediately.
func (a *ModelAccessor) StartRetrain(ctx context.Context) error {
	if !a.trainMu.TryLock() {
		return domain.ErrTrainingInProgress
	}

	go func() {
		defer a.trainMu.Unlock()
		if _, err := a.retrainLocked(ctx); err != nil {
			logger.Error("background retrain failed", "error", err)
		}
	}()

	return nil
}

func (a *ModelAccessor) retrainLocked(ctx context.Context) (*FactorModel, error) {
	ratings, err := a.source.LoadRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload ratings dataset: %w", err)
	}

	version := 1
	if old := a.current.Load(); old != nil {
		version = old.Version + 1
	}

	model, err := a.train(ctx, ratings, version)
	if err != nil {
		return nil, err
	}

	a.publish(model)
	return model, nil
}

func (a *ModelAccessor) train(ctx context.Context, ratings []domain.Rating, version int) (*FactorModel, error) {
	model, err := TrainALS(ctx, ratings, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}
	model.Version = version

	// artifact write is best effort: the in-memory model is already complete
	if err := a.store.Save(ctx, model); err != nil {
		logger.Warn("failed to save model artifact", "error", err)
	}

	metrics.ModelTrainingsTotal.Inc()
	return model, nil
}

func (a *ModelAccessor) publish(model *FactorModel) {
	a.current.Store(model)
	metrics.ModelRMSE.Set(model.RMSE)
}
