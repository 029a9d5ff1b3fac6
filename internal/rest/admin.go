package rest

import (
	"context"
	"errors"
	"net/http"

	"movieRecommender/domain"
	"movieRecommender/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AdminModelService interface {
	ModelInfo() (domain.ModelInfo, error)
	StartRetrain(ctx context.Context) error
}

type AdminHandler struct {
	modelService AdminModelService
}

func NewAdminHandler(svc AdminModelService) *AdminHandler {
	return &AdminHandler{
		modelService: svc,
	}
}

// GET /api/v1/admin/model
func (h *AdminHandler) GetModel(c echo.Context) error {
	info, err := h.modelService.ModelInfo()
	if err != nil {
		if errors.Is(err, domain.ErrModelNotTrained) {
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, info)
}

// POST /api/v1/admin/model/retrain
//
// Training runs in the background; the request returns as soon as the
// training lock is held. The request context is detached so closing the
// admin connection does not abort the run.
func (h *AdminHandler) Retrain(c echo.Context) error {
	ctx := context.WithoutCancel(c.Request().Context())

	if err := h.modelService.StartRetrain(ctx); err != nil {
		if errors.Is(err, domain.ErrTrainingInProgress) {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("failed to start retrain", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"message": "model retraining started",
	})
}
