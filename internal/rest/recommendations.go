package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"movieRecommender/domain"
	"movieRecommender/pkg/logger"
	"movieRecommender/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate           *validator.Validate
		recommenderService RecommenderService
	}

	RecommenderService interface {
		Recommend(ctx context.Context, userID, n int) (domain.RecommendationResult, error)
	}

	RecommendQuery struct {
		N int `query:"n" validate:"gte=0"`
	}
)

func NewRecommendationHandler(svc RecommenderService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:           validator.New(),
		recommenderService: svc,
	}
}

// GET /api/v1/recommendations/:userId?n=10
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()

	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil || userID < 1 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	metrics.RecommendRequestsTotal.Inc()

	result, err := h.recommenderService.Recommend(c.Request().Context(), userID, q.N)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, domain.ErrModelNotTrained) {
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
		}
		logger.Error("failed to compute recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
