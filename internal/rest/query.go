package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"movieRecommender/domain"
	"movieRecommender/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type QueryService interface {
	Stats(ctx context.Context) (domain.CatalogStats, error)
	ListUsers(ctx context.Context) ([]int, error)
	SearchMovies(ctx context.Context, term string, limit int) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id int) (domain.Movie, error)
}

type QueryHandler struct {
	validate     *validator.Validate
	queryService QueryService
}

func NewQueryHandler(svc QueryService) *QueryHandler {
	return &QueryHandler{
		validate:     validator.New(),
		queryService: svc,
	}
}

type SearchMoviesQuery struct {
	Search string `query:"search"`
	Limit  int    `query:"limit" validate:"gte=0,lte=500"`
}

func (h *QueryHandler) GetStats(c echo.Context) error {
	stats, err := h.queryService.Stats(c.Request().Context())
	if err != nil {
		logger.Error("failed to compute stats", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *QueryHandler) ListUsers(c echo.Context) error {
	users, err := h.queryService.ListUsers(c.Request().Context())
	if err != nil {
		logger.Error("failed to list users", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}

func (h *QueryHandler) SearchMovies(c echo.Context) error {
	var q SearchMoviesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	movies, err := h.queryService.SearchMovies(c.Request().Context(), q.Search, q.Limit)
	if err != nil {
		logger.Error("failed to search movies", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":  len(movies),
		"movies": movies,
	})
}

func (h *QueryHandler) GetMovieByID(c echo.Context) error {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid movie id"})
	}

	movie, err := h.queryService.GetMovie(c.Request().Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("failed to find movie", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, movie)
}
