package router

import (
	"movieRecommender/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupQueryRoutes(api *echo.Group, handler *rest.QueryHandler) {
	api.GET("/stats", handler.GetStats)
	api.GET("/users", handler.ListUsers)

	movies := api.Group("/movies")
	movies.GET("", handler.SearchMovies)
	movies.GET("/:id", handler.GetMovieByID)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("/:userId", handler.Recommend)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/model", adminOnly)

	admin.GET("", handler.GetModel)
	admin.POST("/retrain", handler.Retrain)
}
