package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movieRecommender/domain"

	"github.com/labstack/echo/v4"
)

type stubRecommenderService struct {
	result domain.RecommendationResult
	err    error
	lastN  int
}

func (s *stubRecommenderService) Recommend(ctx context.Context, userID, n int) (domain.RecommendationResult, error) {
	s.lastN = n
	if s.err != nil {
		return domain.RecommendationResult{}, s.err
	}
	return s.result, nil
}

func performRecommend(handler *RecommendationHandler, target, userID string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/recommendations/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(userID)

	_ = handler.Recommend(c)
	return rec
}

func TestRecommendHandlerOK(t *testing.T) {
	svc := &stubRecommenderService{
		result: domain.RecommendationResult{
			UserID: 7,
			Recommendations: []domain.MovieRecommendation{
				{MovieID: 2, Title: "Beta", Genres: []string{"Comedy"}, PredictedScore: 4.5},
			},
		},
	}
	handler := NewRecommendationHandler(svc)

	rec := performRecommend(handler, "/api/v1/recommendations/7?n=5", "7")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastN != 5 {
		t.Errorf("expected n=5 passed through, got %d", svc.lastN)
	}
	if !strings.Contains(rec.Body.String(), "Beta") {
		t.Errorf("expected body to contain the recommendation, got %s", rec.Body.String())
	}
}

func TestRecommendHandlerUnknownUser(t *testing.T) {
	handler := NewRecommendationHandler(&stubRecommenderService{err: domain.ErrUnknownUser})

	rec := performRecommend(handler, "/api/v1/recommendations/999", "999")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRecommendHandlerInvalidUserID(t *testing.T) {
	handler := NewRecommendationHandler(&stubRecommenderService{})

	rec := performRecommend(handler, "/api/v1/recommendations/abc", "abc")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecommendHandlerModelNotTrained(t *testing.T) {
	handler := NewRecommendationHandler(&stubRecommenderService{err: domain.ErrModelNotTrained})

	rec := performRecommend(handler, "/api/v1/recommendations/7", "7")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
