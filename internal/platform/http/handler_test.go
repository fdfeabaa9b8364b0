package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callguard/spam-checker/internal/domain"
	httpHandler "github.com/callguard/spam-checker/internal/platform/http"
	"github.com/callguard/spam-checker/internal/platform/http/middleware"
)

type MockService struct {
	Classification *domain.Classification
	Err            error
	ClassifyCalls  int
}

func (m *MockService) CheckNumber(ctx context.Context, phone string) (*domain.LookupResult, error) {
	return nil, nil
}

func (m *MockService) Classify(ctx context.Context, phone string) (*domain.Classification, error) {
	m.ClassifyCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Classification, nil
}

func (m *MockService) Search(ctx context.Context, query string) ([]*domain.SearchHit, error) {
	return nil, nil
}

func (m *MockService) Fetch(ctx context.Context, id string) (*domain.Report, error) {
	return nil, nil
}

func newRouter(svc *MockService, token string) http.Handler {
	r := chi.NewRouter()
	httpHandler.NewHandler(svc).RegisterRoutes(r, middleware.BearerAuth(token))
	return r
}

func TestSpamScoreOK(t *testing.T) {
	svc := &MockService{Classification: &domain.Classification{
		PhoneNumber: "+12345678901",
		SpamScore:   1,
		CheckedAt:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}}
	router := newRouter(svc, "secret")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/spam_score",
		strings.NewReader(`{"phone_number": "+12345678901"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["spam_score"])
	assert.Equal(t, "2026-02-01T12:00:00Z", body["checked_at"])
}

func TestSpamScoreInvalidFormat(t *testing.T) {
	svc := &MockService{}
	router := newRouter(svc, "secret")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/spam_score",
		strings.NewReader(`{"phone_number": "12345"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.ClassifyCalls, "validation rejects before the service runs")
}

func TestSpamScoreProviderErrorMapping(t *testing.T) {
	cases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{"number not found", domain.ErrNumberNotFound, http.StatusNotFound},
		{"provider auth", domain.ErrProviderAuth, http.StatusUnauthorized},
		{"rate limited", domain.ErrRateLimited, http.StatusServiceUnavailable},
		{"upstream unavailable", domain.ErrUpstreamUnavailable, http.StatusBadGateway},
		{"upstream error", domain.ErrUpstreamError, http.StatusBadGateway},
		{"score unavailable", domain.ErrScoreUnavailable, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			svc := &MockService{Err: tc.Err}
			router := newRouter(svc, "secret")

			req := httptest.NewRequest(http.MethodPost, "/api/v1/spam_score",
				strings.NewReader(`{"phone_number": "+12345678901"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.Expected, rec.Code)
		})
	}
}

func TestClassifyOK(t *testing.T) {
	svc := &MockService{Classification: &domain.Classification{
		PhoneNumber: "+12345678901",
		SpamScore:   0,
		CheckedAt:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}}
	router := newRouter(svc, "secret")

	req := httptest.NewRequest(http.MethodPost, "/v1/classify",
		strings.NewReader(`{"phone_number": "+12345678901"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Result struct {
			PhoneNumber string `json:"phone_number"`
			SpamScore   int    `json:"spam_score"`
		} `json:"result"`
		ModelVersion string `json:"model_version"`
		CreatedAt    string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "+12345678901", body.Result.PhoneNumber)
	assert.Equal(t, 0, body.Result.SpamScore)
	assert.Equal(t, "1.0", body.ModelVersion)
	assert.NotEmpty(t, body.CreatedAt)
}

func TestClassifyRejectsBadToken(t *testing.T) {
	cases := []struct {
		Name   string
		Header string
	}{
		{"wrong token", "Bearer wrong"},
		{"missing header", ""},
		{"no bearer prefix", "secret"},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			svc := &MockService{Classification: &domain.Classification{}}
			router := newRouter(svc, "secret")

			req := httptest.NewRequest(http.MethodPost, "/v1/classify",
				strings.NewReader(`{"phone_number": "+12345678901"}`))
			if tc.Header != "" {
				req.Header.Set("Authorization", tc.Header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.Equal(t, 0, svc.ClassifyCalls, "no provider call on auth failure")
		})
	}
}

func TestHealthz(t *testing.T) {
	router := newRouter(&MockService{}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
