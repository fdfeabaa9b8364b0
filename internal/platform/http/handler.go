package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/callguard/spam-checker/internal/domain"
	"github.com/callguard/spam-checker/internal/service"
)

const modelVersion = "1.0"

type Handler struct {
	service service.Service
}

func NewHandler(s service.Service) *Handler {
	return &Handler{
		service: s,
	}
}

// RegisterRoutes mounts both endpoints. Only /v1/classify sits behind the
// bearer-token middleware; the legacy spam_score endpoint is open.
func (h *Handler) RegisterRoutes(r chi.Router, bearerAuth func(http.Handler) http.Handler) {
	r.Post("/api/v1/spam_score", h.SpamScore)
	r.With(bearerAuth).Post("/v1/classify", h.Classify)
	r.Get("/healthz", h.Health)
}

func (h *Handler) SpamScore(w http.ResponseWriter, r *http.Request) {
	var req SpamScoreRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	classification, err := h.service.Classify(r.Context(), req.PhoneNumber)
	if err != nil {
		log.Printf("❌ ERROR SpamScore: %v", err)
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SpamScoreResponse{
		SpamScore: classification.SpamScore,
		CheckedAt: classification.CheckedAt.Format(time.RFC3339),
	})
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req SpamScoreRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	classification, err := h.service.Classify(r.Context(), req.PhoneNumber)
	if err != nil {
		log.Printf("❌ ERROR Classify: %v", err)
		writeError(w, statusFromError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ClassifyResponse{
		Result: ClassifyResult{
			PhoneNumber: classification.PhoneNumber,
			SpamScore:   classification.SpamScore,
		},
		ModelVersion: modelVersion,
		CreatedAt:    classification.CheckedAt.Format(time.RFC3339),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFromError maps provider failures to distinguishable status codes.
// The rate-limit case surfaces as 503 so callers back off the whole service,
// matching the reference behavior.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNumberNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProviderAuth):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstreamUnavailable),
		errors.Is(err, domain.ErrUpstreamError),
		errors.Is(err, domain.ErrScoreUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
