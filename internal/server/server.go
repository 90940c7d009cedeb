// Package server exposes the evaluation pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/spigell/progress-evaluator/internal/evaluation"
	"github.com/spigell/progress-evaluator/internal/progress"
)

// Runner is implemented by evaluation.Evaluator.
type Runner interface {
	Run(ctx context.Context, userID string) (*progress.Scores, error)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type handler struct {
	runner Runner
	logger *zap.Logger
}

// NewRouter returns the HTTP routes of the evaluator.
func NewRouter(runner Runner, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{runner: runner, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/v1/evaluations/{userID}", h.evaluate).Methods(http.MethodPost)

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) evaluate(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]

	scores, err := h.runner.Run(r.Context(), userID)
	if err != nil {
		kind := evaluation.Kind(err)
		h.logger.Warn("evaluation failed",
			zap.String("user_id", userID),
			zap.String("kind", kind),
			zap.Error(err),
		)
		writeJSON(w, statusFor(kind), errorResponse{Error: evaluation.Describe(err), Kind: kind})
		return
	}

	writeJSON(w, http.StatusOK, scores)
}

func statusFor(kind string) int {
	switch kind {
	case "invalid_identifier":
		return http.StatusBadRequest
	case "no_answers":
		return http.StatusNotFound
	case "connectivity":
		return http.StatusServiceUnavailable
	case "scoring", "malformed_response":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
