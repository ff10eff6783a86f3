package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/extract"
)

// InvokeHandler dispatches invoke events to registered extraction strategies
type InvokeHandler struct {
	logger   zerolog.Logger
	registry *extract.Registry
}

// NewInvokeHandler creates a new invoke handler
func NewInvokeHandler(logger zerolog.Logger, registry *extract.Registry) *InvokeHandler {
	return &InvokeHandler{
		logger:   logger.With().Str("component", "api").Logger(),
		registry: registry,
	}
}

// InvokeRequestDTO is the API request for one extraction invocation
type InvokeRequestDTO struct {
	Strategy string   `json:"strategy"`
	FileID   string   `json:"file_id"`
	ImageIDs []string `json:"image_ids,omitempty"`
	DryRun   bool     `json:"dry_run,omitempty"`
}

// InvokeResponseDTO is the API response for one extraction invocation
type InvokeResponseDTO struct {
	Status string          `json:"status"`
	ID     string          `json:"id"`
	Result *extract.Result `json:"result,omitempty"`
}

// ErrorDTO is the API error payload
type ErrorDTO struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// StrategiesDTO lists the registered strategy names
type StrategiesDTO struct {
	Strategies []string `json:"strategies"`
}

// Invoke handles POST /v1/invoke
func (h *InvokeHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req InvokeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Strategy == "" {
		req.Strategy = extract.StrategyEquipment
	}
	if req.FileID == "" && !req.DryRun {
		h.writeError(w, http.StatusBadRequest, "file_id is required", "")
		return
	}

	extractor, err := h.registry.Get(req.Strategy)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error(), "")
		return
	}

	id := uuid.NewString()
	logger := h.logger.With().Str("invocation_id", id).Str("strategy", req.Strategy).Logger()
	logger.Info().Bool("dry_run", req.DryRun).Msg("invoke received")

	result, err := extractor.Run(ctx, extract.Request{
		FileID:   req.FileID,
		ImageIDs: req.ImageIDs,
		DryRun:   req.DryRun,
	})
	if err != nil {
		logger.Error().Err(err).Msg("invocation failed")
		status := http.StatusInternalServerError
		var de *domain.DomainError
		if errors.As(err, &de) && de.Type == domain.ErrorTypeValidation {
			status = http.StatusBadRequest
		}
		h.writeError(w, status, "invocation failed", err.Error())
		return
	}

	logger.Info().Msg("invocation complete")

	h.writeJSON(w, http.StatusOK, InvokeResponseDTO{
		Status: "ok",
		ID:     id,
		Result: result,
	})
}

// Strategies handles GET /v1/strategies
func (h *InvokeHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, StrategiesDTO{Strategies: h.registry.Names()})
}

func (h *InvokeHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *InvokeHandler) writeError(w http.ResponseWriter, status int, msg, detail string) {
	h.writeJSON(w, status, ErrorDTO{Error: msg, Detail: detail})
}
