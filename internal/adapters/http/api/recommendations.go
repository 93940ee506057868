// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/serene/internal/domain/model"
)

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRecommendHandler creates a new recommendations handler.
func NewRecommendHandler(deps Dependencies, maxLimit int) *RecommendHandler {
	return &RecommendHandler{deps: deps, maxLimit: maxLimit}
}

type recommendRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
	Limit  int    `json:"limit"`
}

func (r recommendRequest) validate(maxLimit int) error {
	switch {
	case strings.TrimSpace(r.UserID) == "":
		return errors.New("missing user_id")
	case r.Limit < 0:
		return errors.New("limit must not be negative")
	case r.Limit > maxLimit:
		return errors.New("limit exceeds maximum")
	}
	return nil
}

type recommendResponse struct {
	Assessment      assessmentSummary      `json:"assessment"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Fallback        bool                   `json:"fallback"`
}

// assessmentSummary is the trimmed assessment view returned with
// recommendations; the full assessment is available from /analyze.
type assessmentSummary struct {
	PrimaryConcern model.Category `json:"primary_concern"`
	SeverityScore  float64        `json:"severity_score"`
	Urgency        model.Urgency  `json:"urgency_level"`
}

// HandlePostRecommendations handles POST /recommendations requests.
func (h *RecommendHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_recommendations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxLimit); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	assessment, recs, fallback, err := h.deps.Recommend(r.Context(), req.UserID, req.Text, req.Limit)
	if err != nil {
		// Only possible when no catalog exists at all.
		writeError(w, http.StatusServiceUnavailable, "empty_catalog", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{
		Assessment: assessmentSummary{
			PrimaryConcern: assessment.PrimaryConcern,
			SeverityScore:  assessment.SeverityScore,
			Urgency:        assessment.Urgency,
		},
		Recommendations: recs,
		Fallback:        fallback,
	})
}
