// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/serene/internal/domain/model"
)

// FeedbackHandler handles recommendation feedback requests.
type FeedbackHandler struct {
	deps Dependencies
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps Dependencies) *FeedbackHandler {
	return &FeedbackHandler{deps: deps}
}

type feedbackRequest struct {
	EventID      string   `json:"event_id"`
	UserID       string   `json:"user_id"`
	MeditationID string   `json:"meditation_id"`
	Accepted     bool     `json:"accepted"`
	Rating       *float64 `json:"rating,omitempty"`
}

func (r feedbackRequest) validate() error {
	switch {
	case strings.TrimSpace(r.UserID) == "":
		return errors.New("missing user_id")
	case strings.TrimSpace(r.MeditationID) == "":
		return errors.New("missing meditation_id")
	}
	if r.Rating != nil && (*r.Rating < 0 || *r.Rating > 5) {
		return errors.New("rating must be in [0, 5]")
	}
	return nil
}

type feedbackAck struct {
	EventID   string `json:"event_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// HandlePostFeedback handles POST /feedback requests. Feedback is
// fire-and-forget: the handler acknowledges acceptance, not application.
func (h *FeedbackHandler) HandlePostFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_feedback"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	eventID, duplicate, err := h.deps.RecordFeedback(r.Context(), model.FeedbackEvent{
		EventID:      req.EventID,
		UserID:       req.UserID,
		MeditationID: req.MeditationID,
		Accepted:     req.Accepted,
		Rating:       req.Rating,
	})
	if err != nil {
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, feedbackAck{EventID: eventID, Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, feedbackAck{EventID: eventID, Status: "accepted", Duplicate: false})
}
