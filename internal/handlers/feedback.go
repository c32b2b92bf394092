package handlers

import (
	"encoding/json"
	"net/http"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/feedback"
	"bharatlaw-ai/internal/service"
)

// FeedbackHandler records and reports votes on answers.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackRequest is the body of POST /api/feedback. Timestamp is optional.
type FeedbackRequest struct {
	Timestamp string `json:"timestamp,omitempty"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Feedback  string `json:"feedback"`
}

// Submit stores one vote and echoes the stored record with 201.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.feedbackService.Submit(ctx, feedback.Record{
		Timestamp: req.Timestamp,
		Question:  req.Question,
		Answer:    req.Answer,
		Feedback:  feedback.Vote(req.Feedback),
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to store feedback")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, rec)
}

// List returns the whole log, newest first.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.feedbackService.List(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to read feedback")
		return
	}
	writeJSON(ctx, w, http.StatusOK, records)
}

// Stats returns vote counts, controversial questions and daily totals.
func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.feedbackService.Stats(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to summarise feedback")
		return
	}
	writeJSON(ctx, w, http.StatusOK, summary)
}
