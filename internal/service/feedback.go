package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_feedback_store.go -package=mocks bharatlaw-ai/internal/service FeedbackStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_feedback_service.go -package=mocks -mock_names=FeedbackService=MockFeedbackService bharatlaw-ai/internal/service FeedbackService

import (
	"context"
	"strings"
	"time"

	"bharatlaw-ai/internal/contextutil"
	"bharatlaw-ai/internal/feedback"
	"bharatlaw-ai/internal/metrics"
)

// FeedbackStore persists feedback records.
type FeedbackStore interface {
	Append(ctx context.Context, r feedback.Record) error
	ReadAll(ctx context.Context) ([]feedback.Record, error)
}

// FeedbackService records and reports user votes on answers.
type FeedbackService interface {
	// Submit validates and stores a vote. A blank timestamp is set to now.
	Submit(ctx context.Context, r feedback.Record) (feedback.Record, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]feedback.Record, error)
	// Stats summarises the whole log.
	Stats(ctx context.Context) (feedback.Summary, error)
}

type feedbackService struct {
	store FeedbackStore
	now   func() time.Time
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(store FeedbackStore) FeedbackService {
	return &feedbackService{store: store, now: time.Now}
}

func (s *feedbackService) Submit(ctx context.Context, r feedback.Record) (feedback.Record, error) {
	if strings.TrimSpace(r.Question) == "" {
		return feedback.Record{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	if !r.Feedback.Valid() {
		return feedback.Record{}, &ValidationError{Field: "feedback", Message: "must be thumbs_up or thumbs_down"}
	}
	if r.Timestamp == "" {
		r.Timestamp = feedback.Now(s.now())
	} else if _, err := r.Time(); err != nil {
		return feedback.Record{}, &ValidationError{Field: "timestamp", Message: "must be an ISO 8601 date-time"}
	}

	if err := s.store.Append(ctx, r); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to store feedback", "error", err)
		return feedback.Record{}, WrapError(err, "failed to store feedback")
	}
	metrics.FeedbackTotal.WithLabelValues(string(r.Feedback)).Inc()
	return r, nil
}

func (s *feedbackService) List(ctx context.Context) ([]feedback.Record, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to read feedback")
	}
	return feedback.NewestFirst(records), nil
}

func (s *feedbackService) Stats(ctx context.Context) (feedback.Summary, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return feedback.Summary{}, WrapError(err, "failed to read feedback")
	}
	return feedback.Summarize(records), nil
}
