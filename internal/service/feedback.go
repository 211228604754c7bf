package service

import (
	"log/slog"
	"strings"
	"time"

	"minibank/internal/models"
	"minibank/internal/store"
)

// FeedbackService owns the customer review stack and the per-service
// feedback list.
type FeedbackService struct {
	reviews  *store.ReviewStack
	feedback *store.FeedbackStore
	log      *slog.Logger
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(reviews *store.ReviewStack, feedback *store.FeedbackStore, log *slog.Logger) *FeedbackService {
	return &FeedbackService{reviews: reviews, feedback: feedback, log: log}
}

// SubmitReview pushes a complaint/review on the stack.
func (s *FeedbackService) SubmitReview(username, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ServiceError{Code: ErrCodeEmptyField, Message: "review text is required"}
	}
	if err := s.reviews.Push(username + ": " + text); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save reviews", Err: err}
	}
	return nil
}

// UndoLastReview pops the most recent review; it reports false when there
// is nothing to undo.
func (s *FeedbackService) UndoLastReview() (string, bool, error) {
	review, ok, err := s.reviews.Pop()
	if err != nil {
		return "", false, &ServiceError{Code: ErrCodePersistence, Message: "failed to save reviews", Err: err}
	}
	return review, ok, nil
}

// Reviews returns all reviews, newest first.
func (s *FeedbackService) Reviews() []string {
	return s.reviews.All()
}

// SubmitFeedback records feedback about a named bank service.
func (s *FeedbackService) SubmitFeedback(username, serviceName, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ServiceError{Code: ErrCodeEmptyField, Message: "feedback text is required"}
	}
	fb := models.Feedback{
		Username: username,
		Service:  serviceName,
		Text:     text,
		When:     time.Now().Format("1/2/2006 3:04:05 PM"),
	}
	if err := s.feedback.Add(fb); err != nil {
		return &ServiceError{Code: ErrCodePersistence, Message: "failed to save feedback", Err: err}
	}
	s.log.Info("service feedback submitted", "username", username, "service", serviceName)
	return nil
}

// Feedback returns every feedback entry in submission order.
func (s *FeedbackService) Feedback() []models.Feedback {
	return s.feedback.All()
}
