package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackService owns the one-feedback-per-member write path and the
// carousel read path.
type FeedbackService interface {
	// Submit upserts the member's single feedback entry. The display name
	// comes from the member profile, not from the form.
	Submit(ctx context.Context, memberID primitive.ObjectID, text string) (*domain.Feedback, error)
	// OwnFeedback returns the member's entry, or repository.ErrNotFound.
	OwnFeedback(ctx context.Context, memberID primitive.ObjectID) (*domain.Feedback, error)
	// List returns all entries for the rotating carousel.
	List(ctx context.Context) ([]domain.Feedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	memberRepo   repository.MemberRepository
}

// NewFeedbackService creates a new instance of feedbackService.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	memberRepo repository.MemberRepository,
) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		memberRepo:   memberRepo,
	}
}

// Submit creates or replaces the feedback document keyed by the member ID.
func (s *feedbackService) Submit(ctx context.Context, memberID primitive.ObjectID, text string) (*domain.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: feedback text is required", ErrValidation)
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	feedback := &domain.Feedback{
		ID:       memberID,
		FullName: member.FullName(),
		Feedback: text,
	}
	if err := s.feedbackRepo.Upsert(ctx, feedback); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return feedback, nil
}

func (s *feedbackService) OwnFeedback(ctx context.Context, memberID primitive.ObjectID) (*domain.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	feedbacks, err := s.feedbackRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return feedbacks, nil
}
