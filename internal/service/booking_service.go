package service

import (
	"context"
	"errors"
	"fmt"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUnknownProgram  = errors.New("program is not in the catalog")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrMemberNotFound  = errors.New("member not found")
)

// BookingInput is one booking form submission.
type BookingInput struct {
	Program    string
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
	TrainerID  primitive.ObjectID
	ClientName string
}

// BookingService books trainer sessions and lists them for the profile page
// and the trainer dashboard.
type BookingService interface {
	// Book appends one session. There is deliberately no double-booking,
	// availability or slot-collision check: booking is strictly additive.
	Book(ctx context.Context, memberID primitive.ObjectID, input BookingInput) (*domain.Session, error)
	ListTrainers(ctx context.Context) ([]domain.TrainerProfile, error)
	SessionsForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error)
	SessionsForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error)
}

type bookingService struct {
	sessionRepo repository.SessionRepository
	memberRepo  repository.MemberRepository
	trainerRepo repository.TrainerRepository
}

// NewBookingService creates a new instance of bookingService.
func NewBookingService(
	sessionRepo repository.SessionRepository,
	memberRepo repository.MemberRepository,
	trainerRepo repository.TrainerRepository,
) BookingService {
	return &bookingService{
		sessionRepo: sessionRepo,
		memberRepo:  memberRepo,
		trainerRepo: trainerRepo,
	}
}

// Book validates the form and appends the session document.
func (s *bookingService) Book(ctx context.Context, memberID primitive.ObjectID, input BookingInput) (*domain.Session, error) {
	if input.Date == "" || input.Time == "" || input.ClientName == "" {
		return nil, fmt.Errorf("%w: date, time and name are required", ErrValidation)
	}
	if _, ok := domain.ProgramByName(input.Program); !ok {
		return nil, ErrUnknownProgram
	}

	// A session must reference an existing member and trainer at creation
	// time; absence is a validation problem, a failed lookup is not.
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if _, err := s.trainerRepo.GetByID(ctx, input.TrainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	session := &domain.Session{
		Program:    input.Program,
		Date:       input.Date,
		Time:       input.Time,
		TrainerID:  input.TrainerID,
		MemberID:   memberID,
		ClientName: input.ClientName,
	}

	if _, err := s.sessionRepo.Append(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	bookingsTotal.Inc()

	return session, nil
}

// ListTrainers returns the full trainer list the booking form is built from.
func (s *bookingService) ListTrainers(ctx context.Context) ([]domain.TrainerProfile, error) {
	trainers, err := s.trainerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return trainers, nil
}

func (s *bookingService) SessionsForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error) {
	sessions, err := s.sessionRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return sessions, nil
}

func (s *bookingService) SessionsForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	sessions, err := s.sessionRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return sessions, nil
}
