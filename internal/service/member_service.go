package service

import (
	"context"
	"errors"
	"fmt"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberService serves the profile page and the admin listings.
type MemberService interface {
	GetProfile(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberProfile, error)
	// UpdateProfile mutates only the member-editable fields; tier and
	// payment reference never change here.
	UpdateProfile(ctx context.Context, memberID primitive.ObjectID, update domain.ProfileUpdate) (*domain.MemberProfile, error)
	ListMembers(ctx context.Context) ([]domain.MemberProfile, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) GetProfile(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberProfile, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return member, nil
}

func (s *memberService) UpdateProfile(ctx context.Context, memberID primitive.ObjectID, update domain.ProfileUpdate) (*domain.MemberProfile, error) {
	if update.FirstName == "" || update.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrValidation)
	}

	if err := s.memberRepo.UpdateProfile(ctx, memberID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return s.GetProfile(ctx, memberID)
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.MemberProfile, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return members, nil
}
