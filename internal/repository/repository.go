package repository

import (
	"context"

	"fittech/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. Callers must treat ErrNotFound
// as a valid negative (the document is absent) and every other error as a
// transient store failure, never as "not this role" or "no such profile".
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MemberRepository persists member profiles (the "users" collection).
type MemberRepository interface {
	Create(ctx context.Context, member *domain.MemberProfile) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MemberProfile, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error
	List(ctx context.Context) ([]domain.MemberProfile, error)
}

// TrainerRepository reads trainer profiles. Trainers are provisioned
// out-of-band, so there is no Create here.
type TrainerRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error)
	List(ctx context.Context) ([]domain.TrainerProfile, error)
}

// AdminRepository answers existence checks for the admin role.
type AdminRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AdminProfile, error)
}

// SessionRepository appends and lists booked sessions. Sessions are never
// updated or deleted in-app.
type SessionRepository interface {
	Append(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error)
}

// FeedbackRepository upserts the one-per-member feedback document and lists
// all entries for the carousel.
type FeedbackRepository interface {
	Upsert(ctx context.Context, feedback *domain.Feedback) error
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Feedback, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
}

// RegistrationRepository persists the registration saga's workflow-state
// records.
type RegistrationRepository interface {
	Create(ctx context.Context, record *domain.RegistrationRecord) error
	SetState(ctx context.Context, id string, state domain.RegistrationState) error
	SetFailure(ctx context.Context, id string, state domain.RegistrationState, reason string) error
	SetAccountID(ctx context.Context, id string, accountID string) error
	SetPaymentMethodRef(ctx context.Context, id string, ref string) error
	GetByID(ctx context.Context, id string) (*domain.RegistrationRecord, error)
}
