package service

import (
	"context"
	"time"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/payment"
	"fittech/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Function-field fakes. A nil field means the test did not expect the call.

type fakeIdentityProvider struct {
	CreatePrincipalFn func(ctx context.Context, email, secret string) (primitive.ObjectID, error)
	AuthenticateFn    func(ctx context.Context, email, secret string) (primitive.ObjectID, error)
	DeletePrincipalFn func(ctx context.Context, id primitive.ObjectID) error

	CreateCalls []string
	DeleteCalls []primitive.ObjectID
}

func (f *fakeIdentityProvider) CreatePrincipal(ctx context.Context, email, secret string) (primitive.ObjectID, error) {
	f.CreateCalls = append(f.CreateCalls, email)
	return f.CreatePrincipalFn(ctx, email, secret)
}

func (f *fakeIdentityProvider) Authenticate(ctx context.Context, email, secret string) (primitive.ObjectID, error) {
	return f.AuthenticateFn(ctx, email, secret)
}

func (f *fakeIdentityProvider) DeletePrincipal(ctx context.Context, id primitive.ObjectID) error {
	f.DeleteCalls = append(f.DeleteCalls, id)
	if f.DeletePrincipalFn == nil {
		return nil
	}
	return f.DeletePrincipalFn(ctx, id)
}

type fakeGateway struct {
	TokenizeCardFn func(ctx context.Context, card payment.CardDetails) (string, error)
	Calls          int
}

func (f *fakeGateway) TokenizeCard(ctx context.Context, card payment.CardDetails) (string, error) {
	f.Calls++
	return f.TokenizeCardFn(ctx, card)
}

type fakeTokenStore struct {
	RevokeFn    func(ctx context.Context, jti string, ttl time.Duration) error
	IsRevokedFn func(ctx context.Context, jti string) (bool, error)

	Revoked []string
}

func (f *fakeTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	f.Revoked = append(f.Revoked, jti)
	if f.RevokeFn == nil {
		return nil
	}
	return f.RevokeFn(ctx, jti, ttl)
}

func (f *fakeTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if f.IsRevokedFn == nil {
		return false, nil
	}
	return f.IsRevokedFn(ctx, jti)
}

type fakeMemberRepo struct {
	CreateFn        func(ctx context.Context, member *domain.MemberProfile) error
	GetByIDFn       func(ctx context.Context, id primitive.ObjectID) (*domain.MemberProfile, error)
	UpdateProfileFn func(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error
	ListFn          func(ctx context.Context) ([]domain.MemberProfile, error)

	Created []*domain.MemberProfile
}

func (f *fakeMemberRepo) Create(ctx context.Context, member *domain.MemberProfile) error {
	f.Created = append(f.Created, member)
	return f.CreateFn(ctx, member)
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MemberProfile, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeMemberRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error {
	return f.UpdateProfileFn(ctx, id, update)
}

func (f *fakeMemberRepo) List(ctx context.Context) ([]domain.MemberProfile, error) {
	return f.ListFn(ctx)
}

type fakeTrainerRepo struct {
	GetByIDFn func(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error)
	ListFn    func(ctx context.Context) ([]domain.TrainerProfile, error)
}

func (f *fakeTrainerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeTrainerRepo) List(ctx context.Context) ([]domain.TrainerProfile, error) {
	return f.ListFn(ctx)
}

type fakeAdminRepo struct {
	GetByIDFn func(ctx context.Context, id primitive.ObjectID) (*domain.AdminProfile, error)
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AdminProfile, error) {
	return f.GetByIDFn(ctx, id)
}

type fakeSessionRepo struct {
	AppendFn         func(ctx context.Context, session *domain.Session) (primitive.ObjectID, error)
	GetByMemberIDFn  func(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error)
	GetByTrainerIDFn func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error)

	Appended []*domain.Session
}

func (f *fakeSessionRepo) Append(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	f.Appended = append(f.Appended, session)
	if f.AppendFn == nil {
		return primitive.NewObjectID(), nil
	}
	return f.AppendFn(ctx, session)
}

func (f *fakeSessionRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error) {
	return f.GetByMemberIDFn(ctx, memberID)
}

func (f *fakeSessionRepo) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	return f.GetByTrainerIDFn(ctx, trainerID)
}

type fakeFeedbackRepo struct {
	UpsertFn        func(ctx context.Context, feedback *domain.Feedback) error
	GetByMemberIDFn func(ctx context.Context, memberID primitive.ObjectID) (*domain.Feedback, error)
	ListAllFn       func(ctx context.Context) ([]domain.Feedback, error)

	Upserted []*domain.Feedback
}

func (f *fakeFeedbackRepo) Upsert(ctx context.Context, feedback *domain.Feedback) error {
	f.Upserted = append(f.Upserted, feedback)
	if f.UpsertFn == nil {
		return nil
	}
	return f.UpsertFn(ctx, feedback)
}

func (f *fakeFeedbackRepo) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Feedback, error) {
	return f.GetByMemberIDFn(ctx, memberID)
}

func (f *fakeFeedbackRepo) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	return f.ListAllFn(ctx)
}

// fakeRegistrationRepo records every state transition in order so tests can
// assert on the full workflow trace.
type fakeRegistrationRepo struct {
	CreateErr error

	Records     map[string]*domain.RegistrationRecord
	StateTrace  []domain.RegistrationState
	LastFailure string
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{Records: map[string]*domain.RegistrationRecord{}}
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, record *domain.RegistrationRecord) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	copied := *record
	f.Records[record.ID] = &copied
	f.StateTrace = append(f.StateTrace, record.State)
	return nil
}

func (f *fakeRegistrationRepo) SetState(ctx context.Context, id string, state domain.RegistrationState) error {
	if r, ok := f.Records[id]; ok {
		r.State = state
	}
	f.StateTrace = append(f.StateTrace, state)
	return nil
}

func (f *fakeRegistrationRepo) SetFailure(ctx context.Context, id string, state domain.RegistrationState, reason string) error {
	if r, ok := f.Records[id]; ok {
		r.State = state
		r.FailureReason = reason
	}
	f.StateTrace = append(f.StateTrace, state)
	f.LastFailure = reason
	return nil
}

func (f *fakeRegistrationRepo) SetAccountID(ctx context.Context, id string, accountID string) error {
	if r, ok := f.Records[id]; ok {
		r.AccountID = accountID
	}
	return nil
}

func (f *fakeRegistrationRepo) SetPaymentMethodRef(ctx context.Context, id string, ref string) error {
	if r, ok := f.Records[id]; ok {
		r.PaymentMethodRef = ref
	}
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.RegistrationRecord, error) {
	if r, ok := f.Records[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}
