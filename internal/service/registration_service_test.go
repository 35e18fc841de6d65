package service

import (
	"context"
	"errors"
	"testing"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/identity"
	"fittech/gym-app/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validRegistrationInput() RegistrationInput {
	return RegistrationInput{
		FirstName:       "Maria",
		LastName:        "Silva",
		Email:           "maria@example.com",
		Phone:           "555-0101",
		DateOfBirth:     "1994-03-12",
		Password:        "password123",
		ConfirmPassword: "password123",
		Tier:            "gold",
		Card: payment.CardDetails{
			Number:          "5031433215406351",
			ExpirationMonth: "11",
			ExpirationYear:  "2030",
			SecurityCode:    "123",
			HolderName:      "MARIA SILVA",
		},
	}
}

func workingProvider(accountID primitive.ObjectID) *fakeIdentityProvider {
	return &fakeIdentityProvider{
		CreatePrincipalFn: func(ctx context.Context, email, secret string) (primitive.ObjectID, error) {
			return accountID, nil
		},
	}
}

func workingGateway() *fakeGateway {
	return &fakeGateway{
		TokenizeCardFn: func(ctx context.Context, card payment.CardDetails) (string, error) {
			return "tok_abc123", nil
		},
	}
}

func acceptingMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		CreateFn: func(ctx context.Context, member *domain.MemberProfile) error {
			return nil
		},
	}
}

func TestRegister_Success(t *testing.T) {
	accountID := primitive.NewObjectID()
	provider := workingProvider(accountID)
	gateway := workingGateway()
	members := acceptingMemberRepo()
	records := newFakeRegistrationRepo()

	svc := NewRegistrationService(provider, gateway, members, records)

	result, err := svc.Register(context.Background(), validRegistrationInput())
	require.NoError(t, err)

	assert.Equal(t, accountID, result.MemberID)
	assert.Equal(t, domain.TierGold, result.Tier)
	assert.Contains(t, result.Message, "Welcome to FitTech Gym, Maria!")
	assert.Contains(t, result.Message, "GOLD")

	require.Len(t, provider.CreateCalls, 1, "exactly one account")
	require.Len(t, members.Created, 1, "exactly one profile")
	assert.Equal(t, 1, gateway.Calls, "exactly one tokenization")
	assert.Empty(t, provider.DeleteCalls)

	profile := members.Created[0]
	assert.Equal(t, accountID, profile.ID)
	assert.Equal(t, domain.TierGold, profile.MembershipTier)
	assert.Equal(t, "tok_abc123", profile.PaymentMethodRef)

	record, err := records.GetByID(context.Background(), result.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationSucceeded, record.State)
	assert.Equal(t, accountID.Hex(), record.AccountID)
	assert.Equal(t, []domain.RegistrationState{
		domain.RegistrationValidating,
		domain.RegistrationCreatingAccount,
		domain.RegistrationCapturingPayment,
		domain.RegistrationPersistingProfile,
		domain.RegistrationSucceeded,
	}, records.StateTrace)
}

func TestRegister_DefaultTier(t *testing.T) {
	accountID := primitive.NewObjectID()
	members := acceptingMemberRepo()
	svc := NewRegistrationService(workingProvider(accountID), workingGateway(), members, newFakeRegistrationRepo())

	input := validRegistrationInput()
	input.Tier = ""

	result, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.TierGold, result.Tier)
	assert.Equal(t, domain.TierGold, members.Created[0].MembershipTier)
}

func TestRegister_ValidationStopsBeforeAnySideEffect(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegistrationInput)
	}{
		{"password mismatch", func(in *RegistrationInput) { in.ConfirmPassword = "different99" }},
		{"missing email", func(in *RegistrationInput) { in.Email = "" }},
		{"missing phone", func(in *RegistrationInput) { in.Phone = "" }},
		{"unknown tier", func(in *RegistrationInput) { in.Tier = "diamond" }},
		{"incomplete card", func(in *RegistrationInput) { in.Card.SecurityCode = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeIdentityProvider{
				CreatePrincipalFn: func(ctx context.Context, email, secret string) (primitive.ObjectID, error) {
					t.Fatal("no account may be created for an invalid form")
					return primitive.NilObjectID, nil
				},
			}
			gateway := &fakeGateway{
				TokenizeCardFn: func(ctx context.Context, card payment.CardDetails) (string, error) {
					t.Fatal("no card may be tokenized for an invalid form")
					return "", nil
				},
			}
			records := newFakeRegistrationRepo()
			svc := NewRegistrationService(provider, gateway, acceptingMemberRepo(), records)

			input := validRegistrationInput()
			tc.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, records.StateTrace, "no workflow record for an invalid form")
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	provider := &fakeIdentityProvider{
		CreatePrincipalFn: func(ctx context.Context, email, secret string) (primitive.ObjectID, error) {
			return primitive.NilObjectID, identity.ErrEmailTaken
		},
	}
	records := newFakeRegistrationRepo()
	svc := NewRegistrationService(provider, workingGateway(), acceptingMemberRepo(), records)

	_, err := svc.Register(context.Background(), validRegistrationInput())
	assert.ErrorIs(t, err, identity.ErrEmailTaken)
	assert.Empty(t, provider.DeleteCalls, "nothing to compensate, no account exists")

	assert.Equal(t, domain.RegistrationFailed, records.StateTrace[len(records.StateTrace)-1])
}

func TestRegister_CardDeclinedCompensates(t *testing.T) {
	accountID := primitive.NewObjectID()
	provider := workingProvider(accountID)
	gateway := &fakeGateway{
		TokenizeCardFn: func(ctx context.Context, card payment.CardDetails) (string, error) {
			return "", payment.ErrCard
		},
	}
	members := acceptingMemberRepo()
	records := newFakeRegistrationRepo()
	svc := NewRegistrationService(provider, gateway, members, records)

	_, err := svc.Register(context.Background(), validRegistrationInput())
	assert.ErrorIs(t, err, payment.ErrCard)

	require.Len(t, provider.DeleteCalls, 1, "the orphaned account must be deleted")
	assert.Equal(t, accountID, provider.DeleteCalls[0])
	assert.Empty(t, members.Created)
	assert.Equal(t, domain.RegistrationCompensated, records.StateTrace[len(records.StateTrace)-1])
}

func TestRegister_ProfileWriteFailure(t *testing.T) {
	t.Run("retries once then compensates", func(t *testing.T) {
		accountID := primitive.NewObjectID()
		provider := workingProvider(accountID)
		members := &fakeMemberRepo{
			CreateFn: func(ctx context.Context, member *domain.MemberProfile) error {
				return errors.New("write concern timeout")
			},
		}
		records := newFakeRegistrationRepo()
		svc := NewRegistrationService(provider, workingGateway(), members, records)

		_, err := svc.Register(context.Background(), validRegistrationInput())
		assert.ErrorIs(t, err, ErrRegistrationIncomplete)

		assert.Len(t, members.Created, 2, "one retry after the first failure")
		require.Len(t, provider.DeleteCalls, 1)
		assert.Equal(t, accountID, provider.DeleteCalls[0])
		assert.Equal(t, domain.RegistrationCompensated, records.StateTrace[len(records.StateTrace)-1])
	})

	t.Run("transient failure then success on retry", func(t *testing.T) {
		accountID := primitive.NewObjectID()
		provider := workingProvider(accountID)
		attempts := 0
		members := &fakeMemberRepo{
			CreateFn: func(ctx context.Context, member *domain.MemberProfile) error {
				attempts++
				if attempts == 1 {
					return errors.New("transient network error")
				}
				return nil
			},
		}
		records := newFakeRegistrationRepo()
		svc := NewRegistrationService(provider, workingGateway(), members, records)

		result, err := svc.Register(context.Background(), validRegistrationInput())
		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.Empty(t, provider.DeleteCalls)

		record, err := records.GetByID(context.Background(), result.RegistrationID)
		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationSucceeded, record.State)
	})

	t.Run("failed compensation leaves the record failed with both reasons", func(t *testing.T) {
		accountID := primitive.NewObjectID()
		provider := workingProvider(accountID)
		provider.DeletePrincipalFn = func(ctx context.Context, id primitive.ObjectID) error {
			return errors.New("identity store unavailable")
		}
		members := &fakeMemberRepo{
			CreateFn: func(ctx context.Context, member *domain.MemberProfile) error {
				return errors.New("write concern timeout")
			},
		}
		records := newFakeRegistrationRepo()
		svc := NewRegistrationService(provider, workingGateway(), members, records)

		_, err := svc.Register(context.Background(), validRegistrationInput())
		assert.ErrorIs(t, err, ErrRegistrationIncomplete)

		assert.Equal(t, domain.RegistrationFailed, records.StateTrace[len(records.StateTrace)-1])
		assert.Contains(t, records.LastFailure, "compensation failed")
	})
}

func TestRegister_ValidationMessageIsStable(t *testing.T) {
	input := validRegistrationInput()
	input.FirstName = ""
	input.Phone = ""

	records := newFakeRegistrationRepo()
	svc := NewRegistrationService(workingProvider(primitive.NewObjectID()), workingGateway(), acceptingMemberRepo(), records)

	// Several missing fields, one stable answer: the form is checked in
	// display order, so the first field always wins.
	for i := 0; i < 25; i++ {
		_, err := svc.Register(context.Background(), input)
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "first name is required")
	}
}

// deadlineTrackingRecords counts workflow record writes that arrive without
// a context deadline.
type deadlineTrackingRecords struct {
	*fakeRegistrationRepo
	MissingDeadlines int
}

func (d *deadlineTrackingRecords) note(ctx context.Context) {
	if _, ok := ctx.Deadline(); !ok {
		d.MissingDeadlines++
	}
}

func (d *deadlineTrackingRecords) Create(ctx context.Context, record *domain.RegistrationRecord) error {
	d.note(ctx)
	return d.fakeRegistrationRepo.Create(ctx, record)
}

func (d *deadlineTrackingRecords) SetState(ctx context.Context, id string, state domain.RegistrationState) error {
	d.note(ctx)
	return d.fakeRegistrationRepo.SetState(ctx, id, state)
}

func (d *deadlineTrackingRecords) SetFailure(ctx context.Context, id string, state domain.RegistrationState, reason string) error {
	d.note(ctx)
	return d.fakeRegistrationRepo.SetFailure(ctx, id, state, reason)
}

func (d *deadlineTrackingRecords) SetAccountID(ctx context.Context, id string, accountID string) error {
	d.note(ctx)
	return d.fakeRegistrationRepo.SetAccountID(ctx, id, accountID)
}

func (d *deadlineTrackingRecords) SetPaymentMethodRef(ctx context.Context, id string, ref string) error {
	d.note(ctx)
	return d.fakeRegistrationRepo.SetPaymentMethodRef(ctx, id, ref)
}

func TestRegister_RecordWritesCarryStepDeadline(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		records := &deadlineTrackingRecords{fakeRegistrationRepo: newFakeRegistrationRepo()}
		svc := NewRegistrationService(workingProvider(primitive.NewObjectID()), workingGateway(), acceptingMemberRepo(), records)

		_, err := svc.Register(context.Background(), validRegistrationInput())

		require.NoError(t, err)
		require.Len(t, records.StateTrace, 5)
		assert.Zero(t, records.MissingDeadlines)
	})

	t.Run("failure path", func(t *testing.T) {
		records := &deadlineTrackingRecords{fakeRegistrationRepo: newFakeRegistrationRepo()}
		gateway := &fakeGateway{
			TokenizeCardFn: func(ctx context.Context, card payment.CardDetails) (string, error) {
				return "", payment.ErrCard
			},
		}
		svc := NewRegistrationService(workingProvider(primitive.NewObjectID()), gateway, acceptingMemberRepo(), records)

		_, err := svc.Register(context.Background(), validRegistrationInput())

		require.ErrorIs(t, err, payment.ErrCard)
		assert.Equal(t, domain.RegistrationCompensated, records.StateTrace[len(records.StateTrace)-1])
		assert.Zero(t, records.MissingDeadlines)
	})
}
