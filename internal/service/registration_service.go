package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/identity"
	"fittech/gym-app/internal/payment"
	"fittech/gym-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	// ErrValidation covers every locally detectable form problem; the user
	// re-prompts, no external system is touched.
	ErrValidation = errors.New("validation failed")
	// ErrRegistrationIncomplete is returned when the profile write failed
	// after the account and payment token were already created. The
	// compensating account deletion has run (or been attempted) by the time
	// the caller sees this.
	ErrRegistrationIncomplete = errors.New("registration could not be completed")
)

// Timeout applied to every remote step of the workflow. The providers have
// none of their own.
const registrationStepTimeout = 10 * time.Second

// RegistrationInput is the raw register form.
type RegistrationInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	DateOfBirth     string
	Password        string
	ConfirmPassword string
	Tier            string // raw ?membership= value, empty means default
	Card            payment.CardDetails
}

// RegistrationResult reports a completed registration.
type RegistrationResult struct {
	RegistrationID string
	MemberID       primitive.ObjectID
	Tier           domain.Tier
	Message        string
}

// RegistrationService runs the registration saga: account creation, card
// tokenization and profile persistence are three external systems with no
// shared transaction, so every state transition is persisted and a failed
// profile write triggers a compensating account deletion.
type RegistrationService interface {
	Register(ctx context.Context, input RegistrationInput) (*RegistrationResult, error)
}

type registrationService struct {
	provider identity.Provider
	gateway  payment.Gateway
	members  repository.MemberRepository
	records  repository.RegistrationRepository
}

// NewRegistrationService creates a new instance of registrationService.
func NewRegistrationService(
	provider identity.Provider,
	gateway payment.Gateway,
	members repository.MemberRepository,
	records repository.RegistrationRepository,
) RegistrationService {
	return &registrationService{
		provider: provider,
		gateway:  gateway,
		members:  members,
		records:  records,
	}
}

// Register drives the workflow through its linear states. Failure from any
// state lands in failed(reason); a post-account failure additionally runs
// the compensation before the record is closed.
func (s *registrationService) Register(ctx context.Context, input RegistrationInput) (*RegistrationResult, error) {
	tier, err := s.validate(input)
	if err != nil {
		registrationOutcomes.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	record := &domain.RegistrationRecord{
		ID:    uuid.NewString(),
		Email: input.Email,
		Tier:  tier,
		State: domain.RegistrationValidating,
	}
	if err := s.recordWrite(ctx, func(wctx context.Context) error {
		return s.records.Create(wctx, record)
	}); err != nil {
		log.Printf("ERROR: Could not persist registration record: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	// --- CreatingAccount ---
	if err := s.setState(ctx, record.ID, domain.RegistrationCreatingAccount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	accountID, err := s.createAccount(ctx, input)
	if err != nil {
		s.fail(ctx, record.ID, domain.RegistrationFailed, err)
		registrationOutcomes.WithLabelValues("account_failed").Inc()
		return nil, err
	}
	if err := s.recordWrite(ctx, func(wctx context.Context) error {
		return s.records.SetAccountID(wctx, record.ID, accountID.Hex())
	}); err != nil {
		log.Printf("ERROR: Registration %s: could not link account %s: %v", record.ID, accountID.Hex(), err)
	}

	// --- CapturingPayment ---
	if err := s.setState(ctx, record.ID, domain.RegistrationCapturingPayment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	paymentRef, err := s.tokenizeCard(ctx, input.Card)
	if err != nil {
		s.compensate(ctx, record.ID, accountID, err)
		registrationOutcomes.WithLabelValues("payment_failed").Inc()
		return nil, err
	}
	if err := s.recordWrite(ctx, func(wctx context.Context) error {
		return s.records.SetPaymentMethodRef(wctx, record.ID, paymentRef)
	}); err != nil {
		log.Printf("ERROR: Registration %s: could not store payment ref: %v", record.ID, err)
	}

	// --- PersistingProfile ---
	if err := s.setState(ctx, record.ID, domain.RegistrationPersistingProfile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if err := s.persistProfile(ctx, accountID, input, tier, paymentRef); err != nil {
		s.compensate(ctx, record.ID, accountID, err)
		registrationOutcomes.WithLabelValues("profile_failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrRegistrationIncomplete, err)
	}

	if err := s.setState(ctx, record.ID, domain.RegistrationSucceeded); err != nil {
		log.Printf("ERROR: Registration %s: succeeded but record not closed: %v", record.ID, err)
	}
	registrationOutcomes.WithLabelValues("succeeded").Inc()

	return &RegistrationResult{
		RegistrationID: record.ID,
		MemberID:       accountID,
		Tier:           tier,
		Message: fmt.Sprintf("Welcome to FitTech Gym, %s! Your %s membership is active.",
			input.FirstName, strings.ToUpper(string(tier))),
	}, nil
}

// validate checks the whole form locally. Nothing here reaches the identity
// provider or the payment gateway.
func (s *registrationService) validate(input RegistrationInput) (domain.Tier, error) {
	required := []struct {
		field string
		value string
	}{
		{"first name", input.FirstName},
		{"last name", input.LastName},
		{"email", input.Email},
		{"phone", input.Phone},
		{"date of birth", input.DateOfBirth},
		{"password", input.Password},
	}
	for _, r := range required {
		if r.value == "" {
			return "", fmt.Errorf("%w: %s is required", ErrValidation, r.field)
		}
	}

	// Byte-for-byte comparison, exactly what the form promised.
	if input.Password != input.ConfirmPassword {
		return "", fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	tier, ok := domain.ParseTier(input.Tier)
	if !ok {
		return "", fmt.Errorf("%w: unknown membership tier %q", ErrValidation, input.Tier)
	}

	if !input.Card.Complete() {
		return "", fmt.Errorf("%w: card details are incomplete", ErrValidation)
	}

	return tier, nil
}

// recordWrite bounds a workflow record update with the same timeout as the
// remote steps, so a slow store cannot stall the workflow between steps.
func (s *registrationService) recordWrite(ctx context.Context, write func(context.Context) error) error {
	stepCtx, cancel := context.WithTimeout(ctx, registrationStepTimeout)
	defer cancel()
	return write(stepCtx)
}

func (s *registrationService) setState(ctx context.Context, recordID string, state domain.RegistrationState) error {
	return s.recordWrite(ctx, func(wctx context.Context) error {
		return s.records.SetState(wctx, recordID, state)
	})
}

func (s *registrationService) createAccount(ctx context.Context, input RegistrationInput) (primitive.ObjectID, error) {
	stepCtx, cancel := context.WithTimeout(ctx, registrationStepTimeout)
	defer cancel()
	return s.provider.CreatePrincipal(stepCtx, input.Email, input.Password)
}

func (s *registrationService) tokenizeCard(ctx context.Context, card payment.CardDetails) (string, error) {
	stepCtx, cancel := context.WithTimeout(ctx, registrationStepTimeout)
	defer cancel()
	return s.gateway.TokenizeCard(stepCtx, card)
}

// persistProfile writes the member document keyed by the new account ID,
// with a single retry on transient store failures.
func (s *registrationService) persistProfile(ctx context.Context, accountID primitive.ObjectID, input RegistrationInput, tier domain.Tier, paymentRef string) error {
	profile := &domain.MemberProfile{
		ID:               accountID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Phone:            input.Phone,
		DateOfBirth:      input.DateOfBirth,
		MembershipTier:   tier,
		PaymentMethodRef: paymentRef,
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		stepCtx, cancel := context.WithTimeout(ctx, registrationStepTimeout)
		err = s.members.Create(stepCtx, profile)
		cancel()
		if err == nil || errors.Is(err, repository.ErrConflict) {
			break
		}
		log.Printf("WARN: Profile write attempt %d for account %s failed: %v", attempt+1, accountID.Hex(), err)
	}
	return err
}

// fail closes the workflow record without compensation (nothing external
// was created yet).
func (s *registrationService) fail(ctx context.Context, recordID string, state domain.RegistrationState, cause error) {
	err := s.recordWrite(ctx, func(wctx context.Context) error {
		return s.records.SetFailure(wctx, recordID, state, cause.Error())
	})
	if err != nil {
		log.Printf("ERROR: Registration %s: could not record failure: %v", recordID, err)
	}
}

// compensate deletes the orphaned account after a post-account step failed.
// If the deletion itself fails the record stays failed with both reasons so
// an operator can repair it by hand.
func (s *registrationService) compensate(ctx context.Context, recordID string, accountID primitive.ObjectID, cause error) {
	compCtx, cancel := context.WithTimeout(ctx, registrationStepTimeout)
	defer cancel()

	if err := s.provider.DeletePrincipal(compCtx, accountID); err != nil {
		log.Printf("ERROR: Registration %s: account %s is orphaned, compensation failed: %v", recordID, accountID.Hex(), err)
		s.fail(ctx, recordID, domain.RegistrationFailed,
			fmt.Errorf("%v (compensation failed: %v)", cause, err))
		return
	}

	log.Printf("INFO: Registration %s: deleted orphaned account %s after: %v", recordID, accountID.Hex(), cause)
	s.fail(ctx, recordID, domain.RegistrationCompensated, cause)
}
