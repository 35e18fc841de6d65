package domain

import "time"

// RegistrationState tracks the linear registration saga. The workflow spans
// three external systems (identity, payment, document store) with no
// transaction across them, so every transition is persisted before the next
// remote call is made.
type RegistrationState string

const (
	RegistrationValidating        RegistrationState = "validating"
	RegistrationCreatingAccount   RegistrationState = "creating_account"
	RegistrationCapturingPayment  RegistrationState = "capturing_payment"
	RegistrationPersistingProfile RegistrationState = "persisting_profile"
	RegistrationSucceeded         RegistrationState = "succeeded"
	RegistrationFailed            RegistrationState = "failed"
	// RegistrationCompensated means the profile write failed and the orphaned
	// account was deleted again.
	RegistrationCompensated RegistrationState = "compensated"
)

// RegistrationRecord is the persisted workflow-state document. ID is a UUID
// assigned when the workflow starts, before any account exists.
type RegistrationRecord struct {
	ID               string            `bson:"_id" json:"id"`
	Email            string            `bson:"email" json:"email"`
	Tier             Tier              `bson:"tier" json:"tier"`
	State            RegistrationState `bson:"state" json:"state"`
	FailureReason    string            `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
	AccountID        string            `bson:"accountId,omitempty" json:"accountId,omitempty"`
	PaymentMethodRef string            `bson:"paymentMethodRef,omitempty" json:"-"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}
