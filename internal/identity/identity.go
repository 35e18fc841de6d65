package identity

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider-level errors. EmailTaken and InvalidCredential are surfaced
// verbatim to the user; anything else is a transport failure.
var (
	ErrEmailTaken        = errors.New("an account with this email already exists")
	ErrWeakSecret        = errors.New("password must be at least 8 characters")
	ErrInvalidCredential = errors.New("invalid email or password")
)

// Account is the credential document managed by the provider. The profile
// collections never see the password hash.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// Provider is the identity collaborator consumed by the workflows: account
// creation during registration, credential checks at login, and principal
// deletion as the registration saga's compensating action.
type Provider interface {
	CreatePrincipal(ctx context.Context, email, secret string) (primitive.ObjectID, error)
	Authenticate(ctx context.Context, email, secret string) (primitive.ObjectID, error)
	DeletePrincipal(ctx context.Context, id primitive.ObjectID) error
}
