package payment

import (
	"context"
	"errors"
)

// ErrCard covers everything the provider rejects about the card itself
// (number, expiry, security code). It blocks the registration workflow and
// is surfaced to the user.
var ErrCard = errors.New("card was declined by the payment provider")

// CardDetails is the raw card input from the registration form. It only
// ever lives in memory for the duration of one tokenization call; nothing
// in the application persists it.
type CardDetails struct {
	Number          string
	ExpirationMonth string
	ExpirationYear  string
	SecurityCode    string
	HolderName      string
}

// Complete reports whether every field needed for tokenization is present.
func (c CardDetails) Complete() bool {
	return c.Number != "" && c.ExpirationMonth != "" && c.ExpirationYear != "" &&
		c.SecurityCode != "" && c.HolderName != ""
}

// Gateway exchanges card details for an opaque payment-method reference.
// The reference is what gets stored on the member profile.
type Gateway interface {
	TokenizeCard(ctx context.Context, card CardDetails) (string, error)
}
