package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberProfile represents a gym member. The document is keyed by the
// account ID issued at registration, so _id doubles as the principal ID.
type MemberProfile struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	FirstName        string             `bson:"firstName" json:"firstName"`
	LastName         string             `bson:"lastName" json:"lastName"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	DateOfBirth      string             `bson:"dateOfBirth" json:"dateOfBirth"` // YYYY-MM-DD
	MembershipTier   Tier               `bson:"membershipTier" json:"membershipTier"`
	PaymentMethodRef string             `bson:"paymentMethodRef" json:"-"` // opaque token, never raw card data
	Role             Role               `bson:"role" json:"role"`          // stored discriminant, always RoleMember
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FullName is the display name used for feedback entries.
func (m *MemberProfile) FullName() string {
	return m.FirstName + " " + m.LastName
}

// ProfileUpdate carries the only profile fields a member may edit.
// Tier and payment reference are immutable from the profile page.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
}
