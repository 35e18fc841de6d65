package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is a scheduled meeting between one member and one trainer for one
// program at a date/time. Unrelated to the authentication session.
//
// Sessions are append-only: there is no edit or cancel path, and no
// double-booking or slot-collision check. Two members booking the same
// trainer for the same slot both get a session.
type Session struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Program    string             `bson:"program" json:"program"`
	Date       string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time       string             `bson:"time" json:"time"` // HH:MM
	TrainerID  primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	MemberID   primitive.ObjectID `bson:"memberId" json:"memberId"`
	ClientName string             `bson:"clientName" json:"clientName"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
