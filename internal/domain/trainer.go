package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerProfile is provisioned out-of-band (there is no in-app signup for
// trainers) and read-only from the application's perspective.
type TrainerProfile struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Specialization string             `bson:"specialization" json:"specialization"`
	Role           Role               `bson:"role" json:"role"` // always RoleTrainer
}

// AdminProfile marks a principal as an administrator. Presence of the
// document is what grants the role; it carries no other state.
type AdminProfile struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Email string             `bson:"email" json:"email"`
	Role  Role               `bson:"role" json:"role"` // always RoleAdmin
}
