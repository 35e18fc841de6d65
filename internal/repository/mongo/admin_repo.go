package mongo

import (
	"context"
	"errors"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const adminCollectionName = "admins"

// mongoAdminRepository implements repository.AdminRepository using MongoDB.
// Admin documents are provisioned by operators, never by the app.
type mongoAdminRepository struct {
	collection *mongo.Collection
}

// NewMongoAdminRepository creates a new instance of mongoAdminRepository.
func NewMongoAdminRepository(db *mongo.Database) repository.AdminRepository {
	return &mongoAdminRepository{
		collection: db.Collection(adminCollectionName),
	}
}

// GetByID retrieves the admin document for a principal. ErrNotFound is the
// valid negative used by role resolution.
func (r *mongoAdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.AdminProfile, error) {
	var admin domain.AdminProfile
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
