package mongo

import (
	"context"
	"errors"
	"time"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const memberCollectionName = "users"

// mongoMemberRepository implements repository.MemberRepository using MongoDB.
type mongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a new instance of mongoMemberRepository.
// It expects a connected *mongo.Database instance.
func NewMongoMemberRepository(db *mongo.Database) repository.MemberRepository {
	return &mongoMemberRepository{
		collection: db.Collection(memberCollectionName),
	}
}

// Create inserts a new member profile. The _id is the account ID issued by
// the identity provider, so it must already be set by the caller.
func (r *mongoMemberRepository) Create(ctx context.Context, member *domain.MemberProfile) error {
	if member.ID == primitive.NilObjectID {
		return errors.New("member profile requires the account ID as _id")
	}
	if member.Email == "" {
		return errors.New("member email is required")
	}

	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now
	member.Role = domain.RoleMember

	_, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID retrieves a member profile by account ID.
func (r *mongoMemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MemberProfile, error) {
	var member domain.MemberProfile
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// UpdateProfile mutates only the member-editable fields. Tier and payment
// reference are deliberately not part of the update document.
func (r *mongoMemberRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error {
	filter := bson.M{"_id": id}
	set := bson.M{
		"firstName": update.FirstName,
		"lastName":  update.LastName,
		"phone":     update.Phone,
		"updatedAt": time.Now().UTC(),
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns all member profiles (admin dashboard).
func (r *mongoMemberRepository) List(ctx context.Context) ([]domain.MemberProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.MemberProfile
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// EnsureMemberIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureMemberIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "membershipTier", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
