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

const sessionCollectionName = "sessions"

// mongoSessionRepository implements repository.SessionRepository using MongoDB.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new instance of mongoSessionRepository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Append inserts one session document. There is intentionally no uniqueness
// constraint on trainer/date/time: bookings are strictly additive.
func (r *mongoSessionRepository) Append(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	if session.TrainerID == primitive.NilObjectID || session.MemberID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session requires trainer and member references")
	}

	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByMemberID returns all sessions booked by one member, newest date first.
func (r *mongoSessionRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error) {
	return r.find(ctx, bson.M{"memberId": memberID})
}

// GetByTrainerID returns all sessions booked with one trainer.
func (r *mongoSessionRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID})
}

func (r *mongoSessionRepository) find(ctx context.Context, filter bson.M) ([]domain.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureSessionIndexes creates necessary indexes for the sessions collection.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
