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

const feedbackCollectionName = "feedbacks"

// mongoFeedbackRepository implements repository.FeedbackRepository using MongoDB.
type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepository creates a new instance of mongoFeedbackRepository.
func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{
		collection: db.Collection(feedbackCollectionName),
	}
}

// Upsert creates or replaces the single feedback document for a member.
// Keyed by the member's account ID, so re-submission replaces, never appends.
func (r *mongoFeedbackRepository) Upsert(ctx context.Context, feedback *domain.Feedback) error {
	if feedback.ID == primitive.NilObjectID {
		return errors.New("feedback requires the member account ID as _id")
	}

	feedback.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": feedback.ID}
	update := bson.M{"$set": bson.M{
		"fullName":  feedback.FullName,
		"feedback":  feedback.Feedback,
		"updatedAt": feedback.UpdatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByMemberID retrieves a member's own feedback entry.
func (r *mongoFeedbackRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Feedback, error) {
	var feedback domain.Feedback
	err := r.collection.FindOne(ctx, bson.M{"_id": memberID}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

// ListAll returns every feedback entry for the carousel, newest first.
func (r *mongoFeedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedbacks []domain.Feedback
	if err = cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}
