package mongo

import (
	"context"
	"errors"
	"time"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const registrationCollectionName = "registrations"

// mongoRegistrationRepository persists the registration saga's state records.
type mongoRegistrationRepository struct {
	collection *mongo.Collection
}

// NewMongoRegistrationRepository creates a new instance of mongoRegistrationRepository.
func NewMongoRegistrationRepository(db *mongo.Database) repository.RegistrationRepository {
	return &mongoRegistrationRepository{
		collection: db.Collection(registrationCollectionName),
	}
}

// Create inserts the initial workflow record. The caller assigns the UUID.
func (r *mongoRegistrationRepository) Create(ctx context.Context, record *domain.RegistrationRecord) error {
	if record.ID == "" {
		return errors.New("registration record requires an ID")
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// SetState advances the workflow to the given state.
func (r *mongoRegistrationRepository) SetState(ctx context.Context, id string, state domain.RegistrationState) error {
	return r.update(ctx, id, bson.M{"state": state})
}

// SetFailure records a terminal failure (or compensation) with its reason.
func (r *mongoRegistrationRepository) SetFailure(ctx context.Context, id string, state domain.RegistrationState, reason string) error {
	return r.update(ctx, id, bson.M{"state": state, "failureReason": reason})
}

// SetAccountID links the created account to the workflow record so a later
// compensation knows what to delete.
func (r *mongoRegistrationRepository) SetAccountID(ctx context.Context, id string, accountID string) error {
	return r.update(ctx, id, bson.M{"accountId": accountID})
}

// SetPaymentMethodRef stores the opaque payment token on the record.
func (r *mongoRegistrationRepository) SetPaymentMethodRef(ctx context.Context, id string, ref string) error {
	return r.update(ctx, id, bson.M{"paymentMethodRef": ref})
}

// GetByID retrieves one workflow record.
func (r *mongoRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.RegistrationRecord, error) {
	var record domain.RegistrationRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *mongoRegistrationRepository) update(ctx context.Context, id string, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRegistrationIndexes creates necessary indexes for the registrations collection.
func EnsureRegistrationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
