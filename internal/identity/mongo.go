package identity

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const accountCollectionName = "accounts"

const minSecretLength = 8

// mongoProvider implements Provider with an accounts collection and bcrypt
// password hashes.
type mongoProvider struct {
	collection *mongo.Collection
}

// NewMongoProvider creates a Provider backed by the given database.
func NewMongoProvider(db *mongo.Database) Provider {
	return &mongoProvider{
		collection: db.Collection(accountCollectionName),
	}
}

// CreatePrincipal registers a new account keyed by email+secret. The unique
// email index is the authority on duplicates; the returned ID is immutable.
func (p *mongoProvider) CreatePrincipal(ctx context.Context, email, secret string) (primitive.ObjectID, error) {
	if email == "" {
		return primitive.NilObjectID, errors.New("email is required")
	}
	if len(secret) < minSecretLength {
		return primitive.NilObjectID, ErrWeakSecret
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return primitive.NilObjectID, err
	}

	account := Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := p.collection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrEmailTaken
		}
		return primitive.NilObjectID, err
	}
	return account.ID, nil
}

// Authenticate checks email+secret and returns the principal ID. A missing
// account and a wrong password both map to ErrInvalidCredential.
func (p *mongoProvider) Authenticate(ctx context.Context, email, secret string) (primitive.ObjectID, error) {
	var account Account
	err := p.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, ErrInvalidCredential
		}
		return primitive.NilObjectID, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(secret)); err != nil {
		return primitive.NilObjectID, ErrInvalidCredential
	}
	return account.ID, nil
}

// DeletePrincipal removes an account. Used only by the registration saga's
// compensation when the profile write failed after the account was created.
func (p *mongoProvider) DeletePrincipal(ctx context.Context, id primitive.ObjectID) error {
	_, err := p.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureAccountIndexes creates the unique email index for the accounts
// collection. Call this once during application startup.
func EnsureAccountIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
