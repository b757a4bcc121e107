package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staynest/staynest-backend/internal/models"
)

// MongoUserStore persists users in the "users" collection.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favourites == nil {
		user.Favourites = []primitive.ObjectID{}
	}
	if user.Bookings == nil {
		user.Bookings = []primitive.ObjectID{}
	}

	_, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) SetRefreshToken(ctx context.Context, id primitive.ObjectID, refreshToken string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"refresh_token": refreshToken,
			"updated_at":    time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) AddFavourite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.User, error) {
	return s.updateOwnership(ctx, userID, bson.M{
		"$addToSet": bson.M{"favourites": propertyID},
		"$set":      bson.M{"updated_at": time.Now()},
	})
}

func (s *MongoUserStore) RemoveFavourite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.User, error) {
	return s.updateOwnership(ctx, userID, bson.M{
		"$pull": bson.M{"favourites": propertyID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

func (s *MongoUserStore) AddBooking(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	// The filter excludes users that already hold the booking, so the write
	// only matches when the id is genuinely new. Bundling updated_at into an
	// $addToSet update instead would modify the document on a duplicate and
	// make the modified count useless for telling new from repeat.
	res, err := s.col.UpdateOne(ctx, bson.M{
		"_id":      userID,
		"bookings": bson.M{"$ne": propertyID},
	}, bson.M{
		"$push": bson.M{"bookings": propertyID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	// No match means either the user is missing or the booking already exists.
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

func (s *MongoUserStore) updateOwnership(ctx context.Context, userID primitive.ObjectID, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
