package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staynest/staynest-backend/internal/models"
)

// MongoPropertyStore persists properties in the "properties" collection.
type MongoPropertyStore struct {
	col *mongo.Collection
}

func NewMongoPropertyStore(db *mongo.Database) *MongoPropertyStore {
	return &MongoPropertyStore{col: db.Collection("properties")}
}

func (s *MongoPropertyStore) Insert(ctx context.Context, property *models.Property) error {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	_, err := s.col.InsertOne(ctx, property)
	return err
}

func (s *MongoPropertyStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *MongoPropertyStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *MongoPropertyStore) List(ctx context.Context, opts ListOptions) ([]models.Property, int64, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	order := 1
	if opts.Desc {
		order = -1
	}

	findOpts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: sortBy, Value: order}})

	cursor, err := s.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (s *MongoPropertyStore) Search(ctx context.Context, filter SearchFilter) ([]models.Property, int64, error) {
	query := bson.M{}
	if filter.Location != "" {
		// Case-insensitive substring match; quote the input so it is never
		// interpreted as a pattern.
		query["location"] = bson.M{"$regex": regexp.QuoteMeta(filter.Location), "$options": "i"}
	}
	if filter.CheckIn != nil {
		query["availability.from"] = bson.M{"$lte": *filter.CheckIn}
	}
	if filter.CheckOut != nil {
		query["availability.to"] = bson.M{"$gte": *filter.CheckOut}
	}

	cursor, err := s.col.Find(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}

	// Total is computed under the same filter as the result set
	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (s *MongoPropertyStore) Update(ctx context.Context, id primitive.ObjectID, patch PropertyPatch) (*models.Property, error) {
	set := bson.M{"updated_at": time.Now()}
	if patch.Img != nil {
		set["img"] = *patch.Img
	}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Desc != nil {
		set["desc"] = *patch.Desc
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var property models.Property
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *MongoPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
