package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/models"
	"github.com/staynest/staynest-backend/internal/store"
)

// ListingService is the read/write surface over the property catalogue.
type ListingService struct {
	properties store.PropertyStore
}

func NewListingService(properties store.PropertyStore) *ListingService {
	return &ListingService{properties: properties}
}

// CreateInput are the fields accepted at property creation.
type CreateInput struct {
	Title        string
	Desc         string
	Img          string
	Rating       float64
	Price        *models.Price
	Location     string
	Availability *models.Availability
}

// Create persists a new property. Title, desc and both price sub-fields are
// required; price must carry org and mrp together or not at all.
func (s *ListingService) Create(ctx context.Context, in CreateInput) (*models.Property, error) {
	if in.Title == "" || in.Desc == "" || in.Price == nil || in.Price.Org == 0 || in.Price.Mrp == 0 {
		return nil, httperr.BadRequest("Missing required fields")
	}

	property := &models.Property{
		Title:        in.Title,
		Desc:         in.Desc,
		Img:          in.Img,
		Rating:       in.Rating,
		Price:        *in.Price,
		Location:     in.Location,
		Availability: in.Availability,
	}
	if err := s.properties.Insert(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// GetByID fetches a single property by its hex id.
func (s *ListingService) GetByID(ctx context.Context, idHex string) (*models.Property, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, httperr.BadRequest("Invalid property ID format")
	}

	property, err := s.properties.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("Property not found")
	}
	if err != nil {
		return nil, err
	}
	return property, nil
}

// List returns properties under the pagination/sort contract together with
// the unfiltered total.
func (s *ListingService) List(ctx context.Context, opts store.ListOptions) ([]models.Property, int64, error) {
	return s.properties.List(ctx, opts)
}

// Search returns properties under the location/date filter contract together
// with the total computed under the same filter.
func (s *ListingService) Search(ctx context.Context, filter store.SearchFilter) ([]models.Property, int64, error) {
	return s.properties.Search(ctx, filter)
}

// Update applies a partial update. At least one of img, title, desc or rating
// must be supplied.
func (s *ListingService) Update(ctx context.Context, idHex string, patch store.PropertyPatch) (*models.Property, error) {
	if patch.IsEmpty() {
		return nil, httperr.BadRequest("Missing required fields")
	}

	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, httperr.BadRequest("Invalid property ID format")
	}

	property, err := s.properties.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("Property not found")
	}
	if err != nil {
		return nil, err
	}
	return property, nil
}

// Delete removes a property by its hex id.
func (s *ListingService) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return httperr.BadRequest("Invalid property ID format")
	}

	err = s.properties.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return httperr.NotFound("Property not found")
	}
	return err
}
