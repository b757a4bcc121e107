package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/httperr"
	"github.com/staynest/staynest-backend/internal/models"
	"github.com/staynest/staynest-backend/internal/store"
)

// OwnershipService mutates a user's favourites and bookings sets.
type OwnershipService struct {
	users      store.UserStore
	properties store.PropertyStore
}

func NewOwnershipService(users store.UserStore, properties store.PropertyStore) *OwnershipService {
	return &OwnershipService{users: users, properties: properties}
}

// BookProperty books a property for the user. Booking the same property twice
// yields a conflict; the first booking succeeds.
func (s *OwnershipService) BookProperty(ctx context.Context, userID primitive.ObjectID, propertyIDHex string) error {
	propertyID, err := parsePropertyID(propertyIDHex)
	if err != nil {
		return err
	}

	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httperr.NotFound("Property not found")
		}
		return err
	}

	added, err := s.users.AddBooking(ctx, userID, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return httperr.NotFound("User not found")
	}
	if err != nil {
		return err
	}
	if !added {
		return httperr.Conflict("Property already booked")
	}
	return nil
}

// AddFavourite adds the property to the user's favourites. A no-op when
// already present.
func (s *OwnershipService) AddFavourite(ctx context.Context, userID primitive.ObjectID, propertyIDHex string) (*models.User, error) {
	propertyID, err := parsePropertyID(propertyIDHex)
	if err != nil {
		return nil, err
	}

	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, httperr.NotFound("Property not found")
		}
		return nil, err
	}

	user, err := s.users.AddFavourite(ctx, userID, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return sanitize(user), nil
}

// RemoveFavourite filters the property out of the user's favourites. Removing
// an id that is not present is not an error.
func (s *OwnershipService) RemoveFavourite(ctx context.Context, userID primitive.ObjectID, propertyIDHex string) (*models.User, error) {
	propertyID, err := parsePropertyID(propertyIDHex)
	if err != nil {
		return nil, err
	}

	user, err := s.users.RemoveFavourite(ctx, userID, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return sanitize(user), nil
}

// ListFavourites expands the user's favourites ids into full property records.
func (s *OwnershipService) ListFavourites(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error) {
	return s.expand(ctx, userID, func(u *models.User) []primitive.ObjectID { return u.Favourites })
}

// ListBookings expands the user's bookings ids into full property records.
func (s *OwnershipService) ListBookings(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error) {
	return s.expand(ctx, userID, func(u *models.User) []primitive.ObjectID { return u.Bookings })
}

func (s *OwnershipService) expand(ctx context.Context, userID primitive.ObjectID, ids func(*models.User) []primitive.ObjectID) ([]models.Property, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, httperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return s.properties.FindByIDs(ctx, ids(user))
}

func parsePropertyID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, httperr.BadRequest("Invalid property ID format")
	}
	return id, nil
}
