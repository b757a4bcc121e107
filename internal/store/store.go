// Package store is the persistence layer over MongoDB. Services consume the
// UserStore/PropertyStore interfaces; the Mongo implementations live here and
// an in-memory implementation backs the unit tests.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/models"
)

// ErrNotFound is returned when a looked-up document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateEmail is returned when an insert violates the unique email
// index. The index is what makes the uniqueness check hold under concurrent
// registrations.
var ErrDuplicateEmail = errors.New("email already in use")

// ListOptions is the pagination/sort contract for listing properties.
type ListOptions struct {
	Limit  int64
	SortBy string
	Desc   bool
}

// SearchFilter is the location/date filter contract. Nil/empty fields impose
// no constraint.
type SearchFilter struct {
	Location string
	CheckIn  *time.Time
	CheckOut *time.Time
}

// PropertyPatch carries the updatable subset of a property. Nil fields are
// left untouched.
type PropertyPatch struct {
	Img    *string
	Title  *string
	Desc   *string
	Rating *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p PropertyPatch) IsEmpty() bool {
	return p.Img == nil && p.Title == nil && p.Desc == nil && p.Rating == nil
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, refreshToken string) error

	// AddFavourite/RemoveFavourite mutate the favourites set atomically
	// ($addToSet/$pull) and return the updated user.
	AddFavourite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.User, error)
	RemoveFavourite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.User, error)

	// AddBooking appends propertyID to the bookings set. added is false when
	// the property was already booked.
	AddBooking(ctx context.Context, userID, propertyID primitive.ObjectID) (added bool, err error)
}

type PropertyStore interface {
	Insert(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error)
	List(ctx context.Context, opts ListOptions) ([]models.Property, int64, error)
	Search(ctx context.Context, filter SearchFilter) ([]models.Property, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch PropertyPatch) (*models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
