package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/models"
	"github.com/staynest/staynest-backend/internal/services"
	"github.com/staynest/staynest-backend/internal/store"
)

type ownershipFixture struct {
	svc        *services.OwnershipService
	users      *store.MemoryUserStore
	properties *store.MemoryPropertyStore
	user       *models.User
	property   *models.Property
}

func newOwnershipFixture(t *testing.T) *ownershipFixture {
	t.Helper()
	ctx := context.Background()

	users := store.NewMemoryUserStore()
	properties := store.NewMemoryPropertyStore()

	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "digest"}
	require.NoError(t, users.Insert(ctx, user))

	property := &models.Property{
		Title: "Loft",
		Desc:  "cozy",
		Price: models.Price{Org: 100, Mrp: 80},
	}
	require.NoError(t, properties.Insert(ctx, property))

	return &ownershipFixture{
		svc:        services.NewOwnershipService(users, properties),
		users:      users,
		properties: properties,
		user:       user,
		property:   property,
	}
}

func TestAddFavourite_Idempotent(t *testing.T) {
	f := newOwnershipFixture(t)
	ctx := context.Background()

	user, err := f.svc.AddFavourite(ctx, f.user.ID, f.property.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, user.Favourites, 1)

	// Adding the same property again leaves the set at size 1
	user, err = f.svc.AddFavourite(ctx, f.user.ID, f.property.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, user.Favourites, 1)
	assert.Equal(t, f.property.ID, user.Favourites[0])
}

func TestAddFavourite_SanitizesUser(t *testing.T) {
	f := newOwnershipFixture(t)

	user, err := f.svc.AddFavourite(context.Background(), f.user.ID, f.property.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Empty(t, user.RefreshToken)
}

func TestAddFavourite_UnknownProperty(t *testing.T) {
	f := newOwnershipFixture(t)

	_, err := f.svc.AddFavourite(context.Background(), f.user.ID, primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestAddFavourite_MalformedPropertyID(t *testing.T) {
	f := newOwnershipFixture(t)

	_, err := f.svc.AddFavourite(context.Background(), f.user.ID, "not-an-id")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestRemoveFavourite(t *testing.T) {
	f := newOwnershipFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddFavourite(ctx, f.user.ID, f.property.ID.Hex())
	require.NoError(t, err)

	user, err := f.svc.RemoveFavourite(ctx, f.user.ID, f.property.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, user.Favourites)
}

func TestRemoveFavourite_AbsentIDIsNoError(t *testing.T) {
	f := newOwnershipFixture(t)

	user, err := f.svc.RemoveFavourite(context.Background(), f.user.ID, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, user.Favourites)
}

func TestListFavourites_ExpandsProperties(t *testing.T) {
	f := newOwnershipFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddFavourite(ctx, f.user.ID, f.property.ID.Hex())
	require.NoError(t, err)

	properties, err := f.svc.ListFavourites(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "Loft", properties[0].Title)
}

func TestListFavourites_UnknownUser(t *testing.T) {
	f := newOwnershipFixture(t)

	_, err := f.svc.ListFavourites(context.Background(), primitive.NewObjectID())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestBookProperty(t *testing.T) {
	f := newOwnershipFixture(t)
	ctx := context.Background()

	// First booking succeeds
	require.NoError(t, f.svc.BookProperty(ctx, f.user.ID, f.property.ID.Hex()))

	// A genuine duplicate is a conflict
	err := f.svc.BookProperty(ctx, f.user.ID, f.property.ID.Hex())
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	properties, err := f.svc.ListBookings(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, properties, 1)
}

func TestBookProperty_UnknownProperty(t *testing.T) {
	f := newOwnershipFixture(t)

	err := f.svc.BookProperty(context.Background(), f.user.ID, primitive.NewObjectID().Hex())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestBookProperty_UnknownUser(t *testing.T) {
	f := newOwnershipFixture(t)

	err := f.svc.BookProperty(context.Background(), primitive.NewObjectID(), f.property.ID.Hex())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
