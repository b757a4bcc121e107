package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/models"
	"github.com/staynest/staynest-backend/internal/store"
)

// The contract tests below run against the in-memory store but state the
// behavior every UserStore/PropertyStore implementation has to reproduce.
// The Mongo store satisfies them with a guarded $push (AddBooking), $addToSet
// and $pull (favourites), and a sort spec built from ListOptions.

func seedUser(t *testing.T, s store.UserStore, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Ada", Email: email, Password: "digest"}
	require.NoError(t, s.Insert(context.Background(), u))
	return u
}

func TestUserStoreContract_AddBooking(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	user := seedUser(t, users, "ada@staynest.example")
	propertyID := primitive.NewObjectID()

	// First booking of a property inserts it and reports added=true.
	added, err := users.AddBooking(ctx, user.ID, propertyID)
	require.NoError(t, err)
	assert.True(t, added)

	// Booking the same property again must not report added=true, no matter
	// what else the write touches on the document.
	added, err = users.AddBooking(ctx, user.ID, propertyID)
	require.NoError(t, err)
	assert.False(t, added)

	// The duplicate attempt must not grow the booking set.
	got, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{propertyID}, got.Bookings)

	// A different property on the same user is a fresh booking.
	added, err = users.AddBooking(ctx, user.ID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.True(t, added)

	// An unknown user is ErrNotFound, never a silent false.
	_, err = users.AddBooking(ctx, primitive.NewObjectID(), propertyID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserStoreContract_FavouritesAreASet(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemoryUserStore()
	user := seedUser(t, users, "ada@staynest.example")
	propertyID := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		got, err := users.AddFavourite(ctx, user.ID, propertyID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{propertyID}, got.Favourites)
	}

	// Removal is idempotent too.
	for i := 0; i < 2; i++ {
		got, err := users.RemoveFavourite(ctx, user.ID, propertyID)
		require.NoError(t, err)
		assert.Empty(t, got.Favourites)
	}
}

func TestPropertyStoreContract_ListSortFields(t *testing.T) {
	ctx := context.Background()
	properties := store.NewMemoryPropertyStore()
	for _, p := range []models.Property{
		{Title: "Cabin", Location: "Manali", Rating: 3},
		{Title: "Villa", Location: "Goa", Rating: 5},
		{Title: "Loft", Location: "Jaipur", Rating: 4},
	} {
		prop := p
		require.NoError(t, properties.Insert(ctx, &prop))
	}

	cases := []struct {
		sortBy string
		desc   bool
		want   []string
	}{
		{"title", false, []string{"Cabin", "Loft", "Villa"}},
		{"rating", true, []string{"Villa", "Loft", "Cabin"}},
		{"location", false, []string{"Villa", "Loft", "Cabin"}}, // Goa, Jaipur, Manali
	}
	for _, c := range cases {
		got, total, err := properties.List(ctx, store.ListOptions{SortBy: c.sortBy, Desc: c.desc})
		require.NoError(t, err, c.sortBy)
		assert.EqualValues(t, 3, total)
		titles := make([]string, len(got))
		for i, p := range got {
			titles[i] = p.Title
		}
		assert.Equal(t, c.want, titles, c.sortBy)
	}
}
