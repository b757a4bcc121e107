package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password digest in JSON

	// Ownership sets: ids of Property documents. Uniqueness is enforced by the
	// store ($addToSet), not by the schema.
	Favourites []primitive.ObjectID `bson:"favourites" json:"favourites"`
	Bookings   []primitive.ObjectID `bson:"bookings" json:"bookings"`

	// Latest issued refresh token. Overwritten on every sign-in.
	RefreshToken string `bson:"refresh_token,omitempty" json:"-"`
}
