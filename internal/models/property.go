package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Price carries the listed price and the discounted offer price.
// A property is only accepted with both set.
type Price struct {
	Org float64 `bson:"org" json:"org"`
	Mrp float64 `bson:"mrp" json:"mrp"`
}

// Availability is the optional window a property can be booked for.
type Availability struct {
	From time.Time `bson:"from" json:"from"`
	To   time.Time `bson:"to" json:"to"`
}

type Property struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Title        string        `bson:"title" json:"title"`
	Desc         string        `bson:"desc" json:"desc"`
	Img          string        `bson:"img,omitempty" json:"img,omitempty"`
	Rating       float64       `bson:"rating,omitempty" json:"rating,omitempty"`
	Price        Price         `bson:"price" json:"price"`
	Location     string        `bson:"location,omitempty" json:"location,omitempty"`
	Availability *Availability `bson:"availability,omitempty" json:"availability,omitempty"`
}
