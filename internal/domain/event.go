package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a club event shown on the site.
type Event struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Title       string             `json:"title"       bson:"title"`
	Description string             `json:"description" bson:"description"`
	Venue       string             `json:"venue"       bson:"venue,omitempty"`
	Date        time.Time          `json:"date"        bson:"date"`
	ImageURL    string             `json:"imageUrl"    bson:"image_url,omitempty"`
	CreatedBy   primitive.ObjectID `json:"createdBy"   bson:"created_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"  bson:"updated_at"`
}

// EventPatch is a partial update applied by the event store.
type EventPatch struct {
	Title       *string    `bson:"title,omitempty"`
	Description *string    `bson:"description,omitempty"`
	Venue       *string    `bson:"venue,omitempty"`
	Date        *time.Time `bson:"date,omitempty"`
	ImageURL    *string    `bson:"image_url,omitempty"`
}
