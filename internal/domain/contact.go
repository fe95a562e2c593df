package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is a message submitted through the contact form. It is
// persisted and also relayed to the club inbox by email.
type ContactMessage struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Name      string             `json:"name"       bson:"name"`
	Email     string             `json:"email"      bson:"email"`
	Message   string             `json:"message"    bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
