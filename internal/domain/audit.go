package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog records every API request for later inspection.
type AuditLog struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	UserID    string             `json:"user_id"    bson:"user_id"`
	Action    string             `json:"action"     bson:"action"`
	Path      string             `json:"path"       bson:"path"`
	Method    string             `json:"method"     bson:"method"`
	Status    int                `json:"status"     bson:"status"`
	IP        string             `json:"ip"         bson:"ip"`
	UserAgent string             `json:"user_agent" bson:"user_agent"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
