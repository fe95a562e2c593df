package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo is a gallery entry. The image itself lives on the CDN; we only keep
// the URL.
type Photo struct {
	ID         primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Title      string             `json:"title"      bson:"title"`
	ImageURL   string             `json:"imageUrl"   bson:"image_url"`
	Category   string             `json:"category"   bson:"category,omitempty"`
	UploadedBy primitive.ObjectID `json:"uploadedBy" bson:"uploaded_by,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// Project is a club project listed on the site.
type Project struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Title       string             `json:"title"       bson:"title"`
	Description string             `json:"description" bson:"description"`
	RepoURL     string             `json:"repoUrl"     bson:"repo_url,omitempty"`
	LiveURL     string             `json:"liveUrl"     bson:"live_url,omitempty"`
	Tech        []string           `json:"tech"        bson:"tech,omitempty"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"  bson:"updated_at"`
}

// ProjectPatch is a partial update applied by the project store.
type ProjectPatch struct {
	Title       *string   `bson:"title,omitempty"`
	Description *string   `bson:"description,omitempty"`
	RepoURL     *string   `bson:"repo_url,omitempty"`
	LiveURL     *string   `bson:"live_url,omitempty"`
	Tech        *[]string `bson:"tech,omitempty"`
}
