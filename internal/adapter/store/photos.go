package store

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePhoto inserts a new gallery entry.
func (s *MongoStore) CreatePhoto(ctx context.Context, p *domain.Photo) (*domain.Photo, error) {
	p.CreatedAt = time.Now()

	res, err := s.db.Collection(colPhotos).InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

// ListPhotos returns the gallery, newest first.
func (s *MongoStore) ListPhotos(ctx context.Context) ([]domain.Photo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(colPhotos).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer cur.Close(ctx)

	var photos []domain.Photo
	if err := cur.All(ctx, &photos); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	return photos, nil
}

// DeletePhotoByID removes a gallery entry. Absent entries are a no-op.
func (s *MongoStore) DeletePhotoByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.db.Collection(colPhotos).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
