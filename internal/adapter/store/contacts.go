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

// CreateContactMessage persists a contact form submission.
func (s *MongoStore) CreateContactMessage(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	m.CreatedAt = time.Now()

	res, err := s.db.Collection(colContacts).InsertOne(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}

	created := *m
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

// ListContactMessages returns submissions, newest first.
func (s *MongoStore) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(colContacts).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []domain.ContactMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode contact messages: %w", err)
	}
	return messages, nil
}
