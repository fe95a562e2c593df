package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateEvent inserts a new event record.
func (s *MongoStore) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	res, err := s.db.Collection(colEvents).InsertOne(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

// GetEventByID returns one event.
func (s *MongoStore) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, port.ErrNotFound
	}

	var e domain.Event
	if err := s.db.Collection(colEvents).FindOne(ctx, bson.M{"_id": oid}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// ListEvents returns all events, soonest date first.
func (s *MongoStore) ListEvents(ctx context.Context) ([]domain.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.db.Collection(colEvents).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// UpdateEventByID applies a partial patch and returns the updated event.
func (s *MongoStore) UpdateEventByID(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, port.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Venue != nil {
		set["venue"] = *patch.Venue
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e domain.Event
	err = s.db.Collection(colEvents).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &e, nil
}

// DeleteEventByID removes an event. Absent events are a no-op.
func (s *MongoStore) DeleteEventByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.db.Collection(colEvents).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
