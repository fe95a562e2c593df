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

// CreateProject inserts a new project record.
func (s *MongoStore) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.db.Collection(colProjects).InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

// GetProjectByID returns one project.
func (s *MongoStore) GetProjectByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, port.ErrNotFound
	}

	var p domain.Project
	if err := s.db.Collection(colProjects).FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects, newest first.
func (s *MongoStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(colProjects).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var projects []domain.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectByID applies a partial patch and returns the updated project.
func (s *MongoStore) UpdateProjectByID(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
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
	if patch.RepoURL != nil {
		set["repo_url"] = *patch.RepoURL
	}
	if patch.LiveURL != nil {
		set["live_url"] = *patch.LiveURL
	}
	if patch.Tech != nil {
		set["tech"] = *patch.Tech
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Project
	err = s.db.Collection(colProjects).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &p, nil
}

// DeleteProjectByID removes a project. Absent projects are a no-op.
func (s *MongoStore) DeleteProjectByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.db.Collection(colProjects).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
