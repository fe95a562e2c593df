package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"github.com/campuscoders/clubsite-api/internal/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// excludePassword keeps the password hash from ever leaving this package
// except through FindByEmail, which the auth service needs for credential
// checks.
var excludePassword = bson.D{{Key: "password", Value: 0}}

// FindByEmail returns the user with the given email, password hash included.
// Emails are stored lowercase, so the lookup lowercases first.
func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.Collection(colUsers).FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns the user with the given identity, password hash stripped.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, port.ErrUserNotFound
	}

	var user domain.User
	err = s.db.Collection(colUsers).
		FindOne(ctx, bson.M{"_id": oid}, options.FindOne().SetProjection(excludePassword)).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. The unique email index turns a concurrent
// duplicate registration into ErrDuplicateEmail rather than an overwrite.
func (s *MongoStore) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	u.Email = strings.ToLower(u.Email)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	res, err := s.db.Collection(colUsers).InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, port.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *u
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

// UpdateByID applies a partial patch and returns the updated user, password
// hash stripped.
func (s *MongoStore) UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, port.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.CollegeName != nil {
		set["college_name"] = *patch.CollegeName
	}
	if patch.AvatarURL != nil {
		set["avatar_url"] = *patch.AvatarURL
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(excludePassword)

	var user domain.User
	err = s.db.Collection(colUsers).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

// DeleteByID removes a user permanently. Deleting an already-absent user is
// a no-op.
func (s *MongoStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.db.Collection(colUsers).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// List returns all users, password hashes stripped, newest first.
func (s *MongoStore) List(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().
		SetProjection(excludePassword).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.db.Collection(colUsers).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}
