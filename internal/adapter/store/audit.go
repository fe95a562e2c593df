package store

import (
	"context"
	"fmt"

	"github.com/campuscoders/clubsite-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WriteAudit implements middleware.AuditWriter. Called from a goroutine after
// the response is sent, so it carries its own context.
func (s *MongoStore) WriteAudit(entry domain.AuditLog) error {
	_, err := s.db.Collection(colAudit).InsertOne(context.Background(), entry)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListAuditLogs returns recent audit entries, newest first.
func (s *MongoStore) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.db.Collection(colAudit).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer cur.Close(ctx)

	var logs []domain.AuditLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode audit logs: %w", err)
	}
	return logs, nil
}
