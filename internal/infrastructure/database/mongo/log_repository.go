package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

// LogRepository is the mongo implementation of repository.LogRepository.
type LogRepository struct {
	client *Client
}

// NewLogRepository creates the repository over the activity_logs collection.
func NewLogRepository(client *Client) repository.LogRepository {
	return &LogRepository{client: client}
}

func (r *LogRepository) collection() *mongo.Collection {
	return r.client.Collection(CollectionLogs)
}

// InsertMany bulk-stores a flushed batch of log entries.
func (r *LogRepository) InsertMany(ctx context.Context, entries []*entity.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		docs = append(docs, entry)
	}

	if _, err := r.collection().InsertMany(opCtx, docs); err != nil {
		return fmt.Errorf("failed to bulk insert log entries: %w", err)
	}
	return nil
}

// List returns log entries matching the filter, newest first.
func (r *LogRepository) List(ctx context.Context, filter repository.LogFilter) ([]*entity.LogEntry, int64, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.Route != "" {
		query["route"] = filter.Route
	}
	timeRange := bson.M{}
	if !filter.From.IsZero() {
		timeRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		timeRange["$lte"] = filter.To
	}
	if len(timeRange) > 0 {
		query["timestamp"] = timeRange
	}

	total, err := r.collection().CountDocuments(opCtx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count log entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection().Find(opCtx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer cursor.Close(opCtx)

	var entries []*entity.LogEntry
	if err := cursor.All(opCtx, &entries); err != nil {
		return nil, 0, fmt.Errorf("failed to decode log entries: %w", err)
	}
	return entries, total, nil
}
