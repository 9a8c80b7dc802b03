package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/config"
)

// Collection names. Five independent collections; references between them
// are informal string identifiers, never enforced by the store.
const (
	CollectionUsers    = "users"
	CollectionProjects = "projects"
	CollectionComments = "comments"
	CollectionFeedback = "feedback"
	CollectionLogs     = "activity_logs"
)

// Client wraps the mongo connection and the per-operation timeout shared by
// all repositories.
type Client struct {
	client    *mongo.Client
	database  *mongo.Database
	opTimeout time.Duration
	logger    *zap.Logger
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("connected to mongo", zap.String("database", cfg.Database))

	return &Client{
		client:    client,
		database:  client.Database(cfg.Database),
		opTimeout: cfg.OpTimeout,
		logger:    logger.Named("mongo"),
	}, nil
}

// Collection returns a handle to a named collection.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// opContext derives a bounded context for a single store call.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.opTimeout)
}

// Ping checks store reachability, used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()
	return c.client.Ping(opCtx, readpref.Primary())
}

// Close disconnects from the store.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
