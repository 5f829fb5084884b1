package layouts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
)

// MongoOptions locates the layout collection.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	Field      string // defaults to "layout_id"
}

func (o MongoOptions) withDefaults() (MongoOptions, error) {
	if !strings.HasPrefix(o.URI, "mongodb://") && !strings.HasPrefix(o.URI, "mongodb+srv://") {
		return o, errors.New("mongo uri must start with mongodb:// or mongodb+srv://")
	}
	if o.Database == "" {
		return o, errors.New("mongo database is required")
	}
	if o.Collection == "" {
		o.Collection = "layouts"
	}
	if o.Field == "" {
		o.Field = "layout_id"
	}
	return o, nil
}

// MongoChecker treats a layout as existing when a document has Field = layoutID.
type MongoChecker struct {
	client     *mongo.Client
	collection *mongo.Collection
	field      string
}

var _ domain.LayoutChecker = (*MongoChecker)(nil)

// NewMongoChecker connects to MongoDB. The driver connects lazily; the first
// LayoutExists call surfaces connection errors.
func NewMongoChecker(opts MongoOptions) (*MongoChecker, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	client, err := mongo.Connect(options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	log.Debug(log.CatLayout, "mongo layout checker ready", "database", opts.Database, "collection", opts.Collection)
	return &MongoChecker{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
		field:      opts.Field,
	}, nil
}

// LayoutExists implements domain.LayoutChecker.
func (c *MongoChecker) LayoutExists(ctx context.Context, layoutID string) error {
	count, err := c.collection.CountDocuments(ctx,
		bson.D{{Key: c.field, Value: layoutID}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return fmt.Errorf("failed to count layouts: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("layout %s: %w", layoutID, domain.ErrLayoutNotFound)
	}
	return nil
}

// Close disconnects the client.
func (c *MongoChecker) Close() error {
	return c.client.Disconnect(context.Background())
}
