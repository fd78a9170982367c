package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient establishes a connection using the official MongoDB driver
// and verifies it with a ping before handing the client out.
func NewMongoClient(ctx context.Context, opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(uint64(opts.MaxPoolSize))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("verify store connectivity: %w", err)
	}

	return &mongoClient{
		client:   client,
		database: client.Database(opts.Database),
	}, nil
}

type mongoClient struct {
	client   *mongo.Client
	database *mongo.Database
}

func (c *mongoClient) FindAll(ctx context.Context, collection string) ([]Record, error) {
	cursor, err := c.database.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("scan collection %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var records []Record
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode document in %s: %w", collection, err)
		}
		records = append(records, Record(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection %s: %w", collection, err)
	}
	return records, nil
}

func (c *mongoClient) InsertMany(ctx context.Context, collection string, docs []Record) error {
	if len(docs) == 0 {
		return nil
	}
	payload := make([]any, 0, len(docs))
	for _, doc := range docs {
		payload = append(payload, bson.M(doc))
	}
	if _, err := c.database.Collection(collection).InsertMany(ctx, payload); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

func (c *mongoClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *mongoClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
