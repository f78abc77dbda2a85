// Package mongo loads radar entries from a MongoDB collection.
//
// Each document in the collection is one entry, decoded through the bson
// tags on radar.Entry. Entries come back in insertion order (ascending
// _id), which keeps quadrant order stable between loads.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/source"
)

const connectTimeout = 10 * time.Second

// Source reads entries from one collection.
type Source struct {
	client *mongo.Client
	coll   *mongo.Collection
	filter bson.M
}

// Option configures a Source.
type Option func(*Source)

// WithFilter restricts the loaded documents, e.g. bson.M{"team": "platform"}.
func WithFilter(f bson.M) Option {
	return func(s *Source) { s.filter = f }
}

// Connect dials uri and verifies the connection.
func Connect(ctx context.Context, uri, database, collection string, opts ...Option) (*Source, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return New(client, database, collection, opts...), nil
}

// New wraps an existing client.
func New(client *mongo.Client, database, collection string, opts ...Option) *Source {
	s := &Source{
		client: client,
		coll:   client.Database(database).Collection(collection),
		filter: bson.M{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind implements source.Source.
func (s *Source) Kind() string { return "mongo" }

// Load implements source.Source.
func (s *Source) Load(ctx context.Context) (*source.Document, error) {
	cur, err := s.coll.Find(ctx, s.filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query %s", s.coll.Name())
	}
	defer cur.Close(ctx)

	var entries []radar.Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", s.coll.Name())
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Name != "" {
			kept = append(kept, e)
		}
	}
	return &source.Document{Entries: kept}, nil
}

// Insert appends entries to the collection, e.g. when seeding it from a
// spreadsheet.
func (s *Source) Insert(ctx context.Context, entries []radar.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]any, len(entries))
	for i, e := range entries {
		docs[i] = e
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "insert into %s", s.coll.Name())
	}
	return nil
}

// Close disconnects the client.
func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ source.Source = (*Source)(nil)
