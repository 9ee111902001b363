// Package mongo implements a MongoDB storage.Repository. Each row becomes one
// document with fields in column order. Replace loads a staging collection
// and renames it over the destination, so readers never see a partial load.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"csvetl/internal/storage"
	"csvetl/pkg/records"
)

// DefaultDatabase is used when the URI names no database.
const DefaultDatabase = "etl"

// Repository is a MongoDB-backed implementation of storage.Repository.
type Repository struct {
	client *mongo.Client
	db     string
	cfg    storage.Config
}

// Open connects to the URI in cfg.DSN. The database comes from the URI path.
func Open(ctx context.Context, cfg storage.Config) (*Repository, error) {
	cs, err := connstring.ParseAndValidate(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mongo uri: %w", err)
	}
	db := cs.Database
	if db == "" {
		db = DefaultDatabase
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Repository{client: client, db: db, cfg: cfg}, nil
}

// Replace implements storage.Repository.
func (r *Repository) Replace(ctx context.Context, t *records.Table) (int64, error) {
	if r.cfg.Table == "" {
		return 0, fmt.Errorf("mongo: collection name must not be empty")
	}
	staging := r.cfg.Table + "__staging"
	db := r.client.Database(r.db)

	if err := db.Collection(staging).Drop(ctx); err != nil {
		return 0, fmt.Errorf("mongo: drop staging: %w", err)
	}

	docs := Documents(t)
	var n int64
	if len(docs) == 0 {
		if err := db.CreateCollection(ctx, staging); err != nil {
			return 0, fmt.Errorf("mongo: create staging: %w", err)
		}
	} else {
		res, err := db.Collection(staging).InsertMany(ctx, docs)
		if err != nil {
			_ = db.Collection(staging).Drop(ctx)
			return 0, fmt.Errorf("mongo: insert: %w", err)
		}
		n = int64(len(res.InsertedIDs))
	}

	rename := bson.D{
		{Key: "renameCollection", Value: r.db + "." + staging},
		{Key: "to", Value: r.db + "." + r.cfg.Table},
		{Key: "dropTarget", Value: true},
	}
	if err := r.client.Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		return 0, fmt.Errorf("mongo: rename staging: %w", err)
	}
	return n, nil
}

// Close implements storage.Repository.
func (r *Repository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Documents converts t into ordered BSON documents. Nulls are stored as BSON
// null and date columns as BSON dates.
func Documents(t *records.Table) []any {
	cols, rows := storage.Values(t)
	storage.DatesAsTime(t, rows)
	docs := make([]any, len(rows))
	for i, row := range rows {
		d := make(bson.D, len(cols))
		for j, c := range cols {
			d[j] = bson.E{Key: c, Value: row[j]}
		}
		docs[i] = d
	}
	return docs
}

func init() {
	storage.Register("mongo", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return Open(ctx, cfg)
	})
}
