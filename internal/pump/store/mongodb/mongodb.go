package mongodb

import (
	"context"
	"fmt"
	"sync"

	"github.com/p1nant0m/ircpump/internal/pump/store"
	"github.com/p1nant0m/ircpump/pkg/db"
	"github.com/p1nant0m/ircpump/pkg/options"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	mongodbFactory store.Factory
	once           sync.Once
)

type datastore struct {
	client *mongo.Client
}

func (ds *datastore) Lines() store.LineStore {
	return newLines(ds)
}

func (ds *datastore) Close(ctx context.Context) error {
	return ds.client.Disconnect(ctx)
}

// GetMongoDBFactoryOr returns the process wide mongodb factory, connecting
// on the first call. Later calls ignore opts.
func GetMongoDBFactoryOr(opts *options.MongoDBOptions) (store.Factory, error) {
	if opts == nil && mongodbFactory == nil {
		return nil, fmt.Errorf("failed to get mongodb store factory")
	}

	var err error
	once.Do(func() {
		var dbClient *mongo.Client
		dbClient, err = db.NewMongoDBClient(&db.Options{
			Host:                   opts.Host,
			Port:                   opts.Port,
			Database:               opts.Database,
			Username:               opts.Username,
			Password:               opts.Password,
			WriteConcern:           opts.WriteConcern,
			ConnectTimeout:         opts.ConnectTimeout,
			MaxPoolSize:            opts.MaxPoolSize,
			MinPoolSize:            opts.MinPoolSize,
			ServerSelectionTimeout: opts.ServerSelectionTimeout,
		})
		if err == nil {
			mongodbFactory = &datastore{dbClient}
		}
	})

	if mongodbFactory == nil || err != nil {
		return nil, fmt.Errorf("failed to get mongodb store factory: %w", err)
	}

	return mongodbFactory, nil
}
