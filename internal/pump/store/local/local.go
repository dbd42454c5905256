package local

import (
	"context"

	"github.com/p1nant0m/ircpump/internal/pump/store"
	"github.com/p1nant0m/ircpump/pkg/db"
)

type datastore struct {
	db *db.LocalStorage
}

func (ds *datastore) Lines() store.LineStore {
	return newLines(ds)
}

func (ds *datastore) Close(context.Context) error {
	return nil
}

// NewLocalStorageFactory returns a factory that keeps every line in memory.
// Database and collection names in the options are ignored.
func NewLocalStorageFactory() (store.Factory, error) {
	dbIns, err := db.NewLocalStorage()
	if err != nil {
		return nil, err
	}

	return &datastore{dbIns}, nil
}
