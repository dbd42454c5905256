package store

import "context"

// Factory hands out the stores backed by a single database connection.
type Factory interface {
	Lines() LineStore
	Close(context.Context) error
}
