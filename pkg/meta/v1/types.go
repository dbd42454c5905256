package v1

import (
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// RawCollection is the collection every captured line is written to.
	RawCollection = "raw"

	DefaultListLimit int64 = 100
	MaxListLimit     int64 = 1000
)

type MongoDBGenericOptions struct {
	DBoptions     []*options.DatabaseOptions
	CollecOptions []*options.CollectionOptions
}

type InsertLineOptions struct {
	*MongoDBGenericOptions
	Database      string
	Collection    string
	InsertOptions []*options.InsertOneOptions
}

// ListLinesOptions selects the newest Limit lines whose time is at least Since.
type ListLinesOptions struct {
	*MongoDBGenericOptions
	Database    string
	Collection  string
	Since       int64
	Limit       int64
	FindOptions []*options.FindOptions
}

// Generic returns the embedded generic options, never nil.
func (o *MongoDBGenericOptions) Generic() *MongoDBGenericOptions {
	if o == nil {
		return &MongoDBGenericOptions{}
	}
	return o
}
