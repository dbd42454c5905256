package options

import (
	"time"

	"github.com/p1nant0m/ircpump/config"
	"github.com/spf13/pflag"
)

// MongoDBOptions defines options for mongodb database.
type MongoDBOptions struct {
	Host                   string
	Port                   uint16
	Database               string
	Username               string
	Password               string
	WriteConcern           string
	ConnectTimeout         time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ServerSelectionTimeout time.Duration
}

// NewMongoDBOptions create a `zero` value instance.
func NewMongoDBOptions() *MongoDBOptions {
	return &MongoDBOptions{
		Host:                   "127.0.0.1",
		Port:                   27017,
		WriteConcern:           "majority",
		ConnectTimeout:         30 * time.Second,
		MaxPoolSize:            100,
		MinPoolSize:            0,
		ServerSelectionTimeout: 30 * time.Second,
	}
}

// ApplyConnection copies the resolved database location and credentials
// into the options, leaving the pool and timeout settings untouched.
func (o *MongoDBOptions) ApplyConnection(conf *config.ConnectionConfig) *MongoDBOptions {
	o.Host = conf.Host
	o.Port = conf.Port
	o.Database = conf.Name
	o.Username = ""
	o.Password = ""
	if conf.HasAuth() {
		o.Username = conf.User
		o.Password = conf.Pass
	}
	return o
}

// AddFlags adds flags related to mongodb tuning to the specified FlagSet.
// Location and credentials come from the configuration file.
func (o *MongoDBOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.WriteConcern, "mongo.write-concern", o.WriteConcern,
		"write concern used for inserts, either 'majority' or a number of nodes")
	fs.DurationVar(&o.ConnectTimeout, "mongo.connect-timeout", o.ConnectTimeout,
		"timeout for establishing a connection to mongodb")
	fs.DurationVar(&o.ServerSelectionTimeout, "mongo.server-selection-timeout", o.ServerSelectionTimeout,
		"how long to wait for a suitable mongodb server")
	fs.Uint64Var(&o.MaxPoolSize, "mongo.max-pool-size", o.MaxPoolSize,
		"maximum number of connections in the mongodb pool")
	fs.Uint64Var(&o.MinPoolSize, "mongo.min-pool-size", o.MinPoolSize,
		"minimum number of connections in the mongodb pool")
}
