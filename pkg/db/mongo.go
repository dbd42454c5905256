package db

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type Options struct {
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

// NewMongoDBClient connects to a single mongodb host and pings the primary.
// Credentials are only presented when both username and password are set,
// and they authenticate against the target database.
func NewMongoDBClient(opts *Options) (*mongo.Client, error) {
	clientOpts := options.Client().
		SetHosts([]string{net.JoinHostPort(opts.Host, strconv.Itoa(int(opts.Port)))}).
		SetMinPoolSize(opts.MinPoolSize).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetConnectTimeout(opts.ConnectTimeout).
		SetServerSelectionTimeout(opts.ServerSelectionTimeout)

	wc, err := parseWriteConcern(opts.WriteConcern)
	if err != nil {
		return nil, err
	}
	if wc != nil {
		clientOpts.SetWriteConcern(wc)
	}

	if opts.Username != "" && opts.Password != "" {
		clientOpts.SetAuth(options.Credential{
			Username:   opts.Username,
			Password:   opts.Password,
			AuthSource: opts.Database,
		})
	}

	client, err := mongo.Connect(context.TODO(), clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
		client.Disconnect(context.TODO())
		return nil, err
	}

	return client, nil
}

func parseWriteConcern(w string) (*writeconcern.WriteConcern, error) {
	switch w {
	case "":
		return nil, nil
	case "majority":
		return writeconcern.New(writeconcern.WMajority()), nil
	}

	nodes, err := strconv.Atoi(w)
	if err != nil || nodes < 0 {
		return nil, fmt.Errorf("invalid write concern %q", w)
	}
	return writeconcern.New(writeconcern.W(nodes)), nil
}
