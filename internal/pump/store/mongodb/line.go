package mongodb

import (
	"context"

	v1 "github.com/p1nant0m/ircpump/pkg/api/v1"
	metav1 "github.com/p1nant0m/ircpump/pkg/meta/v1"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/mgo.v2/bson"
)

var sinceFilter = func(since int64) bson.M {
	return bson.M{"time": bson.M{"$gte": since}}
}

type lines struct {
	client *mongo.Client
}

func newLines(ds *datastore) *lines {
	return &lines{ds.client}
}

func (l *lines) Insert(ctx context.Context, line *v1.Line, opts metav1.InsertLineOptions) error {
	generic := opts.Generic()
	coll := l.client.Database(opts.Database, generic.DBoptions...).Collection(opts.Collection, generic.CollecOptions...)

	_, err := coll.InsertOne(ctx, line, opts.InsertOptions...)
	if err != nil {
		return err
	}

	return nil
}

// List fetches the newest lines first so the limit keeps the most recent
// ones, then reverses them into chronological order.
func (l *lines) List(ctx context.Context, opts metav1.ListLinesOptions) ([]*v1.Line, error) {
	generic := opts.Generic()
	coll := l.client.Database(opts.Database, generic.DBoptions...).Collection(opts.Collection, generic.CollecOptions...)

	findOpts := options.Find().SetSort(bson.M{"_id": -1})
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := coll.Find(ctx, sinceFilter(opts.Since), append([]*options.FindOptions{findOpts}, opts.FindOptions...)...)
	if err != nil {
		return nil, err
	}

	results := []*v1.Line{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}

	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}

	return results, nil
}
