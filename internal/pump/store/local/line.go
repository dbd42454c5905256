package local

import (
	"context"

	v1 "github.com/p1nant0m/ircpump/pkg/api/v1"
	metav1 "github.com/p1nant0m/ircpump/pkg/meta/v1"
)

type lines struct {
	ds *datastore
}

func newLines(ds *datastore) *lines {
	return &lines{ds}
}

func (l *lines) Insert(ctx context.Context, line *v1.Line, opts metav1.InsertLineOptions) error {
	return l.ds.db.Append(line)
}

func (l *lines) List(ctx context.Context, opts metav1.ListLinesOptions) ([]*v1.Line, error) {
	return l.ds.db.List(opts.Since, opts.Limit)
}
