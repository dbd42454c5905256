package v1

import (
	"context"

	"github.com/p1nant0m/ircpump/internal/pump/store"
	v1 "github.com/p1nant0m/ircpump/pkg/api/v1"
	metav1 "github.com/p1nant0m/ircpump/pkg/meta/v1"
)

type LineSrv interface {
	List(ctx context.Context, since, limit int64) ([]*v1.Line, error)
}

type lineService struct {
	store    store.Factory
	database string
}

func newLines(srv *service) *lineService {
	return &lineService{store: srv.store, database: srv.database}
}

// List clamps limit into (0, MaxListLimit], using the default when unset.
func (l *lineService) List(ctx context.Context, since, limit int64) ([]*v1.Line, error) {
	if limit <= 0 {
		limit = metav1.DefaultListLimit
	}
	if limit > metav1.MaxListLimit {
		limit = metav1.MaxListLimit
	}

	lines, err := l.store.Lines().List(ctx, metav1.ListLinesOptions{
		Database:   l.database,
		Collection: metav1.RawCollection,
		Since:      since,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
