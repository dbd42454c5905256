package store

import (
	"context"

	v1 "github.com/p1nant0m/ircpump/pkg/api/v1"
	metav1 "github.com/p1nant0m/ircpump/pkg/meta/v1"
)

// LineStore is an interface that defines the methods that will be
// used by the pipeline and the read API, and it operates in storage layer.
type LineStore interface {
	Insert(context.Context, *v1.Line, metav1.InsertLineOptions) error
	List(context.Context, metav1.ListLinesOptions) ([]*v1.Line, error)
}
