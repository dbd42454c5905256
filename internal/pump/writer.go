package pump

import (
	"context"

	"github.com/p1nant0m/ircpump/internal/pump/store"
	metav1 "github.com/p1nant0m/ircpump/pkg/meta/v1"
	"github.com/sirupsen/logrus"
)

// writer owns the target collection and drains the queue into it in order.
type writer struct {
	in      <-chan interface{}
	lines   store.LineStore
	opts    metav1.InsertLineOptions
	metrics *Metrics
}

// run never returns while the queue is open. Insert failures drop the
// record and the loop carries on with the next one.
func (w *writer) run() {
	for item := range w.in {
		record := item.(LogRecord)

		if err := w.lines.Insert(context.Background(), record.document(), w.opts); err != nil {
			w.metrics.persistFailed()
			logrus.WithFields(logrus.Fields{
				"time":       record.Time,
				"database":   w.opts.Database,
				"collection": w.opts.Collection,
			}).Warning(&PersistenceError{Record: record, Err: err})
			continue
		}

		w.metrics.linePersisted()
	}
}
