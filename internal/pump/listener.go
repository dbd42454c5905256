package pump

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// listener owns the irc session. It is the only goroutine that reads from
// or writes to the session.
type listener struct {
	session Session
	out     chan<- interface{}
	errCh   chan<- error
	now     func() time.Time
	debug   bool
	metrics *Metrics

	// identified flips once Identify has reported success and never goes back.
	identified bool
}

func (l *listener) run() {
	for {
		event, err := l.session.Next()
		if err != nil {
			l.errCh <- &SessionError{Err: err}
			return
		}
		received := l.now().Unix()

		l.out <- LogRecord{Time: received, Text: event.String()}
		l.metrics.lineReceived()

		if !l.identified {
			l.identify()
		}

		if l.debug {
			logrus.WithFields(logrus.Fields{
				"time":  received,
				"type":  fmt.Sprintf("%T", event),
				"event": event.String(),
			}).Info("irc event received")
		}
	}
}

// identify is attempted on every event until it succeeds once. A failed
// attempt only shows up at debug level; the next event simply tries again.
func (l *listener) identify() {
	l.metrics.identifyAttempted()
	if err := l.session.Identify(); err != nil {
		logrus.WithField("err", err).Debug("identification failed, retrying on next event")
		return
	}
	l.identified = true
}
