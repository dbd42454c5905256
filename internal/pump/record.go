package pump

import (
	"fmt"

	v1 "github.com/p1nant0m/ircpump/pkg/api/v1"
)

// Session is the live IRC connection driven by the listener.
// Next blocks until the next inbound event or a terminal error.
type Session interface {
	Next() (fmt.Stringer, error)
	Identify() error
}

// LogRecord is one received event, stamped when it was read off the wire.
type LogRecord struct {
	Time int64
	Text string
}

func (r LogRecord) document() *v1.Line {
	return &v1.Line{Time: r.Time, Line: r.Text}
}
