// Copyright 2022 p1nant0m <wgblike@gmail.com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

/*
Package pump moves every line received on an irc session into a database
collection.

Two goroutines do the work. The listener reads the session, stamps each event
with its receive time and pushes it onto an unbounded FIFO queue. The writer
pops records off the queue and inserts them one by one. The queue never makes
the listener wait, so a slow database costs memory instead of stalling the
session; the queue_depth metric shows how much.

The caller of Run supervises: it blocks until the session fails and gets that
error back. Insert failures are logged by the writer and never reach Run.
*/
package pump

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/eapache/channels"
	"github.com/p1nant0m/ircpump/internal/pump/store"
	metav1 "github.com/p1nant0m/ircpump/pkg/meta/v1"
)

// Option defines optional parameters for initializing the Pipeline,
// and it will return an error when something goes wrong in initializing.
type Option func(*Pipeline) error

type Pipeline struct {
	session    Session
	lines      store.LineStore
	insertOpts metav1.InsertLineOptions
	debug      bool
	now        func() time.Time
	metrics    *Metrics

	queue   *channels.InfiniteChannel
	running int32
}

// WithDatabase selects the database the raw collection lives in.
func WithDatabase(name string) Option {
	return func(p *Pipeline) error {
		if name == "" {
			return fmt.Errorf("database name must not be empty")
		}
		p.insertOpts.Database = name
		return nil
	}
}

// WithDebug makes the listener print every raw event.
func WithDebug(debug bool) Option {
	return func(p *Pipeline) error {
		p.debug = debug
		return nil
	}
}

// WithClock replaces time.Now as the source of receive timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) error {
		p.now = now
		return nil
	}
}

// WithMetrics instruments the pipeline and registers the queue depth gauge.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) error {
		p.metrics = m
		return nil
	}
}

// NewPipeline wires a connected session to a line store. Nothing runs until Run.
func NewPipeline(session Session, lines store.LineStore, opts ...Option) (*Pipeline, error) {
	if session == nil || lines == nil {
		return nil, fmt.Errorf("pipeline needs both a session and a line store")
	}

	p := &Pipeline{
		session:    session,
		lines:      lines,
		insertOpts: metav1.InsertLineOptions{Collection: metav1.RawCollection},
		now:        time.Now,
		queue:      channels.NewInfiniteChannel(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.metrics.observeQueue(func() float64 { return float64(p.queue.Len()) })

	return p, nil
}

// QueueLen reports how many records wait for the writer.
func (p *Pipeline) QueueLen() int {
	return p.queue.Len()
}

// Run starts the listener and the writer, then blocks until the listener
// reports the session error, which it returns. The writer is left running;
// the caller is expected to end the process. Run may only be called once.
func (p *Pipeline) Run() error {
	if !atomic.CompareAndSwapInt32(&p.running, 0, 1) {
		return fmt.Errorf("pipeline is already running")
	}

	errCh := make(chan error, 1)

	w := &writer{
		in:      p.queue.Out(),
		lines:   p.lines,
		opts:    p.insertOpts,
		metrics: p.metrics,
	}
	l := &listener{
		session: p.session,
		out:     p.queue.In(),
		errCh:   errCh,
		now:     p.now,
		debug:   p.debug,
		metrics: p.metrics,
	}

	go w.run()
	go l.run()

	return <-errCh
}
