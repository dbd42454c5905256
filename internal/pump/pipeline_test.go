package pump

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"
	"testing"
	"time"

	v1 "github.com/p1nant0m/ircpump/pkg/api/v1"
	metav1 "github.com/p1nant0m/ircpump/pkg/meta/v1"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type textEvent string

func (e textEvent) String() string { return string(e) }

// fakeSession replays events and then fails with err.
type fakeSession struct {
	mu            sync.Mutex
	events        []string
	err           error
	identifyErrs  []error
	nextCalls     int
	identifyCalls int
	identifyAfter []int
}

func (s *fakeSession) Next() (fmt.Stringer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCalls++
	if s.nextCalls <= len(s.events) {
		return textEvent(s.events[s.nextCalls-1]), nil
	}
	return nil, s.err
}

func (s *fakeSession) Identify() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identifyCalls++
	s.identifyAfter = append(s.identifyAfter, s.nextCalls)
	if s.identifyCalls <= len(s.identifyErrs) {
		return s.identifyErrs[s.identifyCalls-1]
	}
	return nil
}

func (s *fakeSession) calls() (next, identify int, after []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.nextCalls, s.identifyCalls, append([]int(nil), s.identifyAfter...)
}

// recordingStore keeps successful inserts and fails the attempts listed in failOn.
type recordingStore struct {
	mu       sync.Mutex
	lines    []v1.Line
	opts     []metav1.InsertLineOptions
	attempts int
	failOn   map[int]bool
}

func (s *recordingStore) Insert(ctx context.Context, line *v1.Line, opts metav1.InsertLineOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++
	s.opts = append(s.opts, opts)
	if s.failOn[s.attempts] {
		return errors.New("insert failed")
	}
	s.lines = append(s.lines, *line)
	return nil
}

func (s *recordingStore) List(ctx context.Context, opts metav1.ListLinesOptions) ([]*v1.Line, error) {
	return nil, nil
}

func (s *recordingStore) snapshot() (attempts int, lines []v1.Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attempts, append([]v1.Line(nil), s.lines...)
}

func waitForAttempts(t *testing.T, s *recordingStore, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if attempts, _ := s.snapshot(); attempts >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	attempts, _ := s.snapshot()
	t.Fatalf("Expected %v insert attempts, got %v", want, attempts)
}

func fixedClock(seconds ...int64) func() time.Time {
	i := 0
	return func() time.Time {
		t := time.Unix(seconds[i], 0)
		i++
		return t
	}
}

func TestPipelinePersistsEventsInOrder(t *testing.T) {
	session := &fakeSession{events: []string{"A", "B", "C"}, err: errors.New("connection reset")}
	lines := &recordingStore{}

	p, err := NewPipeline(session, lines, WithDatabase("irc"), WithClock(fixedClock(100, 101, 103)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	runErr := p.Run()
	var sessErr *SessionError
	if !errors.As(runErr, &sessErr) || sessErr.Err != session.err {
		t.Fatalf("Expected the session error, got %v", runErr)
	}

	waitForAttempts(t, lines, 3)
	_, got := lines.snapshot()
	want := []v1.Line{{Time: 100, Line: "A"}, {Time: 101, Line: "B"}, {Time: 103, Line: "C"}}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected document %v to be %v, got %v", i, want[i], got[i])
		}
	}

	for _, opts := range lines.opts {
		if opts.Database != "irc" || opts.Collection != metav1.RawCollection {
			t.Errorf("Expected inserts into irc.raw, got %v.%v", opts.Database, opts.Collection)
		}
	}
}

func TestPipelineStopsReadingAfterSessionError(t *testing.T) {
	session := &fakeSession{events: []string{"A", "B"}, err: errors.New("eof")}
	lines := &recordingStore{}

	p, err := NewPipeline(session, lines, WithDatabase("irc"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := p.Run(); err == nil {
		t.Fatalf("Expected Run to return the session error")
	}

	waitForAttempts(t, lines, 2)
	time.Sleep(50 * time.Millisecond)

	next, _, _ := session.calls()
	if next != 3 {
		t.Errorf("Expected 3 reads from the session, got %v", next)
	}
	if attempts, _ := lines.snapshot(); attempts != 2 {
		t.Errorf("Expected exactly 2 insert attempts, got %v", attempts)
	}
	if p.QueueLen() != 0 {
		t.Errorf("Expected an empty queue, got %v", p.QueueLen())
	}
}

func TestPipelineSessionErrorKeepsErrno(t *testing.T) {
	session := &fakeSession{err: fmt.Errorf("read tcp: %w", syscall.ECONNRESET)}

	p, _ := NewPipeline(session, &recordingStore{}, WithDatabase("irc"))
	err := p.Run()

	var errno syscall.Errno
	if !errors.As(err, &errno) || errno != syscall.ECONNRESET {
		t.Errorf("Expected ECONNRESET in the error chain, got %v", err)
	}
}

// entriesAt waits until the hook has seen want entries at level.
func entriesAt(t *testing.T, hook *logtest.Hook, level logrus.Level, want int) []*logrus.Entry {
	t.Helper()
	var matched []*logrus.Entry
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		matched = matched[:0]
		for _, entry := range hook.AllEntries() {
			if entry.Level == level {
				matched = append(matched, entry)
			}
		}
		if len(matched) >= want {
			return matched
		}
		time.Sleep(5 * time.Millisecond)
	}
	return matched
}

func TestPipelineContinuesAfterInsertFailure(t *testing.T) {
	session := &fakeSession{events: []string{"A", "B", "C"}, err: errors.New("eof")}
	lines := &recordingStore{failOn: map[int]bool{2: true}}
	metrics := NewMetrics()
	hook := logtest.NewGlobal()
	defer hook.Reset()

	p, err := NewPipeline(session, lines, WithDatabase("irc"), WithMetrics(metrics))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	p.Run()

	waitForAttempts(t, lines, 3)
	time.Sleep(20 * time.Millisecond)

	attempts, got := lines.snapshot()
	if attempts != 3 {
		t.Errorf("Expected 3 insert attempts with no retry, got %v", attempts)
	}
	if len(got) != 2 || got[0].Line != "A" || got[1].Line != "C" {
		t.Errorf("Expected A and C to be persisted, got %v", got)
	}

	if v := testutil.ToFloat64(metrics.LinesReceived); v != 3 {
		t.Errorf("Expected 3 received lines, got %v", v)
	}
	if v := testutil.ToFloat64(metrics.LinesPersisted); v != 2 {
		t.Errorf("Expected 2 persisted lines, got %v", v)
	}
	if v := testutil.ToFloat64(metrics.PersistFailures); v != 1 {
		t.Errorf("Expected 1 persist failure, got %v", v)
	}

	warnings := entriesAt(t, hook, logrus.WarnLevel, 1)
	if len(warnings) != 1 {
		t.Fatalf("Expected exactly 1 warning, got %v", len(warnings))
	}
	if msg := warnings[0].Message; msg != "Cannot insert to DB due to error: insert failed" {
		t.Errorf("Unexpected warning %q", msg)
	}
	if warnings[0].Data["database"] != "irc" || warnings[0].Data["collection"] != metav1.RawCollection {
		t.Errorf("Unexpected warning fields %v", warnings[0].Data)
	}
}

func TestPipelineDebugLogsEvents(t *testing.T) {
	session := &fakeSession{events: []string{"PRIVMSG #go-nuts :hi"}, err: errors.New("eof")}
	hook := logtest.NewGlobal()
	defer hook.Reset()

	p, _ := NewPipeline(session, &recordingStore{}, WithDatabase("irc"), WithDebug(true), WithClock(fixedClock(100)))
	p.Run()

	infos := entriesAt(t, hook, logrus.InfoLevel, 1)
	if len(infos) != 1 {
		t.Fatalf("Expected 1 event log, got %v", len(infos))
	}
	if infos[0].Data["event"] != "PRIVMSG #go-nuts :hi" || infos[0].Data["time"] != int64(100) {
		t.Errorf("Unexpected event fields %v", infos[0].Data)
	}
}

func TestPipelineIdentifiesOnceAfterFirstEvent(t *testing.T) {
	session := &fakeSession{events: []string{"A", "B", "C"}, err: errors.New("eof")}

	p, _ := NewPipeline(session, &recordingStore{}, WithDatabase("irc"))
	p.Run()

	_, identify, after := session.calls()
	if identify != 1 {
		t.Fatalf("Expected exactly 1 identification, got %v", identify)
	}
	if after[0] != 1 {
		t.Errorf("Expected identification right after the first event, got after read %v", after[0])
	}
}

func TestPipelineRetriesIdentifyUntilSuccess(t *testing.T) {
	session := &fakeSession{
		events:       []string{"A", "B", "C", "D", "E"},
		err:          errors.New("eof"),
		identifyErrs: []error{errors.New("not yet"), errors.New("still not")},
	}
	metrics := NewMetrics()

	p, _ := NewPipeline(session, &recordingStore{}, WithDatabase("irc"), WithMetrics(metrics))
	p.Run()

	_, identify, after := session.calls()
	if identify != 3 {
		t.Fatalf("Expected 3 identification attempts, got %v", identify)
	}
	for i, read := range after {
		if read != i+1 {
			t.Errorf("Expected attempt %v after read %v, got %v", i, i+1, read)
		}
	}
	if v := testutil.ToFloat64(metrics.IdentifyAttempts); v != 3 {
		t.Errorf("Expected 3 identify attempts in metrics, got %v", v)
	}
}

func TestPipelineNoIdentifyWithoutEvents(t *testing.T) {
	session := &fakeSession{err: errors.New("refused")}

	p, _ := NewPipeline(session, &recordingStore{}, WithDatabase("irc"))
	p.Run()

	if _, identify, _ := session.calls(); identify != 0 {
		t.Errorf("Expected no identification, got %v", identify)
	}
}

func TestPipelineRunOnlyOnce(t *testing.T) {
	p, _ := NewPipeline(&fakeSession{err: errors.New("eof")}, &recordingStore{}, WithDatabase("irc"))
	p.Run()

	err := p.Run()
	var sessErr *SessionError
	if err == nil || errors.As(err, &sessErr) {
		t.Errorf("Expected a second Run to be refused, got %v", err)
	}
}

func TestNewPipelineValidation(t *testing.T) {
	if _, err := NewPipeline(nil, &recordingStore{}); err == nil {
		t.Errorf("Expected an error without a session")
	}
	if _, err := NewPipeline(&fakeSession{}, nil); err == nil {
		t.Errorf("Expected an error without a line store")
	}
	if _, err := NewPipeline(&fakeSession{}, &recordingStore{}, WithDatabase("")); err == nil {
		t.Errorf("Expected an error for an empty database name")
	}
}

func TestMetricsRegistersQueueDepth(t *testing.T) {
	metrics := NewMetrics()
	if _, err := NewPipeline(&fakeSession{}, &recordingStore{}, WithMetrics(metrics)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	families, err := metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, family := range families {
		if family.GetName() == "ircpump_queue_depth" {
			return
		}
	}
	t.Errorf("Expected ircpump_queue_depth to be registered")
}
