package pump

import "fmt"

// ConnectionError is returned at startup when the IRC server or the
// database cannot be reached or refuses the credentials.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %v: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SessionError is the terminal failure of the IRC session. It is the only
// error that ends a running pipeline.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("irc session terminated: %v", e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// PersistenceError is a failed insert. The writer logs it and moves on.
type PersistenceError struct {
	Record LogRecord
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Cannot insert to DB due to error: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
