package cmd

import (
	"errors"
	"syscall"
)

// ExitCode maps an error to the process status: the errno carried in the
// error chain when there is one, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return 1
}
