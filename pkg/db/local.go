package db

import (
	"sync"

	v1 "github.com/p1nant0m/ircpump/pkg/api/v1"
)

// LocalStorage keeps lines in memory in insertion order.
type LocalStorage struct {
	mu      sync.Mutex
	storage []v1.Line
}

func NewLocalStorage() (*LocalStorage, error) {
	return &LocalStorage{}, nil
}

func (ls *LocalStorage) Append(elem ...*v1.Line) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for _, item := range elem {
		ls.storage = append(ls.storage, *item)
	}

	return nil
}

// List returns at most limit of the newest lines with Time >= since, oldest
// first. A non-positive limit means no limit.
func (ls *LocalStorage) List(since, limit int64) ([]*v1.Line, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var matched []v1.Line
	for _, line := range ls.storage {
		if line.Time >= since {
			matched = append(matched, line)
		}
	}
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[int64(len(matched))-limit:]
	}

	lines := make([]*v1.Line, 0, len(matched))
	for i := range matched {
		line := matched[i]
		lines = append(lines, &line)
	}
	return lines, nil
}

func (ls *LocalStorage) Len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return len(ls.storage)
}
