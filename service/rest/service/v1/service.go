package v1

import "github.com/p1nant0m/ircpump/internal/pump/store"

type Service interface {
	Lines() LineSrv
}

type service struct {
	store    store.Factory
	database string
}

// NewService reads lines from the raw collection of the given database.
func NewService(store store.Factory, database string) Service {
	return &service{
		store:    store,
		database: database,
	}
}

func (s *service) Lines() LineSrv {
	return newLines(s)
}
