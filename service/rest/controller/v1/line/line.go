package line

import (
	"github.com/p1nant0m/ircpump/internal/pump/store"
	v1 "github.com/p1nant0m/ircpump/service/rest/service/v1"
)

const (
	CodeOK = iota
	CodeBadRequest
	CodeStoreError
)

type LineController struct {
	srv v1.Service
}

func NewLineController(store store.Factory, database string) *LineController {
	return &LineController{srv: v1.NewService(store, database)}
}
