package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/p1nant0m/ircpump/perf"
)

type HealthController struct {
	queueLen func() int
}

// NewHealthController reports the pipeline backlog through queueLen, which
// may be nil when no pipeline runs in this process.
func NewHealthController(queueLen func() int) *HealthController {
	return &HealthController{queueLen: queueLen}
}

func (h *HealthController) Get(c *gin.Context) {
	depth := 0
	if h.queueLen != nil {
		depth = h.queueLen()
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"msg":  "ok",
		"data": gin.H{
			"queue_depth": depth,
			"process":     perf.GetProcessPerf(),
		},
	})
}
