package line

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (l *LineController) List(c *gin.Context) {
	since, err := queryInt(c, "since")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": CodeBadRequest,
			"data": nil,
			"msg":  "since must be a unix timestamp",
		})
		return
	}

	limit, err := queryInt(c, "limit")
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code": CodeBadRequest,
			"data": nil,
			"msg":  "limit must be a non-negative integer",
		})
		return
	}

	lines, err := l.srv.Lines().List(c, since, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": CodeStoreError,
			"data": nil,
			"msg":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": lines,
		"msg":  "ok",
	})
}

// queryInt reads an optional integer query parameter, zero when absent.
func queryInt(c *gin.Context, key string) (int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
