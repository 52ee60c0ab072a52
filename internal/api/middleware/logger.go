package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request via a custom gin formatter: timestamp,
// method, path, status code and latency. Stages themselves stay
// silent; only the API boundary logs.
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		return p.TimeStamp.Format(time.RFC3339) + " " +
			p.Method + " " + p.Path + " " +
			strconv.Itoa(p.StatusCode) + " " +
			p.Latency.String() + "\n"
	})
}
