package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"

	logger "quizhive-backend/pkg/logging"
)

// Bodies larger than this are truncated in the dump; attempt submissions can
// carry long answer arrays.
const maxDumpedBody = 4096

// RequestDumpMiddleware logs every request at debug level, tagged with the
// request id when RequestIDMiddleware ran before it. The body is re-buffered
// so downstream binding still sees it.
func RequestDumpMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		dumped := bodyBytes
		if len(dumped) > maxDumpedBody {
			dumped = dumped[:maxDumpedBody]
		}

		logger.Debug(
			"[Request %s]\n"+
				"\tMethod: %s\n"+
				"\tURL: %s\n"+
				"\tHeaders: %v\n"+
				"\tParams: %v\n"+
				"\tBody: %s",
			c.GetString(ContextRequestIDKey),
			c.Request.Method,
			c.Request.URL.String(),
			c.Request.Header,
			c.Params,
			string(dumped),
		)

		c.Next()
	}
}
