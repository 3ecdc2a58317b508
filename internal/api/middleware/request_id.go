package middleware

import (
	"github.com/GriffinCanCode/faleproxy/internal/shared/id"
	"github.com/gin-gonic/gin"
)

const (
	HeaderRequestID = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID assigns each request a fresh ID, exposes it in X-Request-ID and
// keeps it on the context for the access log. Client-supplied IDs are ignored.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.NewRequestID()
		c.Set(requestIDKey, requestID)
		c.Header(HeaderRequestID, requestID.String())
		c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or "" outside it
func GetRequestID(c *gin.Context) id.RequestID {
	v, _ := c.Get(requestIDKey)
	requestID, _ := v.(id.RequestID)
	return requestID
}
