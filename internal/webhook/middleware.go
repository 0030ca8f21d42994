package webhook

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgLog "weekly-task-report/pkg/log"
	pkgResponse "weekly-task-report/pkg/response"
)

// Middleware rejects webhook calls from unknown IPs, over the rate limit or
// without the right secret token.
func (v *SecurityValidator) Middleware(l pkgLog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := v.check(c); err != nil {
			l.Warnf(c.Request.Context(), "webhook.Middleware: rejected request from %s: %v", extractIP(c.Request), err)
			pkgResponse.Reject(c, StatusCode(err))
			return
		}
		c.Next()
	}
}

func (v *SecurityValidator) check(c *gin.Context) error {
	if err := v.ValidateIPAddress(c.Request); err != nil {
		return err
	}
	if err := v.CheckRateLimit(extractIP(c.Request)); err != nil {
		return err
	}
	return v.ValidateSecretToken(c.GetHeader(SecretTokenHeader))
}

// StatusCode maps a validation error to the HTTP status returned to the caller.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrIPNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusUnauthorized
	}
}
