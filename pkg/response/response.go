// Package response writes the service's JSON envelope for gin handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends 200 with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{Message: "ok", Data: data})
}

// Ack answers a webhook update. Telegram only needs the 200; status tells
// whether the update was queued or dropped.
func Ack(c *gin.Context, status string, updateID int64) {
	OK(c, Status{Status: status, UpdateID: updateID})
}

// BadRequest sends 400 with the decode error as message.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Resp{ErrorCode: http.StatusBadRequest, Message: err.Error()})
}

// InternalError sends 500. err stays in the logs.
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   internalErrorMessage,
	})
}

// Unavailable sends 503 with reason.
func Unavailable(c *gin.Context, reason string) {
	c.JSON(http.StatusServiceUnavailable, Resp{ErrorCode: http.StatusServiceUnavailable, Message: reason})
}

// Reject aborts the chain with code and its status text.
func Reject(c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, Resp{ErrorCode: code, Message: http.StatusText(code)})
}
