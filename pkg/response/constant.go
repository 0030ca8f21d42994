package response

// Status values carried in Status.Status.
const (
	StatusAccepted = "accepted"
	StatusIgnored  = "ignored"
	StatusHealthy  = "healthy"
	StatusReady    = "ready"
	StatusAlive    = "alive"
)

const internalErrorMessage = "internal error"

// Resp is the JSON envelope of every HTTP reply. ErrorCode is 0 on success
// and the HTTP status otherwise.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// Status is the payload of system probes and webhook acknowledgements.
type Status struct {
	Status      string `json:"status"`
	Service     string `json:"service,omitempty"`
	Version     string `json:"version,omitempty"`
	Environment string `json:"environment,omitempty"`
	UpdateID    int64  `json:"update_id,omitempty"`
}
