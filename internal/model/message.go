package model

// Dispatch states as reported by GET /messages/status.
const (
	DispatchStateIdle    = "idle"
	DispatchStateSending = "sending"
	DispatchStateSuccess = "success"
	DispatchStateFailure = "failure"
)

type TemplateRequest struct {
	Message string `json:"message"`
}

type PreviewRequest struct {
	Message string `json:"message"`
	// Phone optionally names the sample contact; defaults to the first
	// selected contact, then the first contact of the current view.
	Phone string `json:"phone"`
}

type PreviewResponse struct {
	Preview string `json:"preview"`
}

type SendRequest struct {
	Message string `json:"message"`
}

type SendResult struct {
	Sent  int      `json:"sent"`
	Keys  []string `json:"keys"`
	State string   `json:"state"`
}

type DispatchStatus struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}
