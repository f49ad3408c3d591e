package http

// MessageResponse is the body of informational responses
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Message string `json:"message"`
}
