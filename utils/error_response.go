package utils

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the body of API calls that only acknowledge success.
type MessageResponse struct {
	Message string `json:"message"`
}
