package models

// ErrorResponse is the JSON error body returned by every endpoint:
// a human-readable message plus optional underlying detail for diagnosis.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
