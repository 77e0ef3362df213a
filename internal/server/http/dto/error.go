package dto

// ErrorResponse carries a machine-checkable error kind plus a readable message.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
