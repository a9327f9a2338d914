package types

// SuccessEnvelope wraps every successful payload under a "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape: a stable machine code, a display
// message, and optional field-level details.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under an "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
