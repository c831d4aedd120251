package models

// CreateSessionRequest represents the request body for mounting a checkout session
type CreateSessionRequest struct {
	Postcode string `json:"postcode"`
	Area     string `json:"area"`
}

// SelectSkipRequest represents the request body for selecting a skip.
// SkipID is a pointer so a missing field is told apart from id 0.
type SelectSkipRequest struct {
	SkipID *int `json:"skipId"`
}

// ErrorResponse is written by controllers when a request cannot be served
type ErrorResponse struct {
	Error string `json:"error"`
}
