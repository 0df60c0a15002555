package models

// SuccessResponse is the generic acknowledgement returned by delete endpoints
type SuccessResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
