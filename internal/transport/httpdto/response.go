package httpdto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func NewErrorResponse(message string, status int) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Message: message, Status: status}}
}

type PongResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
