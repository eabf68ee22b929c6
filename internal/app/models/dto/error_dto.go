package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success    bool   `json:"success" example:"false"`
	Error      string `json:"error" example:"insufficient permissions: the token is missing the Files scope"`
	ErrorType  string `json:"error_type" example:"permission_denied"`
	Suggestion string `json:"suggestion,omitempty" example:"This format needs the extraction worker (EXTRACTION_WORKER_COMMAND). Without it, save legacy Office files as DOCX or PPTX."`
	Details    string `json:"details,omitempty"`
}

// NewErrorResponse creates a failure body
func NewErrorResponse(message, errorType string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     message,
		ErrorType: errorType,
	}
}

// WithSuggestion attaches user guidance
func (e *ErrorResponse) WithSuggestion(suggestion string) *ErrorResponse {
	e.Suggestion = suggestion
	return e
}

// WithDetails attaches the raw cause (development mode only)
func (e *ErrorResponse) WithDetails(details string) *ErrorResponse {
	e.Details = details
	return e
}
