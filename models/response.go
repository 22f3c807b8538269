package models

// Response is the envelope every CLI command prints.
type Response struct {
	Command  string      `json:"command" yaml:"command"`
	Data     interface{} `json:"data" yaml:"data"`
	Warnings []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrorInfo provides structured error information.
type ErrorInfo struct {
	Type             string   `json:"error_type" yaml:"error_type"`
	Message          string   `json:"message" yaml:"message"`
	SuggestedActions []string `json:"suggested_actions,omitempty" yaml:"suggested_actions,omitempty"`
}

// NewErrorResponse creates a response carrying only an error.
func NewErrorResponse(command, errType, message string, actions ...string) Response {
	return Response{
		Command: command,
		Data:    nil,
		Error: &ErrorInfo{
			Type:             errType,
			Message:          message,
			SuggestedActions: actions,
		},
	}
}
