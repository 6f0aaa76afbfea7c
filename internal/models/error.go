package models

// ErrorResult is the uniform failure shape returned by every tool.
type ErrorResult struct {
	Error string `json:"error"`
}

func NewErrorResult(message string) ErrorResult {
	return ErrorResult{Error: message}
}

// IsErrorResult reports whether a tool result is the failure shape.
func IsErrorResult(result any) bool {
	switch result.(type) {
	case ErrorResult, *ErrorResult:
		return true
	}
	return false
}
