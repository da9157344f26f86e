package models

// ValidationResult is the uniform answer of every validator.
// A nil Error means there is no message to display.
type ValidationResult struct {
	IsValid bool    `json:"isValid"`
	Error   *string `json:"error"`
}

// Valid returns a passing result.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// Invalid returns a failing result carrying msg.
func Invalid(msg string) ValidationResult {
	return ValidationResult{IsValid: false, Error: &msg}
}

// Message returns the error text or "".
func (r ValidationResult) Message() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}
