package params

import "fmt"

// DuplicateParamError is returned when a form-encoded query string carries
// the same field name more than once. Duplicate keys are a strict decode
// failure, never a silent overwrite.
type DuplicateParamError struct {
	Key string
}

func (e *DuplicateParamError) Error() string {
	return fmt.Sprintf("encountered duplicate param field name: '%s'", e.Key)
}

// DecodeError is returned when a query string cannot be decoded.
type DecodeError struct {
	Encoding string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s params: %s", e.Encoding, e.Reason)
}

// NewDecodeError creates a decode error for the given encoding branch.
func NewDecodeError(encoding, reason string) *DecodeError {
	return &DecodeError{
		Encoding: encoding,
		Reason:   reason,
	}
}
