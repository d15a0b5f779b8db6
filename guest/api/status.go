package api

// Status represents the status from a plugin function.
type Status struct {
	Code   StatusCode
	Reason string
}

type StatusCode int32

// These are predefined codes used in a Status.
const (
	// Completed without errors.
	StatusCodeSuccess StatusCode = iota
	// Exited with unexpected errors.
	StatusCodeError
	// The input message could not be decoded.
	StatusCodeInvalidArgument
)

func (c StatusCode) String() string {
	switch c {
	case StatusCodeSuccess:
		return "OK"
	case StatusCodeError:
		return "ERROR"
	case StatusCodeInvalidArgument:
		return "INVALID_ARGUMENT"
	default:
		return "UNKNOWN"
	}
}

// StatusSuccess returns nil, which callers treat the same as a Status with
// StatusCodeSuccess.
func StatusSuccess() *Status {
	return nil
}

// StatusError returns a Status with StatusCodeError and the given reason.
func StatusError(reason string) *Status {
	return &Status{Code: StatusCodeError, Reason: reason}
}

// StatusInvalidArgument returns a Status for input the plugin refuses to
// handle.
func StatusInvalidArgument(reason string) *Status {
	return &Status{Code: StatusCodeInvalidArgument, Reason: reason}
}

// IsSuccess reports whether s carries no failure.
func (s *Status) IsSuccess() bool {
	return s == nil || s.Code == StatusCodeSuccess
}

// Text renders the status as text placed in a failed result payload.
func (s *Status) Text() string {
	if s.IsSuccess() {
		return ""
	}
	if s.Reason == "" {
		return s.Code.String()
	}
	return s.Reason
}
