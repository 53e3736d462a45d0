package transfer

import "fmt"

type Status int

const (
	Completed Status = iota
	AbortedByUser
	Failed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case AbortedByUser:
		return "aborted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of Execute. Code and Message are only set when
// Status is Failed.
type Outcome struct {
	Status  Status
	Code    uint32
	Message string
}

// Err returns a *Error for a failed outcome and nil otherwise
func (o Outcome) Err() error {
	if o.Status != Failed {
		return nil
	}
	return &Error{Code: o.Code, Message: o.Message}
}

// Error is a failed bulk transfer
type Error struct {
	Code    uint32
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("bulk transfer failed: 0x%08x", e.Code)
}
