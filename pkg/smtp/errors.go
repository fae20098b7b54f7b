package smtp

import (
	"errors"
	"fmt"
)

// ProtocolError reports a reply whose code was not accepted for the command sent.
type ProtocolError struct {
	Command string
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("smtp command failed (%s): %s", e.Command, e.Message)
}

// IsProtocolError reports whether err wraps a *ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
