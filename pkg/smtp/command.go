package smtp

import (
	"fmt"
	"io"
	"slices"
)

// SendCommand writes command followed by CRLF, reads one reply and fails
// with a *ProtocolError unless the reply code is in accept.
func SendCommand(w io.Writer, r *LineReader, command string, accept ...int) (Response, error) {
	return exchange(w, r, command, command, accept)
}

// exchange is SendCommand with a separate label used in errors, so that
// credential lines are never echoed back to the caller.
func exchange(w io.Writer, r *LineReader, line, label string, accept []int) (Response, error) {
	if _, err := io.WriteString(w, line+"\r\n"); err != nil {
		return Response{}, fmt.Errorf("smtp: write %s: %w", label, err)
	}
	return await(r, label, accept)
}

func await(r *LineReader, label string, accept []int) (Response, error) {
	resp, err := ReadResponse(r)
	if err != nil {
		return Response{}, fmt.Errorf("smtp: read reply to %s: %w", label, err)
	}
	if !slices.Contains(accept, resp.Code) {
		return resp, &ProtocolError{Command: label, Code: resp.Code, Message: resp.Message}
	}
	return resp, nil
}
