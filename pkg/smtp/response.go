package smtp

import (
	"regexp"
	"strconv"
	"strings"
)

var replyLine = regexp.MustCompile(`^(\d{3})([ -])(.*)$`)

// Response is one logical server reply.
type Response struct {
	Code int
	// Message holds every line consumed for the reply, joined by "\n".
	Message string
}

// ReadResponse assembles a possibly multi-line reply. Lines that do not
// look like reply lines are kept in Message but otherwise ignored, so a
// server that never sends a final line blocks until the read fails.
func ReadResponse(r *LineReader) (Response, error) {
	var lines []string
	for {
		line, err := r.NextLine()
		if err != nil {
			return Response{}, err
		}
		lines = append(lines, line)

		m := replyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[2] == " " {
			code, _ := strconv.Atoi(m[1])
			return Response{Code: code, Message: strings.Join(lines, "\n")}, nil
		}
	}
}
