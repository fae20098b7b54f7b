package smtp

import (
	"fmt"
	"strings"
	"time"
)

// FormatAddress renders a mailbox for a header. An empty name yields a
// bare angle-bracketed address.
func FormatAddress(email, name string) string {
	email = sanitizeHeader(email)
	if name == "" {
		return "<" + email + ">"
	}
	return fmt.Sprintf(`"%s" <%s>`, strings.ReplaceAll(sanitizeHeader(name), `"`, `\"`), email)
}

// BuildHeaders returns the header block, terminated by the empty line
// that separates it from the body.
func BuildHeaders(from, fromName, to, subject string, date time.Time) string {
	headers := []string{
		"From: " + FormatAddress(from, fromName),
		"To: " + FormatAddress(to, ""),
		"Subject: " + sanitizeHeader(subject),
		"Date: " + date.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n"
}

// EscapeBody normalizes every line ending to CRLF and doubles a leading
// dot on any line, so no body line can be read as the end-of-data marker.
// The result carries no trailing CRLF.
func EscapeBody(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, ".") {
			lines[i] = "." + line
		}
	}
	return strings.Join(lines, "\r\n")
}

// BuildMessage returns the full DATA block: headers, escaped body and the
// lone-dot terminator line.
func BuildMessage(cfg Config, mail Mail, date time.Time) string {
	return BuildHeaders(cfg.FromEmail, cfg.FromName, mail.To, mail.Subject, date) +
		EscapeBody(mail.Text) + "\r\n.\r\n"
}

func sanitizeHeader(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", ""), "\n", "")
}
