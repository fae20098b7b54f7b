package smtp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// unstuff reverses EscapeBody back to LF line endings.
func unstuff(escaped string) string {
	lines := strings.Split(escaped, "\r\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "..") {
			lines[i] = line[1:]
		}
	}
	return strings.Join(lines, "\n")
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		email, name, want string
	}{
		{"shop@example.com", "", "<shop@example.com>"},
		{"shop@example.com", "Femi9outfit", `"Femi9outfit" <shop@example.com>`},
		{"shop@example.com", `The "Best" Shop`, `"The \"Best\" Shop" <shop@example.com>`},
		{"shop@example.com", "Evil\r\nBcc: x@example.com", `"EvilBcc: x@example.com" <shop@example.com>`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.email, tt.name))
		})
	}
}

func TestBuildHeaders(t *testing.T) {
	date := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

	got := BuildHeaders("shop@example.com", "Femi9outfit", "buyer@example.com", "Order Confirmation - 42", date)

	want := "From: \"Femi9outfit\" <shop@example.com>\r\n" +
		"To: <buyer@example.com>\r\n" +
		"Subject: Order Confirmation - 42\r\n" +
		"Date: Sat, 17 Oct 2026 09:30:00 +0000\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n"
	assert.Equal(t, want, got)
}

func TestBuildHeaders_StripsLineBreaksFromSubject(t *testing.T) {
	got := BuildHeaders("a@example.com", "", "b@example.com", "Hi\r\nBcc: c@example.com", time.Now())
	assert.Contains(t, got, "Subject: HiBcc: c@example.com\r\n")
	assert.NotContains(t, got, "\r\nBcc:")
}

func TestEscapeBody(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "hello\nworld", "hello\r\nworld"},
		{"crlf kept", "hello\r\nworld", "hello\r\nworld"},
		{"lone cr", "hello\rworld", "hello\r\nworld"},
		{"lone dot", "a\n.\nb", "a\r\n..\r\nb"},
		{"leading dot on first line", ".hidden\nnext", "..hidden\r\nnext"},
		{"dots inside line untouched", "a.b\n x.", "a.b\r\n x."},
		{"double dot", "..already", "...already"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeBody(tt.in))
		})
	}
}

func TestEscapeBody_Reversible(t *testing.T) {
	bodies := []string{
		".",
		"line one\n.\nline three",
		".\n..\n...\n",
		"Items:\n- Lawn suit x1\n.start\nend.",
		"",
	}
	for _, body := range bodies {
		escaped := EscapeBody(body)
		assert.NotContains(t, "\r\n"+escaped+"\r\n", "\r\n.\r\n", "body %q", body)
		assert.Equal(t, body, unstuff(escaped))
	}
}

func TestBuildMessage_EndsWithTerminator(t *testing.T) {
	cfg := Config{FromEmail: "shop@example.com"}
	msg := BuildMessage(cfg, Mail{To: "b@example.com", Subject: "s", Text: "body\n."}, time.Now())

	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nbody\r\n..\r\n.\r\n"))
	assert.Equal(t, 1, strings.Count(msg, "\r\n.\r\n"))
}
