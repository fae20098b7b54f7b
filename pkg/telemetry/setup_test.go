package telemetry

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	orig := log.Logger
	origDefault := zerolog.DefaultContextLogger
	origLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = orig
		zerolog.DefaultContextLogger = origDefault
		zerolog.SetGlobalLevel(origLevel)
	})
}

func TestSetGlobalLogger_JSON(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer

	require.NoError(t, SetGlobalLogger(&buf, "warn", "json"))

	logger := log.Ctx(context.Background())
	logger.Info().Msg("hidden")
	logger.Warn().Str("to", "ayesha@example.com").Msg("Email failed, continuing")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"to":"ayesha@example.com"`)
}

func TestSetGlobalLogger_Invalid(t *testing.T) {
	restoreLogger(t)

	assert.ErrorContains(t, SetGlobalLogger(io.Discard, "loud", ""), "invalid LOG_LEVEL")
	assert.EqualError(t, SetGlobalLogger(io.Discard, "", "xml"), `invalid LOG_FORMAT "xml"`)
}

func TestInitTracer(t *testing.T) {
	var buf bytes.Buffer
	tp, err := InitTracer("femi9-test", &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "smtp.Send")
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "smtp.Send")
}
