package http

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Encode failures are adapter diagnostics: they go to the structured logger,
// never to stdout, so report output stays machine-consumable.
func TestWriteJSON_EncodeFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	s := &Server{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	rec := httptest.NewRecorder()
	s.writeJSON(rec, map[string]any{"callable": func() {}})

	assert.Contains(t, buf.String(), "encode response")
	assert.Contains(t, buf.String(), "unsupported type")
}
