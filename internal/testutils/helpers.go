// Package testutils holds shared helpers for exercising the toolchain
// against files on disk.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteToolFile writes tool source into a temp directory and returns the
// file path. It fails the test immediately on error.
func WriteToolFile(t *testing.T, name, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644), "Failed to write tool source")
	return path
}
