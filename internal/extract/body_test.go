package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmesh/toolwright/internal/extract"
	"github.com/soundmesh/toolwright/pkg/domain"
)

func mustExtract(t *testing.T, src string) domain.ToolDefinition {
	t.Helper()
	defs, err := extract.Source(src)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	return defs[0]
}

func TestBody_MissingInitGuard(t *testing.T) {
	def := mustExtract(t, `//mcp:tool play
func Play(ctx context.Context, reg ports.Registry) string {
	handler := reg.Handler("transport")
	result, err := handler.Call(ctx, "play")
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	assert.True(t, def.Delegates)
	assert.False(t, def.Body.HasInitGuard)
	assert.True(t, def.Body.HasFailureBoundary)
}

func TestBody_GuardAfterDelegationDoesNotCount(t *testing.T) {
	def := mustExtract(t, `//mcp:tool play
func Play(ctx context.Context, reg ports.Registry) string {
	handler := reg.Handler("transport")
	result, err := handler.Call(ctx, "play")
	if reg == nil {
		return "Error: server not initialized"
	}
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	assert.False(t, def.Body.HasInitGuard)
}

func TestBody_MissingFailureBoundary(t *testing.T) {
	def := mustExtract(t, `//mcp:tool play
func Play(ctx context.Context, reg ports.Registry) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	result, _ := handler.Call(ctx, "play")
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	assert.True(t, def.Delegates)
	assert.True(t, def.Body.HasInitGuard)
	assert.False(t, def.Body.HasFailureBoundary)
}

func TestBody_ErrCheckWithoutPrefixedReturn(t *testing.T) {
	def := mustExtract(t, `//mcp:tool play
func Play(ctx context.Context, reg ports.Registry) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	result, err := handler.Call(ctx, "play")
	if err != nil {
		return err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	assert.False(t, def.Body.HasFailureBoundary)
}

func TestBody_PrefixNearMiss(t *testing.T) {
	def := mustExtract(t, `//mcp:tool play
func Play(ctx context.Context, reg ports.Registry) string {
	if reg == nil {
		return "error: server not initialized"
	}
	handler := reg.Handler("transport")
	result, err := handler.Call(ctx, "play")
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	assert.False(t, def.Body.ErrorPrefixConsistent)
}

func TestBody_SprintfPrefixAccepted(t *testing.T) {
	def := mustExtract(t, `//mcp:tool set_tempo
func SetTempo(ctx context.Context, reg ports.Registry, bpm float64) string {
	if bpm < 60 || bpm > 200 {
		return fmt.Sprintf("Error: bpm must be between %d and %d", 60, 200)
	}
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	result, err := handler.Call(ctx, "set_tempo", bpm)
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	assert.True(t, def.GuardedParams["bpm"])
	assert.True(t, def.Body.ErrorPrefixConsistent)
}

func TestBody_InlineDelegation(t *testing.T) {
	def := mustExtract(t, `//mcp:tool stop
func Stop(ctx context.Context, reg ports.Registry) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	result, err := reg.Handler("transport").Call(ctx, "stop")
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	assert.True(t, def.Delegates)
	assert.Equal(t, "transport", def.Handler)
	assert.Equal(t, "stop", def.Method)
	assert.True(t, def.Body.HasFailureBoundary)
}

func TestBody_PureToolDoesNotDelegate(t *testing.T) {
	def := mustExtract(t, `//mcp:tool describe
func Describe(ctx context.Context, reg ports.Registry) string {
	return "a catalog of transport and composition tools"
}
`)
	assert.False(t, def.Delegates)
	assert.True(t, def.Body.HasFailureBoundary)
	assert.True(t, def.Body.ErrorPrefixConsistent)
}

func TestBody_UnguardedConstrainedParam(t *testing.T) {
	def := mustExtract(t, `// SetTempo implements the "set_tempo" tool: Set the tempo.
//
// Args:
//
//	bpm: Tempo in beats per minute (60-200)
//
//mcp:tool set_tempo
func SetTempo(ctx context.Context, reg ports.Registry, bpm float64) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	result, err := handler.Call(ctx, "set_tempo", bpm)
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "done"
}
`)
	require.Len(t, def.ConstrainedParams(), 1)
	assert.False(t, def.GuardedParams["bpm"])
}
