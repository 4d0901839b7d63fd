package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmesh/toolwright/internal/extract"
	"github.com/soundmesh/toolwright/pkg/domain"
)

const setTempoSrc = `// SetTempo implements the "set_tempo" tool: Set the tempo of the current Live set.
//
// Args:
//
//	bpm: Tempo in beats per minute (60-200)
//
//mcp:tool set_tempo
func SetTempo(ctx context.Context, reg ports.Registry, bpm float64) string {
	if bpm < 60 || bpm > 200 {
		return "Error: bpm must be between 60 and 200"
	}
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "set_tempo", bpm)
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Set the tempo of the current Live set completed"
}
`

func TestSource_CanonicalTool(t *testing.T) {
	defs, err := extract.Source(setTempoSrc)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "set_tempo", def.Name)
	assert.Equal(t, "SetTempo", def.FuncName)
	assert.True(t, def.HasMarker)
	assert.True(t, def.AcceptsContext)
	assert.True(t, def.ReturnsText)
	assert.True(t, def.Delegates)
	assert.Equal(t, domain.ModeDelegated, def.Mode)
	assert.Equal(t, "transport", def.Handler)
	assert.Equal(t, "set_tempo", def.Method)

	require.Len(t, def.Parameters, 1)
	assert.Equal(t, "bpm", def.Parameters[0].Name)
	assert.Equal(t, "float64", def.Parameters[0].Type)
	assert.False(t, def.Parameters[0].Optional)

	assert.Contains(t, def.Doc.Summary, "Set the tempo")
	assert.Equal(t, "Tempo in beats per minute (60-200)", def.Doc.Args["bpm"])

	assert.True(t, def.Body.HasInitGuard)
	assert.True(t, def.Body.HasFailureBoundary)
	assert.True(t, def.Body.ErrorPrefixConsistent)
	assert.True(t, def.GuardedParams["bpm"])
}

func TestSource_DirectMode(t *testing.T) {
	src := `// Ping implements the "ping" tool: Test the connection.
//
//mcp:tool ping
func Ping(ctx context.Context, reg ports.Registry) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	backend := reg.Backend()
	if backend == nil {
		return "Error: server not initialized"
	}
	result, err := backend.Call(ctx, "ping")
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Test the connection completed"
}
`
	defs, err := extract.Source(src)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, domain.ModeDirect, defs[0].Mode)
	assert.Empty(t, defs[0].Handler)
	assert.Equal(t, "ping", defs[0].Method)
	assert.True(t, defs[0].Body.HasInitGuard)
}

func TestSource_MissingMarker(t *testing.T) {
	src := `// StartPlayback starts playback.
func StartPlayback(ctx context.Context, reg ports.Registry) string {
	return "ok"
}
`
	defs, err := extract.Source(src)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.False(t, defs[0].HasMarker)
	assert.Empty(t, defs[0].MarkerName)
	// Exposed name falls back to the snake_cased function name.
	assert.Equal(t, "start_playback", defs[0].Name)
}

func TestSource_MalformedMarker(t *testing.T) {
	src := `// SetTempo sets the tempo.
//
//mcp:tool Set Tempo
func SetTempo(ctx context.Context, reg ports.Registry) string {
	return "ok"
}
`
	defs, err := extract.Source(src)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.False(t, defs[0].HasMarker)
	assert.Equal(t, "Set Tempo", defs[0].MarkerName)
	assert.Equal(t, "set_tempo", defs[0].Name)
}

func TestSource_CompleteFile(t *testing.T) {
	src := "package tools\n\nimport (\n\t\"context\"\n\n\t\"github.com/soundmesh/toolwright/pkg/ports\"\n)\n\n" + setTempoSrc
	defs, err := extract.Source(src)
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestSource_ParseFailure(t *testing.T) {
	defs, err := extract.Source("this is not a tool {{{")
	assert.Nil(t, defs)
	require.Error(t, err)
	var extErr *domain.ExtractionError
	assert.ErrorAs(t, err, &extErr)
}

func TestSource_PartialBatch(t *testing.T) {
	src := setTempoSrc + `
func Declared(ctx context.Context, reg ports.Registry) string
`
	defs, err := extract.Source(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Declared")
	// The broken unit never sinks the rest of the batch.
	require.Len(t, defs, 1)
	assert.Equal(t, "set_tempo", defs[0].Name)
}

func TestFunction(t *testing.T) {
	def, err := extract.Function(setTempoSrc, "")
	require.NoError(t, err)
	assert.Equal(t, "set_tempo", def.Name)

	def, err = extract.Function(setTempoSrc, "SetTempo")
	require.NoError(t, err)
	assert.Equal(t, "set_tempo", def.Name)

	_, err = extract.Function(setTempoSrc, "NoSuchTool")
	assert.Error(t, err)
}

func TestOptionalFromDocDefault(t *testing.T) {
	src := `// CreateTrack implements the "create_track" tool: Create a new track.
//
// Args:
//
//	track_type: Type of track to create (audio, midi, return)
//	name: Name for the new track (default: Untitled)
//
//mcp:tool create_track
func CreateTrack(ctx context.Context, reg ports.Registry, track_type string, name string) string {
	return "ok"
}
`
	defs, err := extract.Source(src)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	require.Len(t, defs[0].Parameters, 2)

	assert.False(t, defs[0].Parameters[0].Optional)
	assert.True(t, defs[0].Parameters[1].Optional)
	assert.Equal(t, "Untitled", defs[0].Parameters[1].Default)
}

func TestDocstring_WrappedArgLine(t *testing.T) {
	src := `// GenerateBassLine implements the "generate_bass_line" tool: Generate a bass line.
//
// Args:
//
//	genre: Genre to style the pattern after
//		(techno, industrial, house, minimal)
//
//mcp:tool generate_bass_line
func GenerateBassLine(ctx context.Context, reg ports.Registry, genre string) string {
	return "ok"
}
`
	defs, err := extract.Source(src)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Contains(t, defs[0].Doc.Args["genre"], "techno")
}

func TestIsSnakeCase(t *testing.T) {
	valid := []string{"play", "set_tempo", "track_2", "a"}
	invalid := []string{"", "SetTempo", "_tempo", "tempo_", "set__tempo", "2track", "set-tempo"}

	for _, s := range valid {
		assert.True(t, extract.IsSnakeCase(s), s)
	}
	for _, s := range invalid {
		assert.False(t, extract.IsSnakeCase(s), s)
	}
}
