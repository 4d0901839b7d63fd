package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmesh/toolwright/pkg/harness"
	"github.com/soundmesh/toolwright/pkg/tools"
)

func TestCatalog_LookupMatchesEntries(t *testing.T) {
	entries := tools.Catalog()
	require.NotEmpty(t, entries)

	for _, e := range entries {
		assert.NotNil(t, tools.Lookup(e.Name), e.Name)
	}
	assert.Nil(t, tools.Lookup("no_such_tool"))
}

func TestSources_CoverEveryCatalogEntry(t *testing.T) {
	var all string
	for _, src := range tools.Sources() {
		all += src
	}
	for _, e := range tools.Catalog() {
		assert.Contains(t, all, "//mcp:tool "+e.Name)
	}
}

func TestSetTempo(t *testing.T) {
	ctx := context.Background()

	t.Run("nil registry", func(t *testing.T) {
		out := tools.SetTempo(ctx, nil, 132)
		assert.Equal(t, "Error: server not initialized", out)
	})

	t.Run("guard fires before delegation", func(t *testing.T) {
		m := harness.NewMockRegistry()
		m.On("transport").Return("Tempo set to 999 BPM")

		out := tools.SetTempo(ctx, m, 999)
		assert.Equal(t, "Error: bpm must be between 60 and 200", out)
		assert.Empty(t, m.Calls())
	})

	t.Run("delegates in range", func(t *testing.T) {
		m := harness.NewMockRegistry()
		m.On("transport").Return("Tempo set to 132 BPM")

		out := tools.SetTempo(ctx, m, 132)
		assert.Equal(t, "Tempo set to 132 BPM", out)

		calls := m.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "set_tempo", calls[0].Method)
		assert.Equal(t, []any{132.0}, calls[0].Args)
	})

	t.Run("delegation failure becomes text", func(t *testing.T) {
		m := harness.NewMockRegistry()
		m.On("transport").Fail(errors.New("socket closed"))

		out := tools.SetTempo(ctx, m, 132)
		assert.Equal(t, "Error: socket closed", out)
	})
}

func TestCreateTrack_EnumGuard(t *testing.T) {
	m := harness.NewMockRegistry()
	m.On("session").Return("Created track")

	out := tools.CreateTrack(context.Background(), m, "bus", "My Track")
	assert.Equal(t, "Error: track_type must be one of: audio, midi, return", out)
	assert.Empty(t, m.Calls())

	out = tools.CreateTrack(context.Background(), m, "midi", "My Track")
	assert.Equal(t, "Created track", out)
}

func TestPing_UsesBackend(t *testing.T) {
	m := harness.NewMockRegistry()
	m.OnBackend().Return("pong")

	out := tools.Ping(context.Background(), m)
	assert.Equal(t, "pong", out)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Handler)
	assert.Equal(t, "ping", calls[0].Method)
}

func TestGenerateBassLine_GuardOrder(t *testing.T) {
	m := harness.NewMockRegistry()
	m.On("composition").Return("Clip written")

	out := tools.GenerateBassLine(context.Background(), m, 200, "Am", "techno", 16, "medium")
	assert.Equal(t, "Error: track_index must be between 0 and 127", out)

	out = tools.GenerateBassLine(context.Background(), m, 1, "Am", "polka", 16, "medium")
	assert.Equal(t, "Error: genre must be one of: techno, industrial, house, minimal", out)

	out = tools.GenerateBassLine(context.Background(), m, 1, "Am", "techno", 16, "medium")
	assert.Equal(t, "Clip written", out)
}
