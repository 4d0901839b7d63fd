package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmesh/toolwright/pkg/ports"
	"github.com/soundmesh/toolwright/pkg/ports/tests"
	"github.com/soundmesh/toolwright/pkg/registry"
)

func TestRegistry_Contract(t *testing.T) {
	reg := registry.New()
	tests.RegistryContractTest(t, reg, reg.Register, reg.SetBackend)
}

func TestRegistry_Names(t *testing.T) {
	reg := registry.New()
	assert.Empty(t, reg.Names())

	reg.Register("transport", registry.Echo("transport"))
	reg.Register("session", registry.Echo("session"))

	names := reg.Names()
	assert.ElementsMatch(t, []string{"transport", "session"}, names)
}

func TestEcho_RendersInvocation(t *testing.T) {
	h := registry.Echo("transport")
	res, err := h.Call(context.Background(), "set_tempo", 132.0)
	require.NoError(t, err)

	text, ok := res.Text()
	require.True(t, ok)
	assert.Equal(t, "transport.set_tempo(132)", text)
}

func TestEcho_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := registry.Echo("transport").Call(ctx, "play")
	assert.Error(t, err)
}

var _ ports.Registry = (*registry.Registry)(nil)
