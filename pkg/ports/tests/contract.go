package tests

import (
	"context"
	"testing"

	"github.com/soundmesh/toolwright/pkg/ports"
)

// RegistryContractTest is a reusable test suite that verifies an
// implementation complies with ports.Registry: unknown names and an unset
// backend must come back as nil, and registered targets must come back
// callable.
func RegistryContractTest(t *testing.T, reg ports.Registry, register func(name string, h ports.Handler), setBackend func(h ports.Handler)) {
	t.Helper()

	t.Run("Handler_Unregistered", func(t *testing.T) {
		if h := reg.Handler("no-such-target"); h != nil {
			t.Errorf("expected nil for unregistered handler, got %v", h)
		}
	})

	t.Run("Backend_Unset", func(t *testing.T) {
		if b := reg.Backend(); b != nil {
			t.Errorf("expected nil for unset backend, got %v", b)
		}
	})

	t.Run("Handler_Registered", func(t *testing.T) {
		register("transport", echoHandler{})
		h := reg.Handler("transport")
		if h == nil {
			t.Fatal("expected registered handler, got nil")
		}
		res, err := h.Call(context.Background(), "play")
		if err != nil {
			t.Fatalf("unexpected error calling handler: %v", err)
		}
		if text, ok := res.Text(); !ok || text == "" {
			t.Errorf("expected textual result, got %+v", res)
		}
	})

	t.Run("Backend_Set", func(t *testing.T) {
		setBackend(echoHandler{})
		b := reg.Backend()
		if b == nil {
			t.Fatal("expected backend, got nil")
		}
		if _, err := b.Call(context.Background(), "ping"); err != nil {
			t.Fatalf("unexpected error calling backend: %v", err)
		}
	})
}

type echoHandler struct{}

func (echoHandler) Call(ctx context.Context, method string, args ...any) (ports.Result, error) {
	return ports.TextResult(method + " ok"), nil
}
