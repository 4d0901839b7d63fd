package harness

import (
	"context"
	"sync"

	"github.com/soundmesh/toolwright/pkg/ports"
)

// Call is one recorded delegation invocation.
type Call struct {
	Handler string // "" for the direct backend
	Method  string
	Args    []any
}

// MockHandler is a configurable stand-in for one delegation target. It
// returns a fixed result or a fixed error and records every invocation.
type MockHandler struct {
	reg    *MockRegistry
	name   string
	result ports.Result
	err    error
}

// Return configures a successful textual payload.
func (h *MockHandler) Return(text string) *MockHandler {
	h.result = ports.TextResult(text)
	h.err = nil
	return h
}

// ReturnResult configures an arbitrary structured result.
func (h *MockHandler) ReturnResult(r ports.Result) *MockHandler {
	h.result = r
	h.err = nil
	return h
}

// Fail configures the handler to fail every invocation.
func (h *MockHandler) Fail(err error) *MockHandler {
	h.err = err
	return h
}

// Call implements ports.Handler, recording the invocation first.
func (h *MockHandler) Call(ctx context.Context, method string, args ...any) (ports.Result, error) {
	h.reg.record(Call{Handler: h.name, Method: method, Args: args})
	if h.err != nil {
		return ports.Result{}, h.err
	}
	return h.result, nil
}

// MockRegistry simulates the delegation layer for one test case. Create a
// fresh instance per case and discard it afterwards; the harness never
// shares one across cases.
type MockRegistry struct {
	mu       sync.Mutex
	handlers map[string]*MockHandler
	backend  *MockHandler
	calls    []Call
}

// NewMockRegistry creates an empty mock delegation layer.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{handlers: make(map[string]*MockHandler)}
}

// On returns the mock for the named handler, creating it on first use.
func (m *MockRegistry) On(name string) *MockHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handlers[name]
	if !ok {
		h = &MockHandler{reg: m, name: name}
		m.handlers[name] = h
	}
	return h
}

// OnBackend returns the mock direct backend, creating it on first use.
func (m *MockRegistry) OnBackend() *MockHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend == nil {
		m.backend = &MockHandler{reg: m}
	}
	return m.backend
}

// Handler implements ports.Registry. Unconfigured names yield nil, the same
// as the live registry.
func (m *MockRegistry) Handler(name string) ports.Handler {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handlers[name]; ok {
		return h
	}
	return nil
}

// Backend implements ports.Registry.
func (m *MockRegistry) Backend() ports.Handler {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend == nil {
		return nil
	}
	return m.backend
}

// Calls returns every recorded invocation in order.
func (m *MockRegistry) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockRegistry) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}
