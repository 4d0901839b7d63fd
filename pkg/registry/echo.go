package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/soundmesh/toolwright/pkg/ports"
)

// EchoHandler answers every call with a textual echo of the method and
// arguments. It stands in for a real backend in demo and serve modes where
// the controlled application is not connected.
type EchoHandler struct {
	name string
}

// Echo creates an echo handler for the named delegation target.
func Echo(name string) *EchoHandler {
	return &EchoHandler{name: name}
}

// Call implements ports.Handler.
func (h *EchoHandler) Call(ctx context.Context, method string, args ...any) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{}, err
	}
	rendered := make([]string, 0, len(args))
	for _, a := range args {
		rendered = append(rendered, fmt.Sprintf("%v", a))
	}
	return ports.TextResult(fmt.Sprintf("%s.%s(%s)", h.name, method, strings.Join(rendered, ", "))), nil
}
