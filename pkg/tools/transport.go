// Package tools is the built-in tool catalog. Every function here follows
// the canonical shape the validator enforces; the suite command validates
// and exercises this package on every run, so a drift between convention
// and catalog fails CI immediately.
package tools

import (
	"context"

	"github.com/soundmesh/toolwright/pkg/ports"
)

// Play implements the "play" tool: Start playback in the connected Live set.
//
//mcp:tool play
func Play(ctx context.Context, reg ports.Registry) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "play")
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Start playback in the connected Live set completed"
}

// Stop implements the "stop" tool: Stop playback in the connected Live set.
//
//mcp:tool stop
func Stop(ctx context.Context, reg ports.Registry) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "stop")
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Stop playback in the connected Live set completed"
}

// SetTempo implements the "set_tempo" tool: Set the tempo of the current Live set.
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

// Ping implements the "ping" tool: Test the connection to the controlled application.
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
	return "Test the connection to the controlled application completed"
}
