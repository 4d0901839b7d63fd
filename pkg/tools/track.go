package tools

import (
	"context"

	"github.com/soundmesh/toolwright/pkg/ports"
)

// CreateTrack implements the "create_track" tool: Create a new track in the Live set.
//
// Args:
//
//	track_type: Type of track to create (audio, midi, return)
//	name: Name for the new track (default: Untitled)
//
//mcp:tool create_track
func CreateTrack(ctx context.Context, reg ports.Registry, track_type string, name string) string {
	if track_type != "audio" && track_type != "midi" && track_type != "return" {
		return "Error: track_type must be one of: audio, midi, return"
	}
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("session")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "create_track", track_type, name)
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Create a new track in the Live set completed"
}

// SetTrackVolume implements the "set_track_volume" tool: Set the mixer volume of a track.
//
// Args:
//
//	track_index: Index of the track to adjust (0-127)
//	volume: Linear volume, where 0.85 is unity gain (0-1)
//
//mcp:tool set_track_volume
func SetTrackVolume(ctx context.Context, reg ports.Registry, track_index int, volume float64) string {
	if track_index < 0 || track_index > 127 {
		return "Error: track_index must be between 0 and 127"
	}
	if volume < 0 || volume > 1 {
		return "Error: volume must be between 0 and 1"
	}
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("session")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "set_track_volume", track_index, volume)
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Set the mixer volume of a track completed"
}
