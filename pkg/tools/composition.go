package tools

import (
	"context"

	"github.com/soundmesh/toolwright/pkg/ports"
)

// GenerateBassLine implements the "generate_bass_line" tool: Generate a bass line clip on a MIDI track.
//
// Args:
//
//	track_index: Index of the MIDI track to write into (0-127)
//	key: Musical key, e.g. "C", "Am", "F#m"
//	genre: Genre to style the pattern after (techno, industrial, house, minimal)
//	length_bars: Length of the clip in bars (1-64)
//	note_density: Rhythmic density, one of: sparse, medium, dense (default: medium)
//
//mcp:tool generate_bass_line
func GenerateBassLine(ctx context.Context, reg ports.Registry, track_index int, key string, genre string, length_bars int, note_density string) string {
	if track_index < 0 || track_index > 127 {
		return "Error: track_index must be between 0 and 127"
	}
	if genre != "techno" && genre != "industrial" && genre != "house" && genre != "minimal" {
		return "Error: genre must be one of: techno, industrial, house, minimal"
	}
	if length_bars < 1 || length_bars > 64 {
		return "Error: length_bars must be between 1 and 64"
	}
	if note_density != "sparse" && note_density != "medium" && note_density != "dense" {
		return "Error: note_density must be one of: sparse, medium, dense"
	}
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("composition")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "generate_bass_line", track_index, key, genre, length_bars, note_density)
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Generate a bass line clip on a MIDI track completed"
}
