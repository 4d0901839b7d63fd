package tools

import (
	_ "embed"
)

//go:embed transport.go
var transportSource string

//go:embed track.go
var trackSource string

//go:embed composition.go
var compositionSource string

// Entry pairs a tool name with its live callable so the harness and the
// serving adapters can look functions up by the name the marker declares.
type Entry struct {
	Name string
	Fn   any
}

// Catalog lists every built-in tool in declaration order.
func Catalog() []Entry {
	return []Entry{
		{Name: "play", Fn: Play},
		{Name: "stop", Fn: Stop},
		{Name: "set_tempo", Fn: SetTempo},
		{Name: "ping", Fn: Ping},
		{Name: "create_track", Fn: CreateTrack},
		{Name: "set_track_volume", Fn: SetTrackVolume},
		{Name: "generate_bass_line", Fn: GenerateBassLine},
	}
}

// Lookup returns the live callable for a tool name, or nil.
func Lookup(name string) any {
	for _, e := range Catalog() {
		if e.Name == name {
			return e.Fn
		}
	}
	return nil
}

// Sources returns the catalog's own source units. The suite command feeds
// these back through the validator, so the shipped catalog is re-checked
// against the convention on every run.
func Sources() []string {
	return []string{transportSource, trackSource, compositionSource}
}
