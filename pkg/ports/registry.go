package ports

import "context"

// Segment is one element of a structured delegation result. The first
// segment with type "text" carries the payload a tool returns verbatim.
type Segment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is what a delegation call yields on success.
type Result struct {
	Segments []Segment `json:"segments"`
}

// TextResult builds a single-segment textual result.
func TextResult(text string) Result {
	return Result{Segments: []Segment{{Type: "text", Text: text}}}
}

// Text returns the first textual segment, if any. Tools fall back to a
// generated default message when the payload lacks one.
func (r Result) Text() (string, bool) {
	for _, s := range r.Segments {
		if s.Type == "text" {
			return s.Text, true
		}
	}
	return "", false
}

// Handler is one delegation target: a backend object whose methods are
// invoked by name. Implementations must respect ctx and must report failure
// through the error return, never by panicking.
type Handler interface {
	Call(ctx context.Context, method string, args ...any) (Result, error)
}

// Registry resolves delegation targets for tool bodies.
//
// Delegated tools look up a named handler; direct tools call the backend.
// Both accessors return nil when the target is unavailable, and tools are
// required to guard against that before delegating.
type Registry interface {
	Handler(name string) Handler
	Backend() Handler
}
