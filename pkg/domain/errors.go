package domain

import "fmt"

// ErrorPrefix is the canonical marker every failure-path return must start
// with. Callers pattern-match on it, so it is load-bearing: changing it
// breaks every deployed client.
const ErrorPrefix = "Error: "

// NotInitialized is the canonical response when the delegation layer is
// absent or the requested handler is not registered.
const NotInitialized = ErrorPrefix + "server not initialized"

// ExtractionError reports that a source unit could not be parsed into a
// ToolDefinition. Fatal to that unit, never to the batch.
type ExtractionError struct {
	Unit   string // identifier of the offending unit, best effort
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.Unit == "" {
		return "extraction failed: " + e.Reason
	}
	return fmt.Sprintf("extraction failed for %q: %s", e.Unit, e.Reason)
}

// SpecError reports an invalid ToolSpec. Raised before any emission occurs.
type SpecError struct {
	Field  string
	Reason string
}

func (e *SpecError) Error() string {
	if e.Field == "" {
		return "invalid tool spec: " + e.Reason
	}
	return fmt.Sprintf("invalid tool spec: field %q: %s", e.Field, e.Reason)
}
