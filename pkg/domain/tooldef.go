package domain

// Mode distinguishes the two body shapes a tool may take.
type Mode int

const (
	// ModeDelegated tools resolve a named handler from the registry and
	// forward the call to it. This is the default shape.
	ModeDelegated Mode = iota
	// ModeDirect tools call the registry backend without a handler lookup.
	// Used for operations with no natural sub-handler grouping.
	ModeDirect
)

func (m Mode) String() string {
	if m == ModeDirect {
		return "direct"
	}
	return "delegated"
}

// Parameter is one declared tool parameter, in signature order.
type Parameter struct {
	Name     string
	Type     string // declared Go type: string, int, float64 or bool
	Optional bool
	Default  string // literal source text, only set when Optional
}

// Docstring is the structured view of a tool's doc comment.
type Docstring struct {
	Summary string
	// Args maps parameter name to its description line from the
	// "Args:" section. Missing entries mean undocumented parameters.
	Args map[string]string
}

// BodyShape records the surface-level structure of a tool body. It is
// extracted without evaluating or type-checking anything.
type BodyShape struct {
	// HasInitGuard reports an early nil check on the registry argument
	// before any delegation.
	HasInitGuard bool
	// HasFailureBoundary reports that every delegation call's error
	// result is checked and converted to a textual return.
	HasFailureBoundary bool
	// ErrorPrefixConsistent reports that every failure-path return
	// starts with the canonical error prefix.
	ErrorPrefixConsistent bool
}

// ToolDefinition is the immutable structural model of one tool, produced by
// the extractor. Re-extract after a source change; never mutate in place.
type ToolDefinition struct {
	// Name is the externally exposed tool name (from the marker when
	// present, otherwise derived from the function name).
	Name     string
	FuncName string

	Mode    Mode
	Handler string // delegation target, delegated mode only
	Method  string // method invoked on the target
	// Delegates reports whether the body reaches the delegation layer at
	// all. Pure tools skip the registry-dependent harness cases.
	Delegates bool

	HasMarker      bool
	MarkerName     string
	AcceptsContext bool
	ReturnsText    bool

	Parameters []Parameter
	Doc        Docstring
	Body       BodyShape

	// GuardedParams is the set of parameter names with an explicit
	// validation guard executed before delegation.
	GuardedParams map[string]bool
}

// ConstrainedParams returns the parameters whose descriptions declare a
// restricted domain, in signature order.
func (d *ToolDefinition) ConstrainedParams() []Parameter {
	var out []Parameter
	for _, p := range d.Parameters {
		if ConstraintFor(p, d.Doc.Args[p.Name]) != nil {
			out = append(out, p)
		}
	}
	return out
}
