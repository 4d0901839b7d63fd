// Package extract turns tool source text into the structural model the rule
// engine consumes. Extraction is purely shape-based: it reads the marker,
// the signature, the doc comment and the surface structure of the body, and
// never evaluates or type-checks anything.
package extract

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"unicode"

	"github.com/soundmesh/toolwright/pkg/domain"
)

// markerDirective is the canonical registration marker, written as the last
// line of a tool's doc comment: //mcp:tool set_tempo
const markerDirective = "//mcp:tool"

// Source extracts every top-level function in src into a ToolDefinition, in
// declaration order. Functions without a body yield a per-unit
// ExtractionError; those are joined into the returned error while the
// remaining definitions are still returned, so one broken unit never sinks
// the batch. A source unit that does not parse at all returns only an
// ExtractionError.
func Source(src string) ([]domain.ToolDefinition, error) {
	file, err := parseUnit(src)
	if err != nil {
		return nil, err
	}

	var (
		defs []domain.ToolDefinition
		errs []error
	)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}
		def, err := extractFunc(fn)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, *def)
	}
	return defs, errors.Join(errs...)
}

// Function extracts the single named function from src. With an empty name,
// src must contain exactly one function.
func Function(src, name string) (*domain.ToolDefinition, error) {
	defs, err := Source(src)
	if err != nil && defs == nil {
		return nil, err
	}
	if name == "" {
		if len(defs) != 1 {
			return nil, &domain.ExtractionError{Reason: "source must contain exactly one function"}
		}
		return &defs[0], nil
	}
	for i := range defs {
		if defs[i].FuncName == name || defs[i].Name == name {
			return &defs[i], nil
		}
	}
	return nil, &domain.ExtractionError{Unit: name, Reason: "function not found"}
}

// parseUnit accepts either a complete file or a bare snippet of one or more
// function declarations, the way validation tooling usually receives them.
func parseUnit(src string) (*ast.File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "tool.go", src, parser.ParseComments)
	if err == nil {
		return file, nil
	}
	file, retryErr := parser.ParseFile(fset, "tool.go", "package tools\n\n"+src, parser.ParseComments)
	if retryErr == nil {
		return file, nil
	}
	return nil, &domain.ExtractionError{Reason: err.Error()}
}

func extractFunc(fn *ast.FuncDecl) (*domain.ToolDefinition, error) {
	if fn.Body == nil {
		return nil, &domain.ExtractionError{Unit: fn.Name.Name, Reason: "function has no body"}
	}

	def := &domain.ToolDefinition{
		FuncName:      fn.Name.Name,
		GuardedParams: map[string]bool{},
	}

	def.MarkerName, def.HasMarker = parseMarker(fn.Doc)
	if def.HasMarker {
		def.Name = def.MarkerName
	} else {
		def.Name = toSnake(fn.Name.Name)
	}

	regName := extractSignature(fn, def)
	def.Doc = parseDoc(fn.Doc)
	applyDocDefaults(def)
	extractBody(fn.Body, regName, def)

	return def, nil
}

// parseMarker scans the doc comment for the registration directive and
// reports whether it is present in canonical form: the directive token, one
// space, a snake_case tool name, nothing else.
func parseMarker(doc *ast.CommentGroup) (name string, ok bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, markerDirective) {
			continue
		}
		rest := strings.TrimPrefix(c.Text, markerDirective)
		if !strings.HasPrefix(rest, " ") {
			return "", false
		}
		fields := strings.Fields(rest)
		if len(fields) != 1 || !IsSnakeCase(fields[0]) {
			return strings.TrimSpace(rest), false
		}
		return fields[0], true
	}
	return "", false
}

// extractSignature fills the signature facts and returns the name of the
// registry parameter, if the tool declares one.
func extractSignature(fn *ast.FuncDecl, def *domain.ToolDefinition) (regName string) {
	params := fn.Type.Params.List
	for i, field := range params {
		typeName := types.ExprString(field.Type)
		for _, ident := range field.Names {
			switch {
			case i == 0 && typeName == "context.Context":
				def.AcceptsContext = true
			case strings.HasSuffix(typeName, "Registry"):
				regName = ident.Name
			default:
				def.Parameters = append(def.Parameters, domain.Parameter{
					Name: ident.Name,
					Type: typeName,
				})
			}
		}
	}

	results := fn.Type.Results
	def.ReturnsText = results != nil && len(results.List) == 1 &&
		len(results.List[0].Names) == 0 &&
		types.ExprString(results.List[0].Type) == "string"
	return regName
}

// applyDocDefaults marks parameters whose description records a default
// value. Go has no default arguments, so "(default: …)" in the Args section
// is the convention's way of declaring optionality.
func applyDocDefaults(def *domain.ToolDefinition) {
	for i, p := range def.Parameters {
		desc, ok := def.Doc.Args[p.Name]
		if !ok {
			continue
		}
		if idx := strings.Index(desc, "(default: "); idx >= 0 {
			rest := desc[idx+len("(default: "):]
			if end := strings.Index(rest, ")"); end >= 0 {
				def.Parameters[i].Optional = true
				def.Parameters[i].Default = rest[:end]
			}
		}
	}
}

// IsSnakeCase reports whether s follows the exposed-name convention.
func IsSnakeCase(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case r == '_':
			if i == 0 || i == len(s)-1 || s[i-1] == '_' {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
