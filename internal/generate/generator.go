// Package generate synthesizes convention-correct tool source from a
// ToolSpec. Output is deterministic: the same spec always produces
// byte-identical source, and re-extracting that source yields a definition
// that passes every rule with zero manual edits.
package generate

import (
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/soundmesh/toolwright/pkg/domain"
)

var goTypes = map[string]string{
	"string": "string",
	"int":    "int",
	"float":  "float64",
	"bool":   "bool",
}

const toolTemplate = `// {{.FuncName}} implements the "{{.Name}}" tool: {{.Description}}.
//
// Args:
//
{{- if .DocLines}}
{{- range .DocLines}}
//	{{.}}
{{- end}}
{{- else}}
//	(no parameters)
{{- end}}
//
//mcp:tool {{.Name}}
func {{.FuncName}}(ctx context.Context, reg ports.Registry{{range .Params}}, {{.Name}} {{.GoType}}{{end}}) string {
{{- range .Guards}}
	if {{.Cond}} {
		return {{.Message}}
	}
{{- end}}
	if reg == nil {
		return {{.NotInitialized}}
	}
{{- if .Direct}}
	backend := reg.Backend()
	if backend == nil {
		return {{.NotInitialized}}
	}
	result, err := backend.Call(ctx, {{.Method}}{{range .Params}}, {{.Name}}{{end}})
{{- else}}
	handler := reg.Handler({{.Handler}})
	if handler == nil {
		return {{.NotInitialized}}
	}
	result, err := handler.Call(ctx, {{.Method}}{{range .Params}}, {{.Name}}{{end}})
{{- end}}
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return {{.Fallback}}
}
`

var tmpl = template.Must(template.New("tool").Parse(toolTemplate))

type paramData struct {
	Name   string
	GoType string
}

type guardData struct {
	Cond    string
	Message string
}

type toolData struct {
	Name           string
	FuncName       string
	Description    string
	Direct         bool
	Handler        string // quoted
	Method         string // quoted
	Params         []paramData
	Guards         []guardData
	DocLines       []string
	Fallback       string // quoted
	NotInitialized string // quoted
}

// Tool renders one gofmt-formatted tool function from the spec. The spec is
// validated before any emission; an invalid spec yields a *domain.SpecError.
func Tool(spec domain.ToolSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	data, err := build(spec)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render tool %q: %w", spec.Name, err)
	}

	formatted, err := formatSnippet(b.String())
	if err != nil {
		return "", fmt.Errorf("format tool %q: %w", spec.Name, err)
	}
	return formatted, nil
}

// File renders a complete source file containing every spec, in order, with
// the package clause and imports the generated bodies need.
func File(pkg string, specs []domain.ToolSpec) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by toolwright. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	b.WriteString("import (\n\t\"context\"\n\n\t\"github.com/soundmesh/toolwright/pkg/ports\"\n)\n\n")
	for i, spec := range specs {
		snippet, err := Tool(spec)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(snippet)
	}
	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return "", fmt.Errorf("format generated file: %w", err)
	}
	return string(src), nil
}

func build(spec domain.ToolSpec) (*toolData, error) {
	data := &toolData{
		Name:           spec.Name,
		FuncName:       camelCase(spec.Name),
		Description:    strings.TrimSuffix(spec.Description, "."),
		Direct:         spec.ResolvedMode() == domain.ModeDirect,
		Handler:        fmt.Sprintf("%q", spec.Handler),
		Method:         fmt.Sprintf("%q", spec.ResolvedMethod()),
		Fallback:       fmt.Sprintf("%q", strings.TrimSuffix(spec.Description, ".")+" completed"),
		NotInitialized: fmt.Sprintf("%q", domain.NotInitialized),
	}

	for _, p := range spec.Parameters {
		goType := goTypes[p.Type]
		data.Params = append(data.Params, paramData{Name: p.Name, GoType: goType})

		desc := p.Description
		if p.Optional && !strings.Contains(desc, "(default: ") {
			desc += fmt.Sprintf(" (default: %s)", p.Default)
		}
		data.DocLines = append(data.DocLines, p.Name+": "+desc)

		c := domain.ConstraintFor(domain.Parameter{Name: p.Name, Type: goType}, desc)
		if c == nil {
			continue
		}
		data.Guards = append(data.Guards, guardData{
			Cond:    guardCond(p.Name, c),
			Message: fmt.Sprintf("%q", c.Violation(p.Name)),
		})
	}
	return data, nil
}

// guardCond renders the violation condition for a constrained parameter.
func guardCond(name string, c *domain.Constraint) string {
	if c.Kind == domain.ConstraintEnum {
		parts := make([]string, len(c.Choices))
		for i, choice := range c.Choices {
			parts[i] = fmt.Sprintf("%s != %q", name, choice)
		}
		return strings.Join(parts, " && ")
	}
	return fmt.Sprintf("%s < %s || %s > %s",
		name, domain.FormatNumber(c.Min), name, domain.FormatNumber(c.Max))
}

// formatSnippet runs gofmt over a bare function by wrapping it in a
// throwaway package clause and stripping it again.
func formatSnippet(snippet string) (string, error) {
	const header = "package tools\n\n"
	src, err := format.Source([]byte(header + snippet))
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(src), header), nil
}

// camelCase converts a snake_case tool name to the exported Go identifier.
func camelCase(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
