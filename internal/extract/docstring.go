package extract

import (
	"go/ast"
	"strings"

	"github.com/soundmesh/toolwright/pkg/domain"
)

// parseDoc builds the structured docstring from a doc comment. The summary
// is the first paragraph; parameter descriptions come from the "Args:"
// section, one "name: description" line per parameter, with indented
// continuation lines folded into the previous entry.
//
// ast.CommentGroup.Text already drops directive lines, so the registration
// marker never leaks into the docstring.
func parseDoc(doc *ast.CommentGroup) domain.Docstring {
	ds := domain.Docstring{Args: map[string]string{}}
	if doc == nil {
		return ds
	}

	var summary []string
	summaryDone := false
	inArgs := false
	lastArg := ""

	for _, raw := range strings.Split(doc.Text(), "\n") {
		line := strings.TrimSpace(raw)
		if line == "Args:" {
			inArgs = true
			summaryDone = true
			lastArg = ""
			continue
		}
		if inArgs {
			if line == "" {
				continue
			}
			name, desc, found := strings.Cut(line, ":")
			name = strings.TrimSpace(name)
			if found && IsSnakeCase(name) {
				ds.Args[name] = strings.TrimSpace(desc)
				lastArg = name
			} else if lastArg != "" {
				// Wrapped description line.
				ds.Args[lastArg] += " " + line
			}
			continue
		}
		if !summaryDone {
			if line == "" {
				summaryDone = len(summary) > 0
				continue
			}
			summary = append(summary, line)
		}
	}

	ds.Summary = strings.Join(summary, " ")
	return ds
}
