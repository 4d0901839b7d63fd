/*
Package toolwright is a pattern-conformance toolchain for MCP-style tool
functions: thin, externally invocable handlers that take typed parameters,
delegate to a backend, and always answer with a single human-readable string.

It ships three tightly coupled parts built on one structural model:

  - a pattern validator that statically inspects tool source and reports
    every convention violation with an actionable diagnostic,
  - a template generator that synthesizes a new, convention-correct tool
    from a declarative spec,
  - a mock execution harness that exercises a live tool against a simulated
    delegation layer, so registration, error handling and parameter guards
    are verified without the controlled application being present.

# The convention

Every tool carries a //mcp:tool marker, accepts a context and an explicit
registry, returns exactly one string, nil-checks the registry before
delegating, converts every delegation failure into an "Error: "-prefixed
message, and documents each parameter in an Args: section. Restricted
parameter domains declared in those descriptions ("(60-200)", "one of:
audio, midi, return") must be guarded before delegation.

# Usage

	suite := toolwright.New(toolwright.WithLogger(logger))

	reports, err := suite.ValidateFile("pkg/tools/transport.go")
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range reports {
		fmt.Print(presentation.Validation(r))
	}

Generation and self-validation form a closed loop: source generated from a
ToolSpec re-extracts into a definition that passes every rule.

	src, _ := suite.Generate(spec)
	report, _ := suite.SelfCheck(spec) // always OverallPassed
*/
package toolwright
