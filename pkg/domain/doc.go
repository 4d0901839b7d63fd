/*
Package domain defines the shared structural model of a conformant tool.

The validator, the template generator and the mock harness all reason about
the same shapes: ToolDefinition (what a tool looks like), ToolSpec (what a
tool should look like) and the report types (what we concluded about it).
Keeping them in one package is what guarantees the three components never
disagree about the contract.
*/
package domain
