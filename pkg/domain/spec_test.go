package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmesh/toolwright/pkg/domain"
)

func validSpec() domain.ToolSpec {
	return domain.ToolSpec{
		Name:        "set_tempo",
		Description: "Set the tempo of the current Live set",
		Handler:     "transport",
		Parameters: []domain.SpecParameter{
			{Name: "bpm", Type: "float", Description: "Tempo in beats per minute (60-200)"},
		},
	}
}

func TestToolSpec_Validate(t *testing.T) {
	spec := validSpec()
	assert.NoError(t, spec.Validate())

	cases := []struct {
		name   string
		mutate func(*domain.ToolSpec)
		field  string
	}{
		{"missing name", func(s *domain.ToolSpec) { s.Name = "" }, "name"},
		{"name not snake_case", func(s *domain.ToolSpec) { s.Name = "SetTempo" }, "name"},
		{"missing description", func(s *domain.ToolSpec) { s.Description = "" }, "description"},
		{"delegated without handler", func(s *domain.ToolSpec) { s.Handler = "" }, "handler"},
		{"direct with handler", func(s *domain.ToolSpec) { s.Mode = "direct" }, "handler"},
		{"unknown mode", func(s *domain.ToolSpec) { s.Mode = "hybrid" }, "mode"},
		{"param missing name", func(s *domain.ToolSpec) { s.Parameters[0].Name = "" }, "parameters[0].name"},
		{"param not snake_case", func(s *domain.ToolSpec) { s.Parameters[0].Name = "BPM" }, "parameters[0].name"},
		{"unknown type", func(s *domain.ToolSpec) { s.Parameters[0].Type = "decimal" }, "parameters[0].type"},
		{"param missing description", func(s *domain.ToolSpec) { s.Parameters[0].Description = "" }, "parameters[0].description"},
		{"optional without default", func(s *domain.ToolSpec) { s.Parameters[0].Optional = true }, "parameters[0].default"},
		{"default without optional", func(s *domain.ToolSpec) { s.Parameters[0].Default = "120" }, "parameters[0].default"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(&spec)
			err := spec.Validate()
			require.Error(t, err)
			specErr, ok := err.(*domain.SpecError)
			require.True(t, ok, "expected *SpecError, got %T", err)
			assert.Equal(t, tc.field, specErr.Field)
		})
	}
}

func TestToolSpec_DuplicateParameter(t *testing.T) {
	spec := validSpec()
	spec.Parameters = append(spec.Parameters, spec.Parameters[0])
	err := spec.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestToolSpec_Resolved(t *testing.T) {
	spec := validSpec()
	assert.Equal(t, domain.ModeDelegated, spec.ResolvedMode())
	assert.Equal(t, "set_tempo", spec.ResolvedMethod())

	spec.Mode = "direct"
	spec.Handler = ""
	spec.Method = "heartbeat"
	assert.NoError(t, spec.Validate())
	assert.Equal(t, domain.ModeDirect, spec.ResolvedMode())
	assert.Equal(t, "heartbeat", spec.ResolvedMethod())
}
