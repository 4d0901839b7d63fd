package harness_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundmesh/toolwright/pkg/domain"
	"github.com/soundmesh/toolwright/pkg/harness"
	"github.com/soundmesh/toolwright/pkg/ports"
)

// setTempo is a conformant tool the battery should pass end to end.
func setTempo(ctx context.Context, reg ports.Registry, bpm float64) string {
	if bpm < 60 || bpm > 200 {
		return "Error: bpm must be between 60 and 200"
	}
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "set_tempo", bpm)
	if err != nil {
		return "Error: " + err.Error()
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Set the tempo completed"
}

// eagerSetTempo delegates before validating, the violation case 4 exists to
// catch.
func eagerSetTempo(ctx context.Context, reg ports.Registry, bpm float64) string {
	if reg == nil {
		return "Error: server not initialized"
	}
	handler := reg.Handler("transport")
	if handler == nil {
		return "Error: server not initialized"
	}
	result, err := handler.Call(ctx, "set_tempo", bpm)
	if err != nil {
		return "Error: " + err.Error()
	}
	if bpm < 60 || bpm > 200 {
		return "Error: bpm must be between 60 and 200"
	}
	if text, ok := result.Text(); ok {
		return text
	}
	return "Set the tempo completed"
}

func setTempoDef() *domain.ToolDefinition {
	return &domain.ToolDefinition{
		Name:      "set_tempo",
		FuncName:  "SetTempo",
		Mode:      domain.ModeDelegated,
		Handler:   "transport",
		Method:    "set_tempo",
		Delegates: true,
		Parameters: []domain.Parameter{
			{Name: "bpm", Type: "float64"},
		},
		Doc: domain.Docstring{
			Summary: "Set the tempo.",
			Args:    map[string]string{"bpm": "Tempo in beats per minute (60-200)"},
		},
	}
}

func TestBattery_ConformantToolPasses(t *testing.T) {
	report := harness.New().Run(context.Background(), setTempo, setTempoDef())

	assert.True(t, report.OverallPassed)
	require.Len(t, report.Results, 4)

	names := []string{"unavailable dependency", "happy path", "delegation failure", "invalid parameter"}
	for i, res := range report.Results {
		assert.Equal(t, names[i], res.Case)
		assert.True(t, res.Passed, "%s: %s", res.Case, res.Detail)
		assert.False(t, res.Skipped)
	}
}

func TestBattery_EagerDelegationCaught(t *testing.T) {
	report := harness.New().Run(context.Background(), eagerSetTempo, setTempoDef())

	assert.False(t, report.OverallPassed)
	var invalid domain.TestResult
	for _, res := range report.Results {
		if res.Case == "invalid parameter" {
			invalid = res
		}
	}
	assert.False(t, invalid.Passed)
	// The registry was reached before the guard fired.
	assert.Contains(t, invalid.Detail, "registry reached")
}

// A bare "60-200" description declares the same range as the parenthesized
// form, so case 4 runs instead of being skipped.
func TestBattery_BareRangeDescription(t *testing.T) {
	def := setTempoDef()
	def.Doc.Args["bpm"] = "60-200"

	report := harness.New().Run(context.Background(), setTempo, def)

	assert.True(t, report.OverallPassed)
	require.Len(t, report.Results, 4)
	last := report.Results[3]
	assert.Equal(t, "invalid parameter", last.Case)
	assert.False(t, last.Skipped)
	assert.True(t, last.Passed, last.Detail)
}

func TestBattery_NoConstrainedParameterSkipsCase4(t *testing.T) {
	def := setTempoDef()
	def.Doc.Args["bpm"] = "Tempo in beats per minute"

	report := harness.New().Run(context.Background(), setTempo, def)

	assert.True(t, report.OverallPassed)
	last := report.Results[len(report.Results)-1]
	assert.Equal(t, "invalid parameter", last.Case)
	assert.True(t, last.Skipped)
	assert.Equal(t, "no constrained parameter declared", last.Detail)
}

func TestBattery_PureToolRunsHappyPathOnly(t *testing.T) {
	pure := func(ctx context.Context, reg ports.Registry) string {
		return "catalog of transport tools"
	}
	def := &domain.ToolDefinition{
		Name:     "describe",
		FuncName: "Describe",
		Doc:      domain.Docstring{Summary: "Describe the catalog."},
	}

	report := harness.New().Run(context.Background(), pure, def)
	assert.True(t, report.OverallPassed)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "happy path", report.Results[0].Case)
	assert.True(t, report.Results[1].Skipped)
}

func TestRun_PanickingToolIsContained(t *testing.T) {
	panicky := func(ctx context.Context, reg ports.Registry) string {
		panic("boom")
	}
	def := &domain.ToolDefinition{Name: "panicky", FuncName: "Panicky"}

	report := harness.New().Run(context.Background(), panicky, def, harness.TestCase{
		Name:      "panic containment",
		Configure: func(m *harness.MockRegistry) {},
		Expect:    domain.OutcomeText,
	})

	assert.False(t, report.OverallPassed)
	require.Len(t, report.Results, 1)
	assert.Equal(t, domain.OutcomePanicked, report.Results[0].Outcome)
	assert.Contains(t, report.Results[0].Detail, "boom")
}

func TestRun_HangingToolTimesOut(t *testing.T) {
	hang := func(ctx context.Context, reg ports.Registry) string {
		time.Sleep(5 * time.Second)
		return "too late"
	}
	def := &domain.ToolDefinition{Name: "hang", FuncName: "Hang"}

	h := harness.New(harness.WithTimeout(50 * time.Millisecond))
	report := h.Run(context.Background(), hang, def, harness.TestCase{
		Name:      "hang detection",
		Configure: func(m *harness.MockRegistry) {},
		Expect:    domain.OutcomeText,
	})

	assert.False(t, report.OverallPassed)
	assert.Equal(t, domain.OutcomeHung, report.Results[0].Outcome)
}

func TestRun_CustomCase(t *testing.T) {
	report := harness.New().Run(context.Background(), setTempo, setTempoDef(), harness.TestCase{
		Name: "explicit tempo",
		Args: []any{132.0},
		Configure: func(m *harness.MockRegistry) {
			m.On("transport").Return("Tempo set to 132 BPM")
		},
		Expect:     domain.OutcomeText,
		ExpectText: "Tempo set to 132 BPM",
	})

	assert.True(t, report.OverallPassed)
}

// A delegation payload without a textual segment makes the tool fall back to
// its generated default message.
func TestRun_PayloadWithoutTextFallsBackToDefault(t *testing.T) {
	report := harness.New().Run(context.Background(), setTempo, setTempoDef(), harness.TestCase{
		Name: "payload without text",
		Args: []any{120.0},
		Configure: func(m *harness.MockRegistry) {
			m.On("transport").ReturnResult(ports.Result{
				Segments: []ports.Segment{{Type: "json", Text: `{"bpm": 120}`}},
			})
		},
		Expect:     domain.OutcomeText,
		ExpectText: "Set the tempo completed",
	})

	assert.True(t, report.OverallPassed, "%+v", report.Results)
}

func TestMockRegistry_RecordsCalls(t *testing.T) {
	m := harness.NewMockRegistry()
	m.On("transport").Return("ok")

	h := m.Handler("transport")
	require.NotNil(t, h)
	_, err := h.Call(context.Background(), "play", 1, "two")
	require.NoError(t, err)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "transport", calls[0].Handler)
	assert.Equal(t, "play", calls[0].Method)
	assert.Equal(t, []any{1, "two"}, calls[0].Args)

	assert.Nil(t, m.Handler("unknown"))
	assert.Nil(t, m.Backend())
}

func TestMockHandler_Fail(t *testing.T) {
	m := harness.NewMockRegistry()
	m.OnBackend().Fail(assert.AnError)

	_, err := m.Backend().Call(context.Background(), "ping")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, m.Calls(), 1)
}
