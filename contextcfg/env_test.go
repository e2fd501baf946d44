package contextcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_GlobalTruncationOverride(t *testing.T) {
	t.Setenv(EnvObservationLen, "777")

	c := New()
	assert.Equal(t, 777, c.TruncationLimit("react", FieldObservation))
	assert.Equal(t, 777, c.TruncationLimit("made-up-later", FieldObservation), "planners created after the override inherit it")
}

func TestEnv_GlobalOverridePatchesMaterializedPlanners(t *testing.T) {
	// the document materializes react with its own observation limit; the
	// env layer runs afterwards and must retroactively rewrite it
	path := writeConfig(t, `
kind: ContextConfig
spec:
  planners:
    react:
      truncation:
        observation: 42
`)
	t.Setenv(EnvObservationLen, "900")

	c := New(func(o *Options) { o.Path = path })
	assert.Equal(t, 900, c.TruncationLimit("react", FieldObservation))
}

func TestEnv_GlobalHistoryOverrides(t *testing.T) {
	t.Setenv(EnvMaxConversationTurns, "3")
	t.Setenv(EnvIncludeTraces, "false")

	c := New()
	assert.Equal(t, 3, c.MaxConversationTurns("router"))
	assert.False(t, c.IncludeTraces("router"))
}

func TestEnv_MalformedIntegerIgnored(t *testing.T) {
	t.Setenv(EnvObservationLen, "not-a-number")

	c := New()
	assert.Equal(t, 1500, c.TruncationLimit("react", FieldObservation))
}

func TestEnv_ReactScopedOverrides(t *testing.T) {
	t.Setenv(EnvReactObservationLen, "111")
	t.Setenv(EnvReactIncludeHistory, "no")
	t.Setenv(EnvReactMaxHistoryMessages, "7")

	c := New()
	assert.Equal(t, 111, c.TruncationLimit(PlannerReact, FieldObservation))
	assert.False(t, c.IncludeConversation(PlannerReact))
	assert.Equal(t, 7, c.MaxTraces(PlannerReact))

	// scoped overrides must not leak to other planners
	assert.Equal(t, 1500, c.TruncationLimit(PlannerRouter, FieldObservation))
	assert.True(t, c.IncludeConversation(PlannerRouter))
}

func TestEnv_RouterScopedOverrides(t *testing.T) {
	t.Setenv(EnvRouterMaxHistoryMessages, "2")
	t.Setenv(EnvRouterStrategicPlanLen, "123")

	c := New()
	assert.Equal(t, 2, c.MaxConversationTurns(PlannerRouter))
	assert.Equal(t, 123, c.TruncationLimit(PlannerRouter, FieldStrategicPlan))
	assert.Equal(t, 2000, c.TruncationLimit(PlannerStrategic, FieldStrategicPlan))
}

func TestEnv_StrategicScopedOverrides(t *testing.T) {
	t.Setenv(EnvOrchestratorMaxTurns, "4")
	t.Setenv(EnvStrategicIncludeHistory, "true")

	c := New()
	assert.Equal(t, 4, c.MaxConversationTurns(PlannerStrategic))
	assert.True(t, c.IncludeConversation(PlannerStrategic))
}

func TestEnv_ScopedMalformedIntIgnored(t *testing.T) {
	t.Setenv(EnvReactObservationLen, "NaN")

	c := New()
	assert.Equal(t, 1500, c.TruncationLimit(PlannerReact, FieldObservation))
}

func TestEnv_LogTruncationToggle(t *testing.T) {
	t.Setenv(EnvLogTruncation, "0")

	c := New()
	assert.False(t, c.LogTruncation())
}

func TestEnv_ScopedOverrideWinsOverGlobal(t *testing.T) {
	t.Setenv(EnvObservationLen, "600")
	t.Setenv(EnvReactObservationLen, "50")

	c := New()
	assert.Equal(t, 50, c.TruncationLimit(PlannerReact, FieldObservation))
	assert.Equal(t, 600, c.TruncationLimit(PlannerRouter, FieldObservation))
}
