package contextcfg

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables applied on top of the document. Global variables
// rewrite the default and every already-materialized planner policy in place;
// planner-scoped variables patch only their planner.
const (
	EnvStrategicPlanLen    = "AGENT_STRATEGIC_PLAN_TRUNCATE_LEN"
	EnvDirectorContextLen  = "AGENT_DIRECTOR_CONTEXT_TRUNCATE_LEN"
	EnvDataModelContextLen = "AGENT_DATA_MODEL_CONTEXT_TRUNCATE_LEN"
	EnvObservationLen      = "AGENT_OBSERVATION_TRUNCATE_LEN"
	EnvToolArgsLen         = "AGENT_TOOL_ARGS_TRUNCATE_LEN"
	EnvPreviousOutputLen   = "AGENT_PREVIOUS_OUTPUT_TRUNCATE_LEN"
	EnvManifestLen         = "AGENT_MANIFEST_TRUNCATE_LEN"

	EnvMaxConversationTurns = "AGENT_MAX_CONVERSATION_TURNS"
	EnvMaxTraces            = "AGENT_MAX_EXECUTION_TRACES"
	EnvIncludeConversation  = "AGENT_INCLUDE_CONVERSATION"
	EnvIncludeTraces        = "AGENT_INCLUDE_TRACES"
	EnvIncludeGlobalUpdates = "AGENT_INCLUDE_GLOBAL_UPDATES"

	EnvLogTruncation = "AGENT_LOG_TRUNCATION"

	EnvReactObservationLen      = "AGENT_REACT_OBS_TRUNCATE_LEN"
	EnvReactIncludeHistory      = "AGENT_REACT_INCLUDE_HISTORY"
	EnvReactIncludeTraces       = "AGENT_REACT_INCLUDE_TRACES"
	EnvReactIncludeGlobal       = "AGENT_REACT_INCLUDE_GLOBAL_UPDATES"
	EnvReactMaxHistoryMessages  = "AGENT_REACT_MAX_HISTORY_MESSAGES"
	EnvRouterMaxHistoryMessages = "AGENT_ROUTER_MAX_HISTORY_MESSAGES"
	EnvRouterIncludeHistory     = "AGENT_ROUTER_INCLUDE_HISTORY"
	EnvRouterStrategicPlanLen   = "AGENT_ROUTER_STRATEGIC_PLAN_TRUNCATE_LEN"
	EnvOrchestratorMaxTurns     = "AGENT_ORCHESTRATOR_MAX_HISTORY_TURNS"
	EnvStrategicIncludeHistory  = "STRATEGIC_INCLUDE_HISTORY_WITH_DIRECTOR"
)

var globalTruncationEnv = map[string]string{
	EnvStrategicPlanLen:    FieldStrategicPlan,
	EnvDirectorContextLen:  FieldDirectorContext,
	EnvDataModelContextLen: FieldDataModelContext,
	EnvObservationLen:      FieldObservation,
	EnvToolArgsLen:         FieldToolArgs,
	EnvPreviousOutputLen:   FieldPreviousOutput,
	EnvManifestLen:         FieldManifest,
}

func parseEnvBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// applyEnvOverrides runs once at construction, after the document layer.
// Malformed integer values are logged and skipped, never fatal.
func (c *Config) applyEnvOverrides() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for env, field := range globalTruncationEnv {
		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			c.logger.Warn("Invalid integer in env override", "var", env, "value", value)
			continue
		}
		c.defaults.Truncation.setField(field, n)
		for _, p := range c.planners {
			p.Truncation.setField(field, n)
		}
	}

	c.applyGlobalHistoryInt(EnvMaxConversationTurns, func(h *HistoryFlags, n int) { h.MaxConversationTurns = n })
	c.applyGlobalHistoryInt(EnvMaxTraces, func(h *HistoryFlags, n int) { h.MaxTraces = n })
	c.applyGlobalHistoryBool(EnvIncludeConversation, func(h *HistoryFlags, b bool) { h.IncludeConversation = b })
	c.applyGlobalHistoryBool(EnvIncludeTraces, func(h *HistoryFlags, b bool) { h.IncludeTraces = b })
	c.applyGlobalHistoryBool(EnvIncludeGlobalUpdates, func(h *HistoryFlags, b bool) { h.IncludeGlobalUpdates = b })

	if value, ok := os.LookupEnv(EnvLogTruncation); ok {
		c.logTruncation = parseEnvBool(value)
	}

	c.applyPlannerEnvOverrides()
}

func (c *Config) applyGlobalHistoryInt(env string, set func(*HistoryFlags, int)) {
	value, ok := os.LookupEnv(env)
	if !ok {
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.logger.Warn("Invalid integer in env override", "var", env, "value", value)
		return
	}
	set(&c.defaults.History, n)
	for _, p := range c.planners {
		set(&p.History, n)
	}
}

func (c *Config) applyGlobalHistoryBool(env string, set func(*HistoryFlags, bool)) {
	value, ok := os.LookupEnv(env)
	if !ok {
		return
	}
	b := parseEnvBool(value)
	set(&c.defaults.History, b)
	for _, p := range c.planners {
		set(&p.History, b)
	}
}

// applyPlannerEnvOverrides patches the three planners with dedicated env
// knobs. Accessing them here materializes their policies, so the scoped
// values survive later lookups. Caller must hold c.mu.
func (c *Config) applyPlannerEnvOverrides() {
	react := c.getOrCreateLocked(PlannerReact)
	c.scopedInt(EnvReactObservationLen, func(n int) { react.Truncation.Observation = n })
	c.scopedBool(EnvReactIncludeHistory, func(b bool) { react.History.IncludeConversation = b })
	c.scopedBool(EnvReactIncludeTraces, func(b bool) { react.History.IncludeTraces = b })
	c.scopedBool(EnvReactIncludeGlobal, func(b bool) { react.History.IncludeGlobalUpdates = b })
	c.scopedInt(EnvReactMaxHistoryMessages, func(n int) { react.History.MaxTraces = n })

	router := c.getOrCreateLocked(PlannerRouter)
	c.scopedInt(EnvRouterMaxHistoryMessages, func(n int) { router.History.MaxConversationTurns = n })
	c.scopedBool(EnvRouterIncludeHistory, func(b bool) { router.History.IncludeConversation = b })
	c.scopedInt(EnvRouterStrategicPlanLen, func(n int) { router.Truncation.StrategicPlan = n })

	strategic := c.getOrCreateLocked(PlannerStrategic)
	c.scopedInt(EnvOrchestratorMaxTurns, func(n int) { strategic.History.MaxConversationTurns = n })
	c.scopedBool(EnvStrategicIncludeHistory, func(b bool) { strategic.History.IncludeConversation = b })
}

func (c *Config) scopedInt(env string, set func(int)) {
	value := os.Getenv(env)
	if value == "" {
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.logger.Warn("Invalid integer in env override", "var", env, "value", value)
		return
	}
	set(n)
}

func (c *Config) scopedBool(env string, set func(bool)) {
	value := os.Getenv(env)
	if value == "" {
		return
	}
	set(parseEnvBool(value))
}
