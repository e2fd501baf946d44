package contextcfg

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// KindContextConfig is the required kind discriminator of a configuration
// document. Documents with any other kind are rejected wholesale.
const KindContextConfig = "ContextConfig"

// Document structs use pointer fields so that absent keys can be told apart
// from explicit zero values: a planner block only overrides the fields it
// names, everything else inherits the already-parsed defaults.

type truncationDoc struct {
	StrategicPlan    *int `yaml:"strategic_plan"`
	DirectorContext  *int `yaml:"director_context"`
	DataModelContext *int `yaml:"data_model_context"`
	Observation      *int `yaml:"observation"`
	ToolArgs         *int `yaml:"tool_args"`
	PreviousOutput   *int `yaml:"previous_output"`
	Manifest         *int `yaml:"manifest"`
}

func (d truncationDoc) apply(t *TruncationLimits) {
	if d.StrategicPlan != nil {
		t.StrategicPlan = *d.StrategicPlan
	}
	if d.DirectorContext != nil {
		t.DirectorContext = *d.DirectorContext
	}
	if d.DataModelContext != nil {
		t.DataModelContext = *d.DataModelContext
	}
	if d.Observation != nil {
		t.Observation = *d.Observation
	}
	if d.ToolArgs != nil {
		t.ToolArgs = *d.ToolArgs
	}
	if d.PreviousOutput != nil {
		t.PreviousOutput = *d.PreviousOutput
	}
	if d.Manifest != nil {
		t.Manifest = *d.Manifest
	}
}

type historyDoc struct {
	MaxConversationTurns *int  `yaml:"max_conversation_turns"`
	MaxTraces            *int  `yaml:"max_execution_traces"`
	IncludeConversation  *bool `yaml:"include_conversation"`
	IncludeTraces        *bool `yaml:"include_traces"`
	IncludeGlobalUpdates *bool `yaml:"include_global_updates"`
}

func (d historyDoc) apply(h *HistoryFlags) {
	if d.MaxConversationTurns != nil {
		h.MaxConversationTurns = *d.MaxConversationTurns
	}
	if d.MaxTraces != nil {
		h.MaxTraces = *d.MaxTraces
	}
	if d.IncludeConversation != nil {
		h.IncludeConversation = *d.IncludeConversation
	}
	if d.IncludeTraces != nil {
		h.IncludeTraces = *d.IncludeTraces
	}
	if d.IncludeGlobalUpdates != nil {
		h.IncludeGlobalUpdates = *d.IncludeGlobalUpdates
	}
}

type sectionDoc struct {
	Name       string   `yaml:"name"`
	Enabled    *bool    `yaml:"enabled"`
	Position   int      `yaml:"position"`
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
	MaxOutputs *int     `yaml:"max_outputs"`
}

func (d sectionDoc) section() ContextSection {
	s := ContextSection{Name: d.Name, Enabled: true, Position: d.Position, Include: d.Include, Exclude: d.Exclude}
	if d.Enabled != nil {
		s.Enabled = *d.Enabled
	}
	if d.MaxOutputs != nil {
		s.MaxOutputs = *d.MaxOutputs
	}
	return s
}

type plannerDoc struct {
	Truncation truncationDoc `yaml:"truncation"`
	History    historyDoc    `yaml:"history"`
	Sections   []sectionDoc  `yaml:"context_sections"`
}

type defaultsDoc struct {
	Truncation         truncationDoc `yaml:"truncation"`
	History            historyDoc    `yaml:"history"`
	LogTruncation      *bool         `yaml:"log_truncation"`
	LogTruncationLevel string        `yaml:"log_truncation_level"`
}

type specDoc struct {
	Defaults defaultsDoc           `yaml:"defaults"`
	Planners map[string]plannerDoc `yaml:"planners"`
}

type configDoc struct {
	Kind         string            `yaml:"kind"`
	Spec         specDoc           `yaml:"spec"`
	EnvOverrides map[string]string `yaml:"env_overrides"`
}

// loadDocument reads and parses the configuration document. Any failure is
// recovered: a warning is logged and the built-in defaults stay in effect.
func (c *Config) loadDocument(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		c.logger.Warn("Context config not found, using defaults", "path", path, "error", err)
		return
	}

	// expand ${VAR} references before parsing, matching the document contract
	expanded := os.ExpandEnv(string(raw))

	var doc configDoc
	if err := yaml.Unmarshal([]byte(expanded), &doc); err != nil {
		c.logger.Warn("Failed to parse context config, using defaults", "path", path, "error", err)
		return
	}

	if doc.Kind != KindContextConfig {
		c.logger.Warn("Invalid context config kind, using defaults",
			"path", path,
			"kind", doc.Kind,
			"expected", KindContextConfig,
		)
		return
	}

	c.parseSpec(doc.Spec)
	c.envOverrides = doc.EnvOverrides

	c.logger.Info("Loaded context config", "path", path)
}

// parseSpec materializes defaults first, then every named planner over them.
// Planner fields absent in the document inherit the parsed defaults, never a
// stale built-in.
func (c *Config) parseSpec(spec specDoc) {
	spec.Defaults.Truncation.apply(&c.defaults.Truncation)
	spec.Defaults.History.apply(&c.defaults.History)
	if spec.Defaults.LogTruncation != nil {
		c.logTruncation = *spec.Defaults.LogTruncation
	}
	if spec.Defaults.LogTruncationLevel != "" {
		c.logTruncationLevel = spec.Defaults.LogTruncationLevel
	}

	for name, pd := range spec.Planners {
		policy := c.defaults.clone()
		policy.Name = name
		pd.Truncation.apply(&policy.Truncation)
		pd.History.apply(&policy.History)

		sections := make([]ContextSection, 0, len(pd.Sections))
		for _, sd := range pd.Sections {
			sections = append(sections, sd.section())
		}
		// ties keep document order
		sort.SliceStable(sections, func(i, j int) bool { return sections[i].Position < sections[j].Position })
		policy.Sections = sections

		c.planners[name] = &policy
	}
}
