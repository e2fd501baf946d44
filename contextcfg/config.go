package contextcfg

import (
	"sync"

	"github.com/hivemem/hivemem/logging"
)

// Config is the resolved truncation/history policy registry. Resolution order
// is built-in defaults, then the configuration document, then environment
// variable overrides (highest precedence, applied last).
//
// Policies for unknown planner names are synthesized on first request as deep
// copies of the resolved defaults, so every planner query succeeds without a
// prior registration step.
//
// Environment overrides mutate materialized policies in place. This happens
// once inside New; concurrent reads afterwards are safe as long as no further
// overrides are applied. The registry map itself is mutex-guarded because
// lazy materialization mutates it on the read path.
type Config struct {
	mu       sync.Mutex
	defaults PlannerPolicy
	planners map[string]*PlannerPolicy

	logTruncation      bool
	logTruncationLevel string
	envOverrides       map[string]string

	logger logging.Logger
}

// Options configures Config construction.
type Options struct {
	// Path of the configuration document. Empty means built-ins + env only.
	Path string
	// Logger used for configuration warnings and truncation logging.
	Logger logging.Logger
}

// New builds a Config. Configuration problems (missing or malformed document,
// wrong kind, bad env integer) are never fatal: they are logged and the
// affected layer is skipped.
func New(optFns ...func(o *Options)) *Config {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	c := &Config{
		defaults: PlannerPolicy{
			Name:       "defaults",
			Truncation: defaultTruncationLimits(),
			History:    defaultHistoryFlags(),
		},
		planners:           make(map[string]*PlannerPolicy),
		logTruncation:      true,
		logTruncationLevel: "INFO",
		logger:             opts.Logger,
	}

	if opts.Path != "" {
		c.loadDocument(opts.Path)
	}

	c.applyEnvOverrides()

	return c
}

// getOrCreateLocked returns the policy for name, materializing it from the
// resolved defaults if absent. Caller must hold c.mu.
func (c *Config) getOrCreateLocked(name string) *PlannerPolicy {
	if p, ok := c.planners[name]; ok {
		return p
	}
	policy := c.defaults.clone()
	policy.Name = name
	c.planners[name] = &policy
	return &policy
}

// Planner returns a copy of the resolved policy for the named planner.
func (c *Config) Planner(name string) PlannerPolicy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(name).clone()
}

// Defaults returns a copy of the resolved default policy.
func (c *Config) Defaults() PlannerPolicy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaults.clone()
}

// TruncationLimit returns the character limit for a content category of the
// named planner.
func (c *Config) TruncationLimit(planner, field string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(planner).Truncation.field(field)
}

// MaxConversationTurns returns the conversation turn cap for a planner.
func (c *Config) MaxConversationTurns(planner string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(planner).History.MaxConversationTurns
}

// MaxTraces returns the execution trace cap for a planner.
func (c *Config) MaxTraces(planner string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(planner).History.MaxTraces
}

// IncludeConversation reports whether conversation history is included.
func (c *Config) IncludeConversation(planner string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(planner).History.IncludeConversation
}

// IncludeTraces reports whether execution traces are included.
func (c *Config) IncludeTraces(planner string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(planner).History.IncludeTraces
}

// IncludeGlobalUpdates reports whether global updates are included.
func (c *Config) IncludeGlobalUpdates(planner string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(planner).History.IncludeGlobalUpdates
}

// Sections returns the enabled, position-ordered context sections for a
// planner. Sections were sorted once at parse time; this only filters.
func (c *Config) Sections(planner string) []ContextSection {
	c.mu.Lock()
	defer c.mu.Unlock()
	policy := c.getOrCreateLocked(planner)
	out := make([]ContextSection, 0, len(policy.Sections))
	for _, s := range policy.Sections {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return cloneSections(out)
}

// HasSections reports whether the planner carries a configured section list,
// enabled or not. It distinguishes an explicitly disabled list, which must
// stay empty, from an unconfigured one, which callers may default.
func (c *Config) HasSections(planner string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.getOrCreateLocked(planner).Sections) > 0
}

// LogTruncation reports whether truncations should be logged.
func (c *Config) LogTruncation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logTruncation
}

// EnvOverrides returns the passthrough env_overrides block of the document.
// It is consumed by process bootstrap code, not by this package.
func (c *Config) EnvOverrides() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.envOverrides))
	for k, v := range c.envOverrides {
		out[k] = v
	}
	return out
}
