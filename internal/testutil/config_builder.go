package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ConfigDocBuilder assembles a ContextConfig YAML document for tests and
// writes it to a temp file. Example:
//
//	path := NewConfigDocBuilder().
//		Default("truncation", "observation", 800).
//		Planner("react", "truncation", "tool_args", 250).
//		Write(t)
type ConfigDocBuilder struct {
	kind     string
	defaults map[string]map[string]any
	planners map[string]map[string]map[string]any
}

// NewConfigDocBuilder creates a builder with the expected kind tag.
func NewConfigDocBuilder() *ConfigDocBuilder {
	return &ConfigDocBuilder{
		kind:     "ContextConfig",
		defaults: map[string]map[string]any{},
		planners: map[string]map[string]map[string]any{},
	}
}

// Kind overrides the document kind (for rejection tests).
func (b *ConfigDocBuilder) Kind(kind string) *ConfigDocBuilder {
	b.kind = kind
	return b
}

// Default sets a field in the defaults block (chainable).
func (b *ConfigDocBuilder) Default(block, field string, value any) *ConfigDocBuilder {
	if b.defaults[block] == nil {
		b.defaults[block] = map[string]any{}
	}
	b.defaults[block][field] = value
	return b
}

// Planner sets a field in a planner override block (chainable).
func (b *ConfigDocBuilder) Planner(name, block, field string, value any) *ConfigDocBuilder {
	if b.planners[name] == nil {
		b.planners[name] = map[string]map[string]any{}
	}
	if b.planners[name][block] == nil {
		b.planners[name][block] = map[string]any{}
	}
	b.planners[name][block][field] = value
	return b
}

// Write renders the document and writes it under t.TempDir, returning the path.
func (b *ConfigDocBuilder) Write(t *testing.T) string {
	t.Helper()

	var sb strings.Builder
	fmt.Fprintf(&sb, "kind: %s\nspec:\n", b.kind)
	sb.WriteString("  defaults:\n")
	for block, fields := range b.defaults {
		fmt.Fprintf(&sb, "    %s:\n", block)
		for field, value := range fields {
			fmt.Fprintf(&sb, "      %s: %v\n", field, value)
		}
	}
	if len(b.planners) > 0 {
		sb.WriteString("  planners:\n")
		for name, blocks := range b.planners {
			fmt.Fprintf(&sb, "    %s:\n", name)
			for block, fields := range blocks {
				fmt.Fprintf(&sb, "      %s:\n", block)
				for field, value := range fields {
					fmt.Fprintf(&sb, "        %s: %v\n", field, value)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "context_config.yaml")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write config doc: %v", err)
	}
	return path
}
