package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest describes one configured agent: identity plus the tools it
// exposes. It is produced at build/deploy time and rendered read-only by the
// documentation server.
type Manifest struct {
	AgentName   string `json:"agent_name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Tools       []Tool `json:"tools"`
}

// Tool documents a single callable tool with its parameter and return
// schemas.
type Tool struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  map[string]Param `json:"parameters,omitempty"`
	Required    []string         `json:"required,omitempty"`
	Returns     *ReturnSchema    `json:"returns,omitempty"`
}

// Param is one named tool parameter.
type Param struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// ReturnSchema describes a tool's return value. Either Type (scalar results)
// or Properties (object results) is set.
type ReturnSchema struct {
	Type       string           `json:"type,omitempty"`
	Properties map[string]Param `json:"properties,omitempty"`
	Required   []string         `json:"required,omitempty"`
}

// Load reads and parses a manifest document from disk.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
