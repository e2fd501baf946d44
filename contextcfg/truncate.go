package contextcfg

import (
	"encoding/json"
	"fmt"
)

// truncationMarker is the fixed suffix appended when content exceeds its
// limit. The %d is the number of removed characters.
const truncationMarker = "\n... [TRUNCATED: %d chars removed]"

// Truncate returns content unchanged when it fits the limit; otherwise it
// returns the first limit characters plus the truncation marker. Limits count
// characters, not bytes, so multibyte content is never split mid-rune. A
// negative limit is clamped to zero. It is a pure function of
// (content, limit) and the log-truncation toggle.
//
// Re-applying Truncate with the same limit to its own output truncates again,
// because the marker pushes the output past the limit. Only a limit covering
// the whole output makes re-application a no-op.
func (c *Config) Truncate(content string, limit int, field, planner string) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}

	removed := len(runes) - limit

	if c.LogTruncation() {
		msg := "Context truncated"
		args := []any{"field", field, "planner", planner, "original_len", len(runes), "limit", limit, "removed", removed}
		if c.logTruncationLevel == "DEBUG" {
			c.logger.Debug(msg, args...)
		} else {
			c.logger.Info(msg, args...)
		}
	}

	return string(runes[:limit]) + fmt.Sprintf(truncationMarker, removed)
}

// TruncateJSON serializes data to indented JSON (falling back to a plain
// string rendering when serialization fails) and truncates the result.
func (c *Config) TruncateJSON(data any, limit int, field, planner string) string {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return c.Truncate(fmt.Sprintf("%v", data), limit, field, planner)
	}
	return c.Truncate(string(content), limit, field, planner)
}
