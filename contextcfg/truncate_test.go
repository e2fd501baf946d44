package contextcfg

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_UnderLimitUnchanged(t *testing.T) {
	c := New()
	assert.Equal(t, "short", c.Truncate("short", 10, FieldObservation, "react"))
	assert.Equal(t, "exact", c.Truncate("exact", 5, FieldObservation, "react"))
}

func TestTruncate_MarkerFormat(t *testing.T) {
	c := New()
	got := c.Truncate("abcdefghij", 5, FieldObservation, "react")
	assert.Equal(t, "abcde\n... [TRUNCATED: 5 chars removed]", got)
}

func TestTruncate_ReapplySameLimitTruncatesMarker(t *testing.T) {
	c := New()
	first := c.Truncate("abcdefghij", 5, FieldObservation, "react")

	// the marker pushes the output past the limit, so a second pass with the
	// same limit cuts into it again rather than being a no-op
	second := c.Truncate(first, 5, FieldObservation, "react")
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "abcde\n"))
	assert.Equal(t, fmt.Sprintf("abcde"+truncationMarker, len(first)-5), second)

	// a limit covering the marker makes re-application a no-op
	assert.Equal(t, first, c.Truncate(first, len(first), FieldObservation, "react"))
}

func TestTruncate_ZeroLimit(t *testing.T) {
	c := New()
	got := c.Truncate("abc", 0, FieldObservation, "react")
	assert.Equal(t, "\n... [TRUNCATED: 3 chars removed]", got)
}

func TestTruncate_NegativeLimitClampedToZero(t *testing.T) {
	c := New()

	assert.NotPanics(t, func() {
		got := c.Truncate("hello world", -5, FieldObservation, "react")
		assert.Equal(t, "\n... [TRUNCATED: 11 chars removed]", got)
	})

	// a negative env value flows through the policy lookup unchanged and must
	// stay recoverable at the truncation site
	t.Setenv(EnvObservationLen, "-5")
	c = New()
	limit := c.TruncationLimit("react", FieldObservation)
	assert.NotPanics(t, func() {
		c.Truncate("hello world", limit, FieldObservation, "react")
	})
}

func TestTruncate_MultibyteOnRuneBoundary(t *testing.T) {
	c := New()

	got := c.Truncate("ééééé", 2, FieldObservation, "react")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "éé\n... [TRUNCATED: 3 chars removed]", got)

	// five runes fit a limit of five regardless of byte length
	assert.Equal(t, "ééééé", c.Truncate("ééééé", 5, FieldObservation, "react"))
}

func TestTruncateJSON_SerializesThenTruncates(t *testing.T) {
	c := New()
	data := map[string]any{"key": "value"}

	got := c.TruncateJSON(data, 10_000, FieldToolArgs, "react")
	assert.Equal(t, "{\n  \"key\": \"value\"\n}", got)

	small := c.TruncateJSON(data, 4, FieldToolArgs, "react")
	assert.True(t, strings.HasPrefix(small, "{\n  "))
	assert.Contains(t, small, "[TRUNCATED:")
}

func TestTruncateJSON_UnserializableFallsBackToString(t *testing.T) {
	c := New()

	// channels cannot be marshalled; the fallback renders %v instead
	got := c.TruncateJSON(map[string]any{"ch": make(chan int)}, 10_000, FieldToolArgs, "react")
	assert.Contains(t, got, "map[")
}
