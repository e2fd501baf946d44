package shared

import (
	"context"
	"time"

	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/logging"
)

// Role labels the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn authored by the assistant.
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one user/assistant exchange entry in a namespace's
// conversation feed. Turns are append-only and never mutated.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type jobIDKey struct{}

// WithJobID returns a context carrying the current job identifier. The
// coordinator compares it against the namespace on conversation appends to
// detect context propagation anomalies across goroutine boundaries.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, jobIDKey{}, jobID)
}

// JobIDFromContext extracts the job identifier set via WithJobID, if any.
func JobIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(jobIDKey{}).(string)
	return id, ok
}

// previewLen bounds the content excerpt included in append diagnostics.
const previewLen = 100

// Coordinator exposes the three logical feeds of a namespace (conversation
// turns, global broadcast updates, per-agent private traces) over an injected
// feed.Store. One store instance is shared by every coordinator and view in
// the process; the coordinator itself holds no state beyond its handles, so
// it is safe to construct freely.
type Coordinator struct {
	store  *feed.Store
	logger logging.Logger
}

// NewCoordinator wires a coordinator to the given store. A nil logger is
// substituted with NoOpLogger.
func NewCoordinator(store *feed.Store, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Coordinator{store: store, logger: logger}
}

// Store returns the underlying feed store.
func (c *Coordinator) Store() *feed.Store { return c.store }

func conversationKey(namespace string) feed.PartitionKey {
	return feed.PartitionKey{Namespace: namespace, Stream: feed.StreamConversation}
}

func globalKey(namespace string) feed.PartitionKey {
	return feed.PartitionKey{Namespace: namespace, Stream: feed.StreamGlobal}
}

func agentKey(namespace, agent string) feed.PartitionKey {
	return feed.PartitionKey{Namespace: namespace, Stream: feed.StreamAgent, SubKey: agent}
}

// AppendConversationTurn stamps the current time and appends a turn to the
// namespace's conversation feed. A job id propagated via WithJobID that
// differs from the namespace indicates a context propagation anomaly; it is
// surfaced as a warning and the append proceeds regardless.
func (c *Coordinator) AppendConversationTurn(ctx context.Context, namespace string, role Role, content string) ConversationTurn {
	turn := ConversationTurn{Role: role, Content: content, Timestamp: time.Now().UTC()}

	n := c.store.Append(conversationKey(namespace), feed.Record{
		"role":      string(turn.Role),
		"content":   turn.Content,
		"timestamp": turn.Timestamp,
	})

	if jobID, ok := JobIDFromContext(ctx); ok && jobID != "" && jobID != namespace {
		c.logger.Warn("Conversation append context mismatch",
			"namespace", namespace,
			"context_job_id", jobID,
		)
	}

	preview := content
	if r := []rune(preview); len(r) > previewLen {
		preview = string(r[:previewLen]) + "..."
	}
	c.logger.Info("Conversation turn appended",
		"namespace", namespace,
		"turn", n,
		"role", string(role),
		"preview", preview,
	)

	return turn
}

// AppendGlobalUpdate appends a broadcast record visible to every agent in the
// namespace.
func (c *Coordinator) AppendGlobalUpdate(namespace string, update feed.Record) {
	c.store.Append(globalKey(namespace), update)
}

// AppendAgentMessage appends a record to the agent's private trace partition.
func (c *Coordinator) AppendAgentMessage(namespace, agent string, msg feed.Record) {
	c.store.Append(agentKey(namespace, agent), msg)
}

// ListConversation returns the full conversation history for a namespace in
// append order. Records whose fields fail to type-assert are skipped.
func (c *Coordinator) ListConversation(namespace string) []ConversationTurn {
	recs := c.store.Read(conversationKey(namespace))
	turns := make([]ConversationTurn, 0, len(recs))
	for _, rec := range recs {
		role, _ := rec["role"].(string)
		content, _ := rec["content"].(string)
		ts, _ := rec["timestamp"].(time.Time)
		if role == "" {
			continue
		}
		turns = append(turns, ConversationTurn{Role: Role(role), Content: content, Timestamp: ts})
	}
	return turns
}

// ListGlobalUpdates returns the namespace's broadcast feed in append order.
func (c *Coordinator) ListGlobalUpdates(namespace string) []feed.Record {
	return c.store.Read(globalKey(namespace))
}

// ListAgentMessages returns one agent's private trace feed in append order.
func (c *Coordinator) ListAgentMessages(namespace, agent string) []feed.Record {
	return c.store.Read(agentKey(namespace, agent))
}

// ListTeamMessages concatenates each listed agent's private feed in the order
// the keys were supplied, preserving per-agent append order within each. This
// is a plain concatenation, not a timestamp merge; callers needing true
// chronological order must sort on their own timestamps.
func (c *Coordinator) ListTeamMessages(namespace string, agents []string) []feed.Record {
	keys := make([]feed.PartitionKey, len(agents))
	for i, a := range agents {
		keys[i] = agentKey(namespace, a)
	}
	return c.store.ReadMulti(keys)
}
