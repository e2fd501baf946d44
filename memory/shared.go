package memory

import (
	"fmt"

	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/shared"
)

// SharedView is a peer-level memory over a shared namespace. Writes go to the
// agent's private partition; History folds in the namespace conversation and
// global updates so every peer sees the common context plus its own notes.
type SharedView struct {
	coord     *shared.Coordinator
	namespace string
	agentKey  string
}

// NewSharedView creates a peer view. Both namespace and agentKey must be
// non-empty; violations fail here, not at first use.
func NewSharedView(coord *shared.Coordinator, namespace, agentKey string) (*SharedView, error) {
	if namespace == "" || agentKey == "" {
		return nil, fmt.Errorf("shared view requires a non-empty namespace and agent key")
	}
	return &SharedView{coord: coord, namespace: namespace, agentKey: agentKey}, nil
}

// Namespace returns the shared namespace.
func (v *SharedView) Namespace() string { return v.namespace }

// AgentKey returns the view's agent key.
func (v *SharedView) AgentKey() string { return v.agentKey }

// Add appends a message to the agent's private partition.
func (v *SharedView) Add(msg feed.Record) error {
	v.coord.AppendAgentMessage(v.namespace, v.agentKey, msg)
	return nil
}

// AddGlobal broadcasts an update to all agents sharing the namespace. Useful
// for passing observations and results between workers in multi-step flows.
func (v *SharedView) AddGlobal(update feed.Record) error {
	v.coord.AppendGlobalUpdate(v.namespace, update)
	return nil
}

// History returns conversation turns (folded to message records), then the
// agent's own traces, then the namespace global updates, in that fixed order.
func (v *SharedView) History() ([]feed.Record, error) {
	conversation := foldConversation(v.coord.ListConversation(v.namespace))
	traces := v.coord.ListAgentMessages(v.namespace, v.agentKey)
	updates := v.coord.ListGlobalUpdates(v.namespace)

	out := make([]feed.Record, 0, len(conversation)+len(traces)+len(updates))
	out = append(out, conversation...)
	out = append(out, traces...)
	out = append(out, updates...)
	return out, nil
}

// Conversation returns the namespace conversation folded to message records.
func (v *SharedView) Conversation() ([]feed.Record, error) {
	return foldConversation(v.coord.ListConversation(v.namespace)), nil
}

// Traces returns the agent's own private partition.
func (v *SharedView) Traces() ([]feed.Record, error) {
	return v.coord.ListAgentMessages(v.namespace, v.agentKey), nil
}

// GlobalUpdates returns the namespace broadcast feed.
func (v *SharedView) GlobalUpdates() ([]feed.Record, error) {
	return v.coord.ListGlobalUpdates(v.namespace), nil
}
