package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/shared"
)

// PrivateView is a single-agent, fully isolated memory. It self-assigns a
// globally unique namespace so instances never see each other's records even
// when sharing one coordinator, without any caller coordination.
type PrivateView struct {
	coord     *shared.Coordinator
	namespace string
	agentKey  string
}

// NewPrivateView creates an isolated view. agentKey may be empty; it defaults
// to "default".
func NewPrivateView(coord *shared.Coordinator, agentKey string) *PrivateView {
	if agentKey == "" {
		agentKey = "default"
	}
	return &PrivateView{
		coord:     coord,
		namespace: fmt.Sprintf("inmemory_%s", uuid.NewString()),
		agentKey:  agentKey,
	}
}

// Namespace returns the generated isolation namespace. Exposed mainly for
// diagnostics; callers should not write to it directly.
func (v *PrivateView) Namespace() string { return v.namespace }

// Add appends a message to the view's private partition.
func (v *PrivateView) Add(msg feed.Record) error {
	v.coord.AppendAgentMessage(v.namespace, v.agentKey, msg)
	return nil
}

// History returns the view's private partition only.
func (v *PrivateView) History() ([]feed.Record, error) {
	return v.coord.ListAgentMessages(v.namespace, v.agentKey), nil
}

// Conversation is always empty for a private view.
func (v *PrivateView) Conversation() ([]feed.Record, error) { return nil, nil }

// Traces returns the view's private partition.
func (v *PrivateView) Traces() ([]feed.Record, error) {
	return v.coord.ListAgentMessages(v.namespace, v.agentKey), nil
}

// GlobalUpdates is always empty for a private view.
func (v *PrivateView) GlobalUpdates() ([]feed.Record, error) { return nil, nil }
