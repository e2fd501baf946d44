package memory

import (
	"fmt"

	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/shared"
)

// HierarchicalView is a manager-level memory that additionally sees the
// private partitions of its subordinates. Writes still target only the
// manager's own partition.
type HierarchicalView struct {
	coord        *shared.Coordinator
	namespace    string
	agentKey     string
	subordinates []string
}

// NewHierarchicalView creates a manager view over the given subordinate agent
// keys. Both namespace and agentKey must be non-empty; subordinates may be
// empty.
func NewHierarchicalView(coord *shared.Coordinator, namespace, agentKey string, subordinates []string) (*HierarchicalView, error) {
	if namespace == "" || agentKey == "" {
		return nil, fmt.Errorf("hierarchical view requires a non-empty namespace and agent key")
	}
	subs := make([]string, len(subordinates))
	copy(subs, subordinates)
	return &HierarchicalView{coord: coord, namespace: namespace, agentKey: agentKey, subordinates: subs}, nil
}

// Subordinates returns a copy of the subordinate key list.
func (v *HierarchicalView) Subordinates() []string {
	subs := make([]string, len(v.subordinates))
	copy(subs, v.subordinates)
	return subs
}

// Add appends a message to the manager's private partition.
func (v *HierarchicalView) Add(msg feed.Record) error {
	v.coord.AppendAgentMessage(v.namespace, v.agentKey, msg)
	return nil
}

// AddGlobal broadcasts an update to all agents sharing the namespace.
func (v *HierarchicalView) AddGlobal(update feed.Record) error {
	v.coord.AppendGlobalUpdate(v.namespace, update)
	return nil
}

// History returns the manager's own traces, then the subordinate traces
// concatenated in subordinate-list order, then the global updates. The team
// portion is a plain concatenation, not a timestamp merge.
func (v *HierarchicalView) History() ([]feed.Record, error) {
	own := v.coord.ListAgentMessages(v.namespace, v.agentKey)
	team := v.coord.ListTeamMessages(v.namespace, v.subordinates)
	updates := v.coord.ListGlobalUpdates(v.namespace)

	out := make([]feed.Record, 0, len(own)+len(team)+len(updates))
	out = append(out, own...)
	out = append(out, team...)
	out = append(out, updates...)
	return out, nil
}

// Conversation returns the namespace conversation folded to message records.
func (v *HierarchicalView) Conversation() ([]feed.Record, error) {
	return foldConversation(v.coord.ListConversation(v.namespace)), nil
}

// Traces returns the manager's own traces followed by the team concatenation.
func (v *HierarchicalView) Traces() ([]feed.Record, error) {
	own := v.coord.ListAgentMessages(v.namespace, v.agentKey)
	team := v.coord.ListTeamMessages(v.namespace, v.subordinates)
	return append(own, team...), nil
}

// GlobalUpdates returns the namespace broadcast feed.
func (v *HierarchicalView) GlobalUpdates() ([]feed.Record, error) {
	return v.coord.ListGlobalUpdates(v.namespace), nil
}
