package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/shared"
)

// Interface compliance (compile-time assertions)
var (
	_ View   = (*PrivateView)(nil)
	_ View   = (*SharedView)(nil)
	_ View   = (*HierarchicalView)(nil)
	_ Source = (*PrivateView)(nil)
	_ Source = (*SharedView)(nil)
	_ Source = (*HierarchicalView)(nil)
)

func newCoordinator() *shared.Coordinator {
	return shared.NewCoordinator(feed.NewStore(), nil)
}

func TestPrivateView_Isolation(t *testing.T) {
	coord := newCoordinator()
	a := NewPrivateView(coord, "default")
	b := NewPrivateView(coord, "default")

	require.NoError(t, a.Add(feed.Record{"type": "obs", "content": "a only"}))

	ha, err := a.History()
	require.NoError(t, err)
	require.Len(t, ha, 1)

	hb, err := b.History()
	require.NoError(t, err)
	assert.Empty(t, hb, "instances sharing an agent key must still be isolated")
	assert.NotEqual(t, a.Namespace(), b.Namespace())
}

func TestSharedView_ConstructorValidation(t *testing.T) {
	coord := newCoordinator()

	_, err := NewSharedView(coord, "", "w1")
	require.Error(t, err)

	_, err = NewSharedView(coord, "job1", "")
	require.Error(t, err)

	v, err := NewSharedView(coord, "job1", "w1")
	require.NoError(t, err)

	h, err := v.History()
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestHierarchicalView_ConstructorValidation(t *testing.T) {
	coord := newCoordinator()

	_, err := NewHierarchicalView(coord, "", "mgr", nil)
	require.Error(t, err)

	_, err = NewHierarchicalView(coord, "job1", "", nil)
	require.Error(t, err)
}

func TestSharedView_HistoryOrderAndRoleMapping(t *testing.T) {
	coord := newCoordinator()
	ctx := context.Background()

	coord.AppendConversationTurn(ctx, "job1", shared.RoleUser, "hi")
	v, err := NewSharedView(coord, "job1", "w1")
	require.NoError(t, err)
	require.NoError(t, v.Add(feed.Record{"type": "obs", "content": "x"}))

	h, err := v.History()
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, feed.Record{"type": TypeUserMessage, "content": "hi"}, h[0])
	assert.Equal(t, "x", h[1]["content"])

	coord.AppendConversationTurn(ctx, "job1", shared.RoleAssistant, "hello")
	require.NoError(t, v.AddGlobal(feed.Record{"type": "fact", "content": "x=1"}))

	h, err = v.History()
	require.NoError(t, err)
	require.Len(t, h, 4)
	// conversation first, then own traces, then global updates
	assert.Equal(t, TypeUserMessage, h[0]["type"])
	assert.Equal(t, TypeAssistantMessage, h[1]["type"])
	assert.Equal(t, "obs", h[2]["type"])
	assert.Equal(t, "fact", h[3]["type"])
}

func TestSharedView_UnknownRolesDropped(t *testing.T) {
	coord := newCoordinator()
	coord.AppendConversationTurn(context.Background(), "job1", shared.Role("system"), "ignored")
	coord.AppendConversationTurn(context.Background(), "job1", shared.RoleUser, "kept")

	v, err := NewSharedView(coord, "job1", "w1")
	require.NoError(t, err)

	h, err := v.History()
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "kept", h[0]["content"])
}

func TestSharedView_PeersSeeSharedButNotPrivate(t *testing.T) {
	coord := newCoordinator()
	w1, err := NewSharedView(coord, "job1", "w1")
	require.NoError(t, err)
	w2, err := NewSharedView(coord, "job1", "w2")
	require.NoError(t, err)

	require.NoError(t, w1.Add(feed.Record{"type": "obs", "content": "private to w1"}))
	require.NoError(t, w1.AddGlobal(feed.Record{"type": "fact", "content": "shared"}))

	h2, err := w2.History()
	require.NoError(t, err)
	require.Len(t, h2, 1)
	assert.Equal(t, "shared", h2[0]["content"])
}

func TestHierarchicalView_HistoryComposition(t *testing.T) {
	coord := newCoordinator()
	mgr, err := NewHierarchicalView(coord, "job1", "mgr", []string{"w1", "w2"})
	require.NoError(t, err)

	coord.AppendAgentMessage("job1", "w2", feed.Record{"n": "w2-1"})
	coord.AppendAgentMessage("job1", "w1", feed.Record{"n": "w1-1"})
	coord.AppendGlobalUpdate("job1", feed.Record{"n": "g1"})
	require.NoError(t, mgr.Add(feed.Record{"n": "mgr-1"}))

	h, err := mgr.History()
	require.NoError(t, err)
	require.Len(t, h, 4)
	// own, then team in subordinate-list order, then globals
	assert.Equal(t, "mgr-1", h[0]["n"])
	assert.Equal(t, "w1-1", h[1]["n"])
	assert.Equal(t, "w2-1", h[2]["n"])
	assert.Equal(t, "g1", h[3]["n"])
}

func TestHierarchicalView_SubordinatesCopied(t *testing.T) {
	coord := newCoordinator()
	subs := []string{"w1"}
	mgr, err := NewHierarchicalView(coord, "job1", "mgr", subs)
	require.NoError(t, err)

	subs[0] = "w2"
	assert.Equal(t, []string{"w1"}, mgr.Subordinates())
}

func TestSharedView_ScenarioConversationPlusTrace(t *testing.T) {
	coord := newCoordinator()
	coord.AppendConversationTurn(context.Background(), "job1", shared.RoleUser, "hi")
	coord.AppendAgentMessage("job1", "w1", feed.Record{"type": "obs", "content": "x"})

	v, err := NewSharedView(coord, "job1", "w1")
	require.NoError(t, err)

	h, err := v.History()
	require.NoError(t, err)
	require.Equal(t, []feed.Record{
		{"type": TypeUserMessage, "content": "hi"},
		{"type": "obs", "content": "x"},
	}, h)
}
