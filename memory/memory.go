package memory

import (
	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/shared"
)

// Message type labels used when conversation turns are folded into a view's
// combined history.
const (
	TypeUserMessage      = "user_message"
	TypeAssistantMessage = "assistant_message"
)

// View is a read/write capability over the shared coordinator implementing
// one visibility policy. Writes always target the view's own agent partition;
// History composes the partitions the policy allows into a single ordered
// sequence.
type View interface {
	Add(msg feed.Record) error
	History() ([]feed.Record, error)
}

// Source exposes a view's history split into its constituent categories. The
// assembler consumes this to apply per-category inclusion flags and caps
// before flattening into the final payload.
type Source interface {
	Conversation() ([]feed.Record, error)
	Traces() ([]feed.Record, error)
	GlobalUpdates() ([]feed.Record, error)
}

// foldConversation maps conversation turns to generic message records.
// Unrecognized roles are dropped, never surfaced as errors.
func foldConversation(turns []shared.ConversationTurn) []feed.Record {
	out := make([]feed.Record, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case shared.RoleUser:
			out = append(out, feed.Record{"type": TypeUserMessage, "content": turn.Content})
		case shared.RoleAssistant:
			out = append(out, feed.Record{"type": TypeAssistantMessage, "content": turn.Content})
		}
	}
	return out
}
