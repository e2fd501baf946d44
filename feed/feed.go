package feed

import (
	"sync"
)

// Record is the unit stored in a feed partition. Records are arbitrary
// structured maps; the store never interprets their contents.
type Record = map[string]any

// StreamKind identifies one of the logical feed streams within a namespace.
type StreamKind string

const (
	// StreamConversation holds turn-level user/assistant exchanges.
	StreamConversation StreamKind = "conversation"
	// StreamGlobal holds namespace-wide broadcast updates.
	StreamGlobal StreamKind = "global"
	// StreamAgent holds per-agent private execution traces (SubKey = agent key).
	StreamAgent StreamKind = "agent"
)

// PartitionKey addresses one ordered record sequence. SubKey is only set for
// StreamAgent partitions; it stays empty for conversation and global streams.
type PartitionKey struct {
	Namespace string
	Stream    StreamKind
	SubKey    string
}

// Store is a volatile, append-only feed store keyed by PartitionKey. It is
// safe for concurrent access and best suited as the single shared instance
// backing all coordinators in a process. Partitions are created lazily on
// first append; reading an absent partition yields an empty slice, never an
// error.
//
// Contract:
//   - Within a partition, append order == read order (FIFO)
//   - Append stores a shallow clone so callers cannot mutate stored records
//   - Read returns a snapshot (cloned slice + cloned records) unaffected by
//     later appends
type Store struct {
	mu         sync.RWMutex
	partitions map[PartitionKey][]Record
}

// NewStore constructs an empty feed store.
func NewStore() *Store {
	return &Store{partitions: make(map[PartitionKey][]Record)}
}

// Append adds a record to the end of the partition, creating it if absent.
// It returns the partition length after the append.
func (s *Store) Append(key PartitionKey, rec Record) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partitions[key] = append(s.partitions[key], cloneRecord(rec))
	return len(s.partitions[key])
}

// Read returns a full-order snapshot of the partition. The returned slice and
// its records are copies; subsequent appends or caller mutations do not leak
// either way.
func (s *Store) Read(key PartitionKey) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.partitions[key])
}

// ReadMulti concatenates the snapshots of several partitions in the order the
// keys were supplied. Partition order is preserved within each key; no
// cross-partition merge is attempted.
func (s *Store) ReadMulti(keys []PartitionKey) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, key := range keys {
		out = append(out, cloneRecords(s.partitions[key])...)
	}
	return out
}

// Len returns the current length of the partition (0 if absent).
func (s *Store) Len(key PartitionKey) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.partitions[key])
}

func cloneRecord(rec Record) Record {
	if rec == nil {
		return Record{}
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func cloneRecords(recs []Record) []Record {
	out := make([]Record, len(recs))
	for i, rec := range recs {
		out[i] = cloneRecord(rec)
	}
	return out
}
