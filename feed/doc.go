// Package feed implements the foundational concurrent append-only log
// structure backing hivemem. Records are partitioned by (namespace, stream
// kind, optional sub key) and every partition is an ordered FIFO sequence.
//
// The store carries no business logic: stream semantics (conversation turns,
// global updates, agent traces) live in the shared package. Keeping only raw
// storage here prevents higher level packages from depending on concrete
// stream layouts.
//
// Namespaces and partitions are never reclaimed; the store lives for the
// process lifetime. Add an eviction policy in a wrapping type if finished
// namespaces become a memory concern.
package feed
