// Package memory contains the visibility façades over the shared coordinator.
// The View interface and its three variants implement the read/write policies
// agents use:
//
//   - PrivateView: fully isolated, uuid-scoped namespace
//   - SharedView: peer visibility (conversation + own traces + broadcasts)
//   - HierarchicalView: manager visibility (own + subordinate traces + broadcasts)
//
// No implementation inheritance is involved; each variant composes a
// Coordinator handle plus its own composition logic. Select a variant at
// wiring time and pass it around as a View (or Source, for the assembler).
package memory
