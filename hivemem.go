// Package hivemem provides a high-level façade over the shared memory
// coordinator, visibility views and context-assembly policy enabling rapid
// construction of multi-agent memory wiring. Most applications interact with
// this package by:
//  1. Creating a Hivemem via New() (optionally pointing at a config document)
//  2. Opening memory views for their workers (private, shared, hierarchical)
//  3. Building bounded planner context payloads via Assemble
//
// The façade owns the single feed store instance shared by every view in the
// process. All defaults are safe for local development and testing;
// production deployments typically supply a structured logger and a tuned
// configuration document.
package hivemem

import (
	"github.com/hivemem/hivemem/assemble"
	"github.com/hivemem/hivemem/contextcfg"
	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/logging"
	"github.com/hivemem/hivemem/memory"
	"github.com/hivemem/hivemem/shared"
)

// Options configures the Hivemem instance.
type Options struct {
	// ConfigPath locates the ContextConfig document. Empty means built-in
	// defaults plus environment overrides only.
	ConfigPath string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Hivemem aggregates the shared feed store, coordinator and policy registry.
type Hivemem struct {
	opts      Options
	store     *feed.Store
	coord     *shared.Coordinator
	cfg       *contextcfg.Config
	assembler *assemble.Assembler
}

// New creates a Hivemem instance with optional overrides. The policy model's
// environment overrides are applied here, once, before any concurrent use.
func New(optFns ...func(o *Options)) *Hivemem {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	store := feed.NewStore()
	coord := shared.NewCoordinator(store, opts.Logger)
	cfg := contextcfg.New(func(o *contextcfg.Options) {
		o.Path = opts.ConfigPath
		o.Logger = opts.Logger
	})

	return &Hivemem{
		opts:      opts,
		store:     store,
		coord:     coord,
		cfg:       cfg,
		assembler: assemble.New(cfg, opts.Logger),
	}
}

// Coordinator returns the shared coordinator for direct feed access.
func (h *Hivemem) Coordinator() *shared.Coordinator { return h.coord }

// Config returns the resolved context policy registry.
func (h *Hivemem) Config() *contextcfg.Config { return h.cfg }

// PrivateMemory opens a fully isolated view for a single agent.
func (h *Hivemem) PrivateMemory(agentKey string) *memory.PrivateView {
	return memory.NewPrivateView(h.coord, agentKey)
}

// SharedMemory opens a peer view over a shared namespace.
func (h *Hivemem) SharedMemory(namespace, agentKey string) (*memory.SharedView, error) {
	return memory.NewSharedView(h.coord, namespace, agentKey)
}

// HierarchicalMemory opens a manager view over a shared namespace and its
// subordinate agents.
func (h *Hivemem) HierarchicalMemory(namespace, agentKey string, subordinates []string) (*memory.HierarchicalView, error) {
	return memory.NewHierarchicalView(h.coord, namespace, agentKey, subordinates)
}

// Assemble builds the bounded, ordered context payload for a planner from
// any memory source.
func (h *Hivemem) Assemble(planner string, src memory.Source) ([]feed.Record, error) {
	return h.assembler.Build(planner, src)
}
