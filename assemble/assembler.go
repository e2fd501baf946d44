package assemble

import (
	"fmt"

	"github.com/hivemem/hivemem/contextcfg"
	"github.com/hivemem/hivemem/feed"
	"github.com/hivemem/hivemem/logging"
	"github.com/hivemem/hivemem/memory"
)

// Section names recognized by the assembler. A planner's configured
// context_sections may reorder or disable them; unknown section names are
// skipped with a warning.
const (
	SectionConversation  = "conversation"
	SectionTraces        = "traces"
	SectionGlobalUpdates = "global_updates"
)

// defaultOrder is used when a planner has no configured sections.
var defaultOrder = []string{SectionConversation, SectionTraces, SectionGlobalUpdates}

// Assembler applies a planner's policy to a memory source, producing the
// bounded, ordered record payload handed to the prompt builder. It owns no
// state beyond its handles and is safe for concurrent use.
type Assembler struct {
	cfg    *contextcfg.Config
	logger logging.Logger
}

// New constructs an assembler. A nil logger is substituted with NoOpLogger.
func New(cfg *contextcfg.Config, logger logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Assembler{cfg: cfg, logger: logger}
}

// Build reads the source category by category and applies the planner's
// policy: inclusion flags, tail caps, and per-record content truncation.
// Sections run in configured order (or conversation, traces, global updates
// when none are configured) and the results are flattened in that order.
func (a *Assembler) Build(planner string, src memory.Source) ([]feed.Record, error) {
	order := a.sectionOrder(planner)

	var out []feed.Record
	for _, section := range order {
		recs, err := a.buildSection(planner, section, src)
		if err != nil {
			return nil, fmt.Errorf("assemble %s section for %s: %w", section.Name, planner, err)
		}
		out = append(out, recs...)
	}
	return out, nil
}

// sectionOrder resolves the effective section list for a planner. Configured
// sections come back pre-sorted by position from the policy model. A planner
// whose configured sections are all disabled gets an empty order, not the
// default one.
func (a *Assembler) sectionOrder(planner string) []contextcfg.ContextSection {
	if a.cfg.HasSections(planner) {
		return a.cfg.Sections(planner)
	}
	sections := make([]contextcfg.ContextSection, len(defaultOrder))
	for i, name := range defaultOrder {
		sections[i] = contextcfg.ContextSection{Name: name, Enabled: true, Position: i}
	}
	return sections
}

func (a *Assembler) buildSection(planner string, section contextcfg.ContextSection, src memory.Source) ([]feed.Record, error) {
	switch section.Name {
	case SectionConversation:
		if !a.cfg.IncludeConversation(planner) {
			return nil, nil
		}
		recs, err := src.Conversation()
		if err != nil {
			return nil, err
		}
		recs = tail(recs, capOr(section.MaxOutputs, a.cfg.MaxConversationTurns(planner)))
		return recs, nil

	case SectionTraces:
		if !a.cfg.IncludeTraces(planner) {
			return nil, nil
		}
		recs, err := src.Traces()
		if err != nil {
			return nil, err
		}
		recs = tail(recs, capOr(section.MaxOutputs, a.cfg.MaxTraces(planner)))
		return a.truncateContents(planner, contextcfg.FieldObservation, recs), nil

	case SectionGlobalUpdates:
		if !a.cfg.IncludeGlobalUpdates(planner) {
			return nil, nil
		}
		recs, err := src.GlobalUpdates()
		if err != nil {
			return nil, err
		}
		if section.MaxOutputs > 0 {
			recs = tail(recs, section.MaxOutputs)
		}
		return a.truncateContents(planner, contextcfg.FieldPreviousOutput, recs), nil

	default:
		a.logger.Warn("Unknown context section skipped", "section", section.Name, "planner", planner)
		return nil, nil
	}
}

// capOr prefers the section's own MaxOutputs when set, else the policy cap.
func capOr(maxOutputs, policyCap int) int {
	if maxOutputs > 0 {
		return maxOutputs
	}
	return policyCap
}

// tail keeps the most recent n records. n <= 0 means unlimited.
func tail(recs []feed.Record, n int) []feed.Record {
	if n <= 0 || len(recs) <= n {
		return recs
	}
	return recs[len(recs)-n:]
}

// truncateContents bounds each record's content string by the planner's limit
// for the given field. Records without a string content pass through intact;
// the source snapshot is already a copy, so in-place writes are safe.
func (a *Assembler) truncateContents(planner, field string, recs []feed.Record) []feed.Record {
	limit := a.cfg.TruncationLimit(planner, field)
	for _, rec := range recs {
		content, ok := rec["content"].(string)
		if !ok {
			continue
		}
		rec["content"] = a.cfg.Truncate(content, limit, field, planner)
	}
	return recs
}
