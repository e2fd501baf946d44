package contextcfg

// Truncation field names accepted by Config.TruncationLimit. They match the
// keys used in the configuration document.
const (
	FieldStrategicPlan    = "strategic_plan"
	FieldDirectorContext  = "director_context"
	FieldDataModelContext = "data_model_context"
	FieldObservation      = "observation"
	FieldToolArgs         = "tool_args"
	FieldPreviousOutput   = "previous_output"
	FieldManifest         = "manifest"
)

// Planner names with dedicated environment overrides.
const (
	PlannerReact     = "react"
	PlannerRouter    = "router"
	PlannerStrategic = "strategic"
)

// TruncationLimits holds character limits for the seven content categories a
// planner prompt may include.
type TruncationLimits struct {
	StrategicPlan    int
	DirectorContext  int
	DataModelContext int
	Observation      int
	ToolArgs         int
	PreviousOutput   int
	Manifest         int
}

func defaultTruncationLimits() TruncationLimits {
	return TruncationLimits{
		StrategicPlan:    2000,
		DirectorContext:  4000,
		DataModelContext: 6000,
		Observation:      1500,
		ToolArgs:         500,
		PreviousOutput:   5000,
		Manifest:         6000,
	}
}

// field returns the limit for a named category, with a conservative fallback
// for unknown names.
func (t TruncationLimits) field(name string) int {
	switch name {
	case FieldStrategicPlan:
		return t.StrategicPlan
	case FieldDirectorContext:
		return t.DirectorContext
	case FieldDataModelContext:
		return t.DataModelContext
	case FieldObservation:
		return t.Observation
	case FieldToolArgs:
		return t.ToolArgs
	case FieldPreviousOutput:
		return t.PreviousOutput
	case FieldManifest:
		return t.Manifest
	default:
		return 1000
	}
}

func (t *TruncationLimits) setField(name string, value int) bool {
	switch name {
	case FieldStrategicPlan:
		t.StrategicPlan = value
	case FieldDirectorContext:
		t.DirectorContext = value
	case FieldDataModelContext:
		t.DataModelContext = value
	case FieldObservation:
		t.Observation = value
	case FieldToolArgs:
		t.ToolArgs = value
	case FieldPreviousOutput:
		t.PreviousOutput = value
	case FieldManifest:
		t.Manifest = value
	default:
		return false
	}
	return true
}

// HistoryFlags controls how much history a planner prompt receives.
type HistoryFlags struct {
	MaxConversationTurns int
	MaxTraces            int
	IncludeConversation  bool
	IncludeTraces        bool
	IncludeGlobalUpdates bool
}

func defaultHistoryFlags() HistoryFlags {
	return HistoryFlags{
		MaxConversationTurns: 10,
		MaxTraces:            20,
		IncludeConversation:  true,
		IncludeTraces:        true,
		IncludeGlobalUpdates: true,
	}
}

// ContextSection configures one named block of a planner's context payload.
// MaxOutputs of 0 means unlimited.
type ContextSection struct {
	Name       string
	Enabled    bool
	Position   int
	Include    []string
	Exclude    []string
	MaxOutputs int
}

func cloneSections(sections []ContextSection) []ContextSection {
	out := make([]ContextSection, len(sections))
	for i, s := range sections {
		c := s
		c.Include = append([]string(nil), s.Include...)
		c.Exclude = append([]string(nil), s.Exclude...)
		out[i] = c
	}
	return out
}

// PlannerPolicy is the fully resolved configuration for one planner. Values
// are materialized per planner (no lookup chains at read time); the env
// override step patches materialized policies in place.
type PlannerPolicy struct {
	Name       string
	Truncation TruncationLimits
	History    HistoryFlags
	Sections   []ContextSection
}

func (p PlannerPolicy) clone() PlannerPolicy {
	c := p
	c.Sections = cloneSections(p.Sections)
	return c
}
