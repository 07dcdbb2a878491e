package research

import "context"

// Chat message roles understood by LLMClient implementations.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged turn sent to the language model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient generates text from a list of role-tagged messages.
type LLMClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// SearchOptions controls a single web search call.
type SearchOptions struct {
	MaxResults int
	TimeRange  string // e.g. "day", "week", "month", "year"; empty means no restriction
}

// SearchClient executes a web search query and returns ranked results.
type SearchClient interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchResult is a single web search hit. Immutable once produced.
type SearchResult struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Snippet        string  `json:"snippet"`
	Source         string  `json:"source"`
	PublishedDate  string  `json:"published_date,omitempty"`
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// State is the single mutable record for one research run. It is owned by
// the Orchestrator; phase components receive a snapshot and return an Update,
// which only the orchestrator merges back.
type State struct {
	Query           string         `json:"query"`
	Plan            []string       `json:"plan"`
	CurrentStep     int            `json:"current_step"`
	SearchResults   []SearchResult `json:"search_results"`
	Findings        []string       `json:"findings"`
	ConfidenceScore float64        `json:"confidence_score"`
	SourcesCited    []string       `json:"sources_cited"`
	Synthesis       string         `json:"synthesis"`
	NextAction      Action         `json:"next_action"`
	IterationCount  int            `json:"iteration_count"`
	MaxIterations   int            `json:"max_iterations"`
}

// Options configures one research run.
type Options struct {
	MaxIterations       int
	MaxSources          int
	ConfidenceThreshold float64
	EnableRefinement    bool
	SearchTimeRange     string
}

// DefaultOptions returns the stock run configuration. The threshold and
// iteration defaults are carried over as-is and have not been empirically
// tuned; adjust per deployment.
func DefaultOptions() Options {
	return Options{
		MaxIterations:       5,
		MaxSources:          20,
		ConfidenceThreshold: 0.7,
		EnableRefinement:    true,
	}
}

// StepType classifies a step event for the UI timeline.
type StepType string

const (
	StepReasoning StepType = "reasoning"
	StepSearch    StepType = "search"
	StepAnalysis  StepType = "analysis"
	StepSynthesis StepType = "synthesis"
)

// StepStatus marks whether a phase is starting or has finished.
type StepStatus string

const (
	StepActive   StepStatus = "active"
	StepComplete StepStatus = "complete"
)

// StepEvent is emitted before and after each phase.
type StepEvent struct {
	Type      StepType   `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    StepStatus `json:"status"`
	Reasoning string     `json:"reasoning,omitempty"`
}

// ProgressFunc receives a full state snapshot after every phase merge.
type ProgressFunc func(State)

// StepFunc receives step events as phases start and finish.
type StepFunc func(StepEvent)
