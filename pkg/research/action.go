package research

import "fmt"

// Action drives the research state machine.
type Action string

const (
	ActionSearch     Action = "search"
	ActionAnalyze    Action = "analyze"
	ActionRefine     Action = "refine"
	ActionSynthesize Action = "synthesize"
	ActionComplete   Action = "complete"
)

// transitions is the explicit table of legal state-machine moves. A search
// step may stay in search while plan steps remain; analysis branches to
// refinement or synthesis; refinement loops back to search unless it came
// up empty; synthesis always completes.
var transitions = map[Action][]Action{
	ActionSearch:     {ActionSearch, ActionAnalyze},
	ActionAnalyze:    {ActionRefine, ActionSynthesize},
	ActionRefine:     {ActionSearch, ActionSynthesize},
	ActionSynthesize: {ActionComplete},
	ActionComplete:   {},
}

func (a Action) canTransition(to Action) bool {
	for _, next := range transitions[a] {
		if next == to {
			return true
		}
	}
	return false
}

// Update is the partial state change returned by a phase component. Nil or
// zero-valued fields leave the corresponding state field untouched.
type Update struct {
	PlanAppend      []string
	CurrentStep     *int
	SearchResults   []SearchResult // full replacement, already deduplicated
	Findings        []string       // full replacement
	ConfidenceScore *float64
	SourcesCited    []string
	Synthesis       *string
	NextAction      Action // empty means no transition
}

// apply merges an update into the state. An illegal transition per the
// transition table is reported as an error rather than silently applied.
func (s *State) apply(u Update) error {
	if u.NextAction != "" && !s.NextAction.canTransition(u.NextAction) {
		return fmt.Errorf("illegal transition %s -> %s", s.NextAction, u.NextAction)
	}
	if len(u.PlanAppend) > 0 {
		s.Plan = append(s.Plan, u.PlanAppend...)
	}
	if u.CurrentStep != nil {
		s.CurrentStep = *u.CurrentStep
	}
	if u.SearchResults != nil {
		s.SearchResults = u.SearchResults
	}
	if u.Findings != nil {
		s.Findings = u.Findings
	}
	if u.ConfidenceScore != nil {
		s.ConfidenceScore = *u.ConfidenceScore
	}
	if u.SourcesCited != nil {
		s.SourcesCited = u.SourcesCited
	}
	if u.Synthesis != nil {
		s.Synthesis = *u.Synthesis
	}
	if u.NextAction != "" {
		s.NextAction = u.NextAction
	}
	return nil
}
