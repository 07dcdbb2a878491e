package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Orchestrator coordinates one research run through the fixed five-phase
// pipeline: plan, search, analyze, optional refine, synthesize. Phases run
// strictly sequentially; the orchestrator is the single merge point for
// state updates, so one run needs no locking. Concurrent runs must use
// separate Orchestrator calls (state is per-run, never shared).
type Orchestrator struct {
	Search     SearchClient
	LLM        LLMClient
	Options    Options
	Logger     *slog.Logger
	OnProgress ProgressFunc
	OnStep     StepFunc
}

// New builds an orchestrator. Zero numeric options are replaced with the
// stock defaults; EnableRefinement is taken as given, so start from
// DefaultOptions when refinement is wanted.
func New(search SearchClient, llm LLMClient, opts Options) *Orchestrator {
	defs := DefaultOptions()
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defs.MaxIterations
	}
	if opts.MaxSources <= 0 {
		opts.MaxSources = defs.MaxSources
	}
	if opts.ConfidenceThreshold <= 0 {
		opts.ConfidenceThreshold = defs.ConfidenceThreshold
	}
	return &Orchestrator{
		Search:  search,
		LLM:     llm,
		Options: opts,
		Logger:  slog.Default(),
	}
}

// Run executes the full pipeline for one query and returns the final state.
// External-call failures degrade inside their phase and never surface here;
// the only returned errors are context cancellation between phases and
// transition-table violations, which indicate a bug.
func (o *Orchestrator) Run(ctx context.Context, query string) (*State, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	planner := &Planner{LLM: o.LLM, Logger: logger}
	executor := &SearchExecutor{
		Client:     o.Search,
		Logger:     logger,
		MaxSources: o.Options.MaxSources,
		TimeRange:  o.Options.SearchTimeRange,
	}
	analyzer := &ResultAnalyzer{
		LLM:                 o.LLM,
		Scorer:              NewScorer(),
		Logger:              logger,
		ConfidenceThreshold: o.Options.ConfidenceThreshold,
		EnableRefinement:    o.Options.EnableRefinement,
	}
	refiner := &Refiner{LLM: o.LLM, Logger: logger, ConfidenceThreshold: o.Options.ConfidenceThreshold}
	synthesizer := &Synthesizer{LLM: o.LLM, Logger: logger}

	st := &State{
		Query:           query,
		ConfidenceScore: 0.1,
		MaxIterations:   o.Options.MaxIterations,
	}

	logger.Info("Starting research run", "query", query, "max_iterations", st.MaxIterations)

	// Plan phase runs exactly once, before the dispatch loop.
	o.emitStep(StepEvent{
		Type: StepReasoning, Title: "Planning research", Content: query, Status: StepActive,
	})
	st.Plan = planner.Plan(ctx, query)
	st.NextAction = ActionSearch
	o.emitStep(StepEvent{
		Type:      StepReasoning,
		Title:     "Planning research",
		Content:   fmt.Sprintf("Planned %d research angles", len(st.Plan)),
		Status:    StepComplete,
		Reasoning: strings.Join(st.Plan, "\n"),
	})
	o.emitProgress(*st)

	for st.NextAction != ActionComplete && st.IterationCount < st.MaxIterations {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		st.IterationCount++
		action := st.NextAction
		o.emitStep(activeEvent(action, *st))

		var upd Update
		switch action {
		case ActionSearch:
			upd = executor.Step(ctx, *st)
		case ActionAnalyze:
			upd = analyzer.Analyze(ctx, *st)
		case ActionRefine:
			upd = refiner.Refine(ctx, *st)
		case ActionSynthesize:
			upd = synthesizer.Synthesize(ctx, *st)
		}

		if err := st.apply(upd); err != nil {
			return st, err
		}
		o.emitStep(completeEvent(action, *st))
		o.emitProgress(*st)
	}

	if st.NextAction != ActionComplete {
		// Iteration cap reached: force graceful completion, not an error.
		logger.Info("Iteration cap reached, forcing completion",
			"iterations", st.IterationCount, "max", st.MaxIterations)
		st.NextAction = ActionComplete
	}

	// Final-pass guarantee: whenever any finding exists the caller gets a
	// non-empty synthesis, even when the cap cut the run short.
	if st.Synthesis == "" && len(st.Findings) > 0 {
		upd := synthesizer.Synthesize(ctx, *st)
		if upd.Synthesis != nil {
			st.Synthesis = *upd.Synthesis
		}
		o.emitProgress(*st)
	}

	logger.Info("Research run complete",
		"iterations", st.IterationCount,
		"sources", len(st.SearchResults),
		"findings", len(st.Findings),
		"confidence", st.ConfidenceScore)

	return st, nil
}

func activeEvent(a Action, st State) StepEvent {
	switch a {
	case ActionSearch:
		content := ""
		if st.CurrentStep < len(st.Plan) {
			content = st.Plan[st.CurrentStep]
		}
		return StepEvent{Type: StepSearch, Title: "Searching sources", Content: content, Status: StepActive}
	case ActionAnalyze:
		return StepEvent{
			Type: StepAnalysis, Title: "Analyzing results",
			Content: fmt.Sprintf("Reviewing %d sources", len(st.SearchResults)), Status: StepActive,
		}
	case ActionRefine:
		return StepEvent{
			Type: StepReasoning, Title: "Refining research plan",
			Content: fmt.Sprintf("Confidence at %.0f%%, looking for gaps", st.ConfidenceScore*100),
			Status:  StepActive,
		}
	default:
		return StepEvent{Type: StepSynthesis, Title: "Synthesizing report", Status: StepActive}
	}
}

func completeEvent(a Action, st State) StepEvent {
	switch a {
	case ActionSearch:
		return StepEvent{
			Type: StepSearch, Title: "Searching sources",
			Content: fmt.Sprintf("Accumulated %d unique sources", len(st.SearchResults)),
			Status:  StepComplete,
		}
	case ActionAnalyze:
		return StepEvent{
			Type: StepAnalysis, Title: "Analyzing results",
			Content:   fmt.Sprintf("Extracted %d findings at %.0f%% confidence", len(st.Findings), st.ConfidenceScore*100),
			Status:    StepComplete,
			Reasoning: strings.Join(st.Findings, "\n"),
		}
	case ActionRefine:
		content := "No productive refinements, moving to synthesis"
		if st.NextAction == ActionSearch {
			content = fmt.Sprintf("Extended plan to %d queries", len(st.Plan))
		}
		return StepEvent{Type: StepReasoning, Title: "Refining research plan", Content: content, Status: StepComplete}
	default:
		return StepEvent{Type: StepSynthesis, Title: "Synthesizing report", Content: "Report ready", Status: StepComplete}
	}
}

func (o *Orchestrator) emitStep(ev StepEvent) {
	if o.OnStep != nil {
		o.OnStep(ev)
	}
}

func (o *Orchestrator) emitProgress(st State) {
	if o.OnProgress != nil {
		o.OnProgress(st)
	}
}
