package research

import (
	"context"
	"log/slog"
)

// SearchExecutor walks the plan one sub-query at a time, merging results
// into the accumulated set through the deduplicator. Sub-queries are issued
// sequentially to respect rate limits and keep result ordering deterministic.
type SearchExecutor struct {
	Client     SearchClient
	Logger     *slog.Logger
	MaxSources int
	TimeRange  string
}

// Step executes the sub-query at the current plan index. A failed search is
// logged and treated as zero results; the step index still advances so the
// run never stalls on a bad step.
func (e *SearchExecutor) Step(ctx context.Context, st State) Update {
	if st.CurrentStep >= len(st.Plan) {
		return Update{NextAction: ActionAnalyze}
	}

	query := st.Plan[st.CurrentStep]
	budget := perStepBudget(e.MaxSources, len(st.Plan))

	e.Logger.Info("Executing search step",
		"step", st.CurrentStep+1, "total", len(st.Plan), "query", query, "budget", budget)

	results, err := e.Client.Search(ctx, query, SearchOptions{
		MaxResults: budget,
		TimeRange:  e.TimeRange,
	})
	if err != nil {
		e.Logger.Error("Search step failed", "query", query, "error", err)
		results = nil
	}

	merged := Dedupe(st.SearchResults, results)
	next := st.CurrentStep + 1

	action := ActionSearch
	if next >= len(st.Plan) {
		action = ActionAnalyze
	}

	e.Logger.Info("Search step complete",
		"query", query, "new", len(results), "accumulated", len(merged))

	return Update{
		SearchResults: merged,
		CurrentStep:   &next,
		NextAction:    action,
	}
}

// perStepBudget spreads the total source budget across plan steps,
// rounding up.
func perStepBudget(maxSources, planLen int) int {
	if planLen <= 0 {
		return maxSources
	}
	return (maxSources + planLen - 1) / planLen
}
