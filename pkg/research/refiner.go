package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const maxRefinementQueries = 3

// Refiner generates supplemental sub-queries when confidence falls short of
// the threshold and iterations remain.
type Refiner struct {
	LLM                 LLMClient
	Logger              *slog.Logger
	ConfidenceThreshold float64
}

// Refine asks the model for 2-3 follow-up queries targeting gaps in the
// current findings. If nothing usable comes back the run proceeds straight
// to synthesis instead of looping on an unproductive refinement.
func (r *Refiner) Refine(ctx context.Context, st State) Update {
	r.Logger.Info("Starting refinement phase",
		"confidence", st.ConfidenceScore, "threshold", r.ConfidenceThreshold)

	systemPrompt := `You are a research planner refining an ongoing investigation.
Current findings are not yet sufficient. Propose 2-3 additional search queries that
target the gaps in the findings below. Return one query per line, no numbering.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Research request: %s\n\nFindings so far:\n", st.Query)
	for _, f := range st.Findings {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	fmt.Fprintf(&sb, "\nConfidence is %.0f%% against a %.0f%% target.",
		st.ConfidenceScore*100, r.ConfidenceThreshold*100)

	content, err := r.LLM.Chat(ctx, []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: sb.String()},
	})
	if err != nil {
		r.Logger.Warn("Refinement failed, proceeding to synthesis", "error", err)
		return Update{NextAction: ActionSynthesize}
	}

	queries := parseList(content, minQueryLen, maxRefinementQueries)
	if len(queries) == 0 {
		r.Logger.Info("Refinement produced no usable queries, proceeding to synthesis")
		return Update{NextAction: ActionSynthesize}
	}

	r.Logger.Info("Refinement added queries", "queries", queries)
	return Update{
		PlanAppend: queries,
		NextAction: ActionSearch,
	}
}
