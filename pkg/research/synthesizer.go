package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Synthesizer produces the final structured report text from accumulated
// findings.
type Synthesizer struct {
	LLM    LLMClient
	Logger *slog.Logger
}

// Synthesize writes the final brief. Runs that gathered no sources get a
// fixed insufficient-information message without an LLM call; an LLM failure
// degrades to a short synthetic summary rather than aborting.
func (s *Synthesizer) Synthesize(ctx context.Context, st State) Update {
	s.Logger.Info("Starting synthesis phase", "findings", len(st.Findings))

	if len(st.Findings) == 0 || len(st.SearchResults) == 0 {
		text := fmt.Sprintf(
			"Insufficient information was gathered to research %q. "+
				"No usable sources were found; consider rephrasing the query or broadening the time range.",
			st.Query)
		return Update{Synthesis: &text, NextAction: ActionComplete}
	}

	systemPrompt := `You are writing an investment research brief for a venture-capital deal team.
Write four sections in Markdown: Executive Summary, Key Insights, Investment Implications,
and Recommendations. Be specific and ground every claim in the findings provided.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Research request: %s\n\nFindings:\n", st.Query)
	for _, f := range st.Findings {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	fmt.Fprintf(&sb, "\nConfidence: %.0f%% | Sources: %d | Iterations: %d\n",
		st.ConfidenceScore*100, len(st.SearchResults), st.IterationCount)

	content, err := s.LLM.Chat(ctx, []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: sb.String()},
	})
	if err != nil || strings.TrimSpace(content) == "" {
		s.Logger.Warn("Synthesis failed, using fallback summary", "error", err)
		text := fmt.Sprintf(
			"Research on %q gathered %d findings across %d sources, but the final synthesis "+
				"could not be generated. The individual findings are listed in the report.",
			st.Query, len(st.Findings), len(st.SearchResults))
		return Update{Synthesis: &text, NextAction: ActionComplete}
	}

	return Update{Synthesis: &content, NextAction: ActionComplete}
}
