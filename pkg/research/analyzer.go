package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	maxResultsInPrompt = 15
	minFindingLen      = 20
	maxFindings        = 8
	maxCitedSources    = 10
)

// ResultAnalyzer extracts structured findings from accumulated results and
// scores its own confidence in them.
type ResultAnalyzer struct {
	LLM    LLMClient
	Scorer *Scorer
	Logger *slog.Logger

	ConfidenceThreshold float64
	EnableRefinement    bool
}

// Analyze turns the accumulated search results into bullet findings, computes
// the confidence score, and decides whether to refine or synthesize. With no
// results at all it short-circuits to synthesis at floor confidence.
func (a *ResultAnalyzer) Analyze(ctx context.Context, st State) Update {
	a.Logger.Info("Starting analysis phase", "results", len(st.SearchResults))

	if len(st.SearchResults) == 0 {
		conf := 0.1
		return Update{
			Findings:        []string{"No sources found for analysis"},
			ConfidenceScore: &conf,
			NextAction:      ActionSynthesize,
		}
	}

	findings, failed := a.extractFindings(ctx, st)
	conf := a.Scorer.Score(st.SearchResults, len(findings))
	cited := citedSources(st.SearchResults)

	// A failed extraction proceeds straight to synthesis; refining on top of
	// a degraded finding would burn iterations without new signal.
	action := ActionSynthesize
	if !failed && a.EnableRefinement && conf < a.ConfidenceThreshold && st.IterationCount < st.MaxIterations-1 {
		action = ActionRefine
	}

	a.Logger.Info("Analysis complete",
		"findings", len(findings), "confidence", conf, "next", string(action))

	return Update{
		Findings:        findings,
		ConfidenceScore: &conf,
		SourcesCited:    cited,
		NextAction:      action,
	}
}

func (a *ResultAnalyzer) extractFindings(ctx context.Context, st State) ([]string, bool) {
	systemPrompt := `You are a research analyst on a venture-capital deal team.
Extract the most important insights from the search results below.
Return 5-8 findings as plain bullet points, one per line, each a complete standalone statement.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Research request: %s\n\nExecuted queries:\n", st.Query)
	for _, q := range st.Plan {
		fmt.Fprintf(&sb, "- %s\n", q)
	}
	sb.WriteString("\nSearch results:\n")
	for i, r := range st.SearchResults {
		if i >= maxResultsInPrompt {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.Snippet, r.URL)
	}

	content, err := a.LLM.Chat(ctx, []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: sb.String()},
	})
	if err != nil {
		a.Logger.Warn("Finding extraction failed, using degraded finding", "error", err)
		return []string{degradedFinding(st)}, true
	}

	findings := parseList(content, minFindingLen, maxFindings)
	if len(findings) == 0 {
		a.Logger.Warn("Analyzer produced no usable findings")
		return []string{degradedFinding(st)}, true
	}
	return findings, false
}

func degradedFinding(st State) string {
	return fmt.Sprintf("Collected %d sources on %q; detailed analysis was unavailable this pass",
		len(st.SearchResults), st.Query)
}

func citedSources(results []SearchResult) []string {
	n := len(results)
	if n > maxCitedSources {
		n = maxCitedSources
	}
	cited := make([]string, 0, n)
	for _, r := range results[:n] {
		cited = append(cited, r.URL)
	}
	return cited
}
