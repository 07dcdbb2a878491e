package research

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	minQueryLen = 10
	maxPlanSize = 6
)

// Planner converts the raw query into an ordered sub-query plan.
type Planner struct {
	LLM    LLMClient
	Logger *slog.Logger
}

// Plan asks the model for 4-6 focused research angles. Any planning failure
// falls back to a single-element plan containing the original query, so the
// pipeline can always proceed to search.
func (p *Planner) Plan(ctx context.Context, query string) []string {
	p.Logger.Info("Starting planning phase", "query", query)

	systemPrompt := `You are a research planner for a venture-capital deal team.
Break the research request into 4-6 focused search queries, each covering a distinct angle
(company fundamentals, market, competitors, team, traction, risks).
Return one query per line with no numbering and no commentary.`

	input := fmt.Sprintf("Research request: %s", query)

	content, err := p.LLM.Chat(ctx, []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: input},
	})
	if err != nil {
		p.Logger.Warn("Planning failed, falling back to original query", "error", err)
		return []string{query}
	}

	queries := parseList(content, minQueryLen, maxPlanSize)
	if len(queries) == 0 {
		p.Logger.Warn("Planner produced no usable queries, falling back to original query")
		return []string{query}
	}

	p.Logger.Info("Generated research plan", "queries", queries)
	return queries
}
