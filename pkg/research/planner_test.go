package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlannerParsesNumberedLines(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		"1. Acme Corp token economics design\n" +
			"2) Acme Corp competitor landscape\n" +
			"- Acme Corp founding team background\n" +
			"short\n" +
			"• Acme Corp revenue and traction",
	}}
	p := &Planner{LLM: llm, Logger: discard}

	plan := p.Plan(context.Background(), "Acme Corp tokenomics")

	assert.Equal(t, []string{
		"Acme Corp token economics design",
		"Acme Corp competitor landscape",
		"Acme Corp founding team background",
		"Acme Corp revenue and traction",
	}, plan)
}

func TestPlannerCapsAtSix(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		"query number one here\nquery number two here\nquery number three here\n" +
			"query number four here\nquery number five here\nquery number six here\n" +
			"query number seven here",
	}}
	p := &Planner{LLM: llm, Logger: discard}

	plan := p.Plan(context.Background(), "anything")
	assert.Len(t, plan, 6)
}

func TestPlannerFallsBackOnError(t *testing.T) {
	p := &Planner{LLM: &fakeLLM{err: errors.New("model unavailable")}, Logger: discard}

	plan := p.Plan(context.Background(), "Acme Corp tokenomics")
	assert.Equal(t, []string{"Acme Corp tokenomics"}, plan)
}

func TestPlannerFallsBackOnUnusableOutput(t *testing.T) {
	p := &Planner{LLM: &fakeLLM{responses: []string{"ok\n-\n1."}}, Logger: discard}

	plan := p.Plan(context.Background(), "Acme Corp tokenomics")
	assert.Equal(t, []string{"Acme Corp tokenomics"}, plan)
}
