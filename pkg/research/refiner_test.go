package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func refineFixture() State {
	return State{
		Query:           "Acme Corp tokenomics",
		Plan:            []string{"Acme Corp token economics design"},
		Findings:        []string{"Token unlock schedule runs over 48 months"},
		ConfidenceScore: 0.4,
		NextAction:      ActionRefine,
	}
}

func TestRefineAppendsQueries(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		"Acme Corp treasury management policy\nAcme Corp token holder concentration",
	}}
	r := &Refiner{LLM: llm, Logger: discard, ConfidenceThreshold: 0.7}

	upd := r.Refine(context.Background(), refineFixture())

	assert.Equal(t, []string{
		"Acme Corp treasury management policy",
		"Acme Corp token holder concentration",
	}, upd.PlanAppend)
	assert.Equal(t, ActionSearch, upd.NextAction)
}

func TestRefineCapsAtThree(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		"follow-up query number one\nfollow-up query number two\n" +
			"follow-up query number three\nfollow-up query number four",
	}}
	r := &Refiner{LLM: llm, Logger: discard, ConfidenceThreshold: 0.7}

	upd := r.Refine(context.Background(), refineFixture())
	assert.Len(t, upd.PlanAppend, 3)
}

func TestRefineEmptyOutputSkipsToSynthesis(t *testing.T) {
	r := &Refiner{LLM: &fakeLLM{responses: []string{"no\n-"}}, Logger: discard, ConfidenceThreshold: 0.7}

	upd := r.Refine(context.Background(), refineFixture())

	assert.Empty(t, upd.PlanAppend)
	assert.Equal(t, ActionSynthesize, upd.NextAction)
}

func TestRefineErrorSkipsToSynthesis(t *testing.T) {
	r := &Refiner{LLM: &fakeLLM{err: errors.New("model unavailable")}, Logger: discard, ConfidenceThreshold: 0.7}

	upd := r.Refine(context.Background(), refineFixture())
	assert.Equal(t, ActionSynthesize, upd.NextAction)
}
