package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthesisFixture() State {
	return State{
		Query:           "Acme Corp tokenomics",
		SearchResults:   manyResults(3),
		Findings:        []string{"Token unlock schedule runs over 48 months"},
		ConfidenceScore: 0.49,
		IterationCount:  3,
		NextAction:      ActionSynthesize,
	}
}

func TestSynthesizeProducesReport(t *testing.T) {
	llm := &fakeLLM{responses: []string{"## Executive Summary\nAcme's token design is conservative."}}
	s := &Synthesizer{LLM: llm, Logger: discard}

	upd := s.Synthesize(context.Background(), synthesisFixture())

	require.NotNil(t, upd.Synthesis)
	assert.Contains(t, *upd.Synthesis, "Executive Summary")
	assert.Equal(t, ActionComplete, upd.NextAction)
}

func TestSynthesizeEmptyFindingsUsesFixedMessage(t *testing.T) {
	llm := &fakeLLM{}
	s := &Synthesizer{LLM: llm, Logger: discard}
	st := synthesisFixture()
	st.Findings = nil

	upd := s.Synthesize(context.Background(), st)

	require.NotNil(t, upd.Synthesis)
	assert.Contains(t, *upd.Synthesis, "Insufficient information")
	assert.Contains(t, *upd.Synthesis, st.Query)
	assert.Equal(t, ActionComplete, upd.NextAction)
	assert.Empty(t, llm.calls, "no LLM call for the fixed message")
}

func TestSynthesizeNoSourcesUsesFixedMessage(t *testing.T) {
	s := &Synthesizer{LLM: &fakeLLM{}, Logger: discard}
	st := synthesisFixture()
	st.SearchResults = nil
	st.Findings = []string{"No sources found for analysis"}

	upd := s.Synthesize(context.Background(), st)

	require.NotNil(t, upd.Synthesis)
	assert.Contains(t, *upd.Synthesis, "Insufficient information")
}

func TestSynthesizeFailureFallsBackToSummary(t *testing.T) {
	s := &Synthesizer{LLM: &fakeLLM{err: errors.New("model unavailable")}, Logger: discard}

	upd := s.Synthesize(context.Background(), synthesisFixture())

	require.NotNil(t, upd.Synthesis)
	assert.Contains(t, *upd.Synthesis, "1 findings across 3 sources")
	assert.Equal(t, ActionComplete, upd.NextAction)
}
