package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHappyPath(t *testing.T) {
	// Two planned queries yielding 3 unique sources across 2 hosts, 5
	// findings: confidence lands at exactly 0.49.
	llm := &fakeLLM{responses: []string{
		"Acme Corp token economics design\nAcme Corp token distribution schedule",
		fiveBullets,
		"## Executive Summary\nAcme's token design is conservative.",
	}}
	search := &fakeSearch{byQuery: map[string][]SearchResult{
		"Acme Corp token economics design": {
			webResult("Acme tokenomics overview", "https://alpha.example.com/a"),
			webResult("Acme token audit", "https://beta.example.org/c"),
		},
		"Acme Corp token distribution schedule": {
			webResult("Acme token distribution", "https://alpha.example.com/b"),
		},
	}}

	var progress []State
	var steps []StepEvent

	o := New(search, llm, Options{
		MaxIterations:       5,
		MaxSources:          20,
		ConfidenceThreshold: 0.7,
		EnableRefinement:    false,
	})
	o.Logger = discard
	o.OnProgress = func(st State) { progress = append(progress, st) }
	o.OnStep = func(ev StepEvent) { steps = append(steps, ev) }

	st, err := o.Run(context.Background(), "Acme Corp tokenomics")
	require.NoError(t, err)

	assert.Equal(t, ActionComplete, st.NextAction)
	assert.InDelta(t, 0.49, st.ConfidenceScore, 1e-9)
	assert.Len(t, st.SearchResults, 3)
	assert.Len(t, st.Findings, 5)
	assert.Len(t, st.SourcesCited, 3)
	assert.Contains(t, st.Synthesis, "Executive Summary")
	// search, search, analyze, synthesize
	assert.Equal(t, 4, st.IterationCount)
	assert.LessOrEqual(t, st.IterationCount, st.MaxIterations)

	// Plan + four phases, each bracketed by active/complete events.
	require.Len(t, steps, 10)
	for i := 0; i < len(steps); i += 2 {
		assert.Equal(t, StepActive, steps[i].Status)
		assert.Equal(t, StepComplete, steps[i+1].Status)
		assert.Equal(t, steps[i].Type, steps[i+1].Type)
	}
	assert.Equal(t, StepReasoning, steps[0].Type)
	assert.Equal(t, StepSynthesis, steps[len(steps)-1].Type)

	// One snapshot after planning plus one per phase.
	require.Len(t, progress, 5)
	for _, snap := range progress {
		assert.GreaterOrEqual(t, snap.ConfidenceScore, 0.1)
		assert.LessOrEqual(t, snap.ConfidenceScore, 1.0)
	}
}

func TestRunSearchAlwaysFailing(t *testing.T) {
	// Scenario: every search call errors. The plan still executes fully,
	// analysis short-circuits, and synthesis emits the fixed fallback.
	llm := &fakeLLM{responses: []string{
		"Acme Corp token economics design\nAcme Corp token distribution schedule",
	}}
	search := &fakeSearch{err: errors.New("search backend down")}

	o := New(search, llm, DefaultOptions())
	o.Logger = discard

	st, err := o.Run(context.Background(), "Acme Corp tokenomics")
	require.NoError(t, err)

	assert.Equal(t, ActionComplete, st.NextAction)
	assert.Len(t, search.queries, 2, "both plan steps executed despite failures")
	assert.Empty(t, st.SearchResults)
	assert.Equal(t, 0.1, st.ConfidenceScore)
	assert.Equal(t, []string{"No sources found for analysis"}, st.Findings)
	assert.Contains(t, st.Synthesis, "Insufficient information")
}

func TestRunSingleIterationCap(t *testing.T) {
	// Scenario: max_iterations=1 stops after one phase with no refinement
	// loop; the cap forces graceful completion.
	llm := &fakeLLM{responses: []string{"Acme Corp token economics design"}}
	search := &fakeSearch{byQuery: map[string][]SearchResult{
		"Acme Corp token economics design": {webResult("a", "https://a.example.com/1")},
	}}

	o := New(search, llm, Options{
		MaxIterations:       1,
		MaxSources:          20,
		ConfidenceThreshold: 0.7,
		EnableRefinement:    true,
	})
	o.Logger = discard

	st, err := o.Run(context.Background(), "Acme Corp tokenomics")
	require.NoError(t, err)

	assert.Equal(t, ActionComplete, st.NextAction)
	assert.Equal(t, 1, st.IterationCount)
}

func TestRunEmptyRefinementGoesToSynthesis(t *testing.T) {
	// Scenario: the refiner yields nothing usable, so the run transitions
	// straight to synthesis instead of looping back to search.
	llm := &fakeLLM{responses: []string{
		"Acme Corp token economics design",
		"- Token unlock schedule runs over 48 months with a cliff\n" +
			"- Two independent audits completed without critical findings",
		"nope",
		"## Executive Summary\nThin but consistent evidence.",
	}}
	search := &fakeSearch{byQuery: map[string][]SearchResult{
		"Acme Corp token economics design": {webResult("a", "https://a.example.com/1")},
	}}

	o := New(search, llm, DefaultOptions())
	o.Logger = discard

	st, err := o.Run(context.Background(), "Acme Corp tokenomics")
	require.NoError(t, err)

	assert.Equal(t, ActionComplete, st.NextAction)
	assert.Len(t, search.queries, 1, "refinement never re-entered search")
	assert.Contains(t, st.Synthesis, "Executive Summary")
	// search, analyze, refine, synthesize
	assert.Equal(t, 4, st.IterationCount)
	assert.Len(t, st.Plan, 1, "no queries appended by the empty refinement")
}

func TestRunRefinementLoopExtendsPlan(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		"Acme Corp token economics design",
		"- Token unlock schedule runs over 48 months with a cliff\n" +
			"- Two independent audits completed without critical findings",
		"Acme Corp treasury management policy",
		"- Treasury holds 18 months of runway in stablecoins today\n" +
			"- Token unlock schedule runs over 48 months with a cliff",
		"## Executive Summary\nEvidence improved after refinement.",
	}}
	search := &fakeSearch{byQuery: map[string][]SearchResult{
		"Acme Corp token economics design":    {webResult("a", "https://a.example.com/1")},
		"Acme Corp treasury management policy": {webResult("b", "https://b.example.com/1")},
	}}

	o := New(search, llm, Options{
		MaxIterations:       6,
		MaxSources:          20,
		ConfidenceThreshold: 0.7,
		EnableRefinement:    true,
	})
	o.Logger = discard

	st, err := o.Run(context.Background(), "Acme Corp tokenomics")
	require.NoError(t, err)

	assert.Equal(t, ActionComplete, st.NextAction)
	assert.Equal(t, []string{
		"Acme Corp token economics design",
		"Acme Corp treasury management policy",
	}, st.Plan)
	assert.Len(t, st.SearchResults, 2)
	assert.LessOrEqual(t, st.IterationCount, st.MaxIterations)
}

func TestRunIterationCapForcesSynthesisPass(t *testing.T) {
	// The cap lands mid-pipeline with findings in hand; the final pass
	// guarantees a non-empty synthesis anyway.
	llm := &fakeLLM{responses: []string{
		"Acme Corp token economics design\nAcme Corp token distribution schedule",
		"- Token unlock schedule runs over 48 months with a cliff\n" +
			"- Two independent audits completed without critical findings",
		"Acme Corp treasury management policy",
		"## Executive Summary\nCut short by the iteration budget.",
	}}
	search := &fakeSearch{byQuery: map[string][]SearchResult{
		"Acme Corp token economics design": {webResult("a", "https://a.example.com/1")},
	}}

	// search, search, analyze, refine, search: the cap hits with
	// next_action=analyze and synthesis still empty.
	o := New(search, llm, Options{
		MaxIterations:       5,
		MaxSources:          20,
		ConfidenceThreshold: 0.7,
		EnableRefinement:    true,
	})
	o.Logger = discard

	st, err := o.Run(context.Background(), "Acme Corp tokenomics")
	require.NoError(t, err)

	assert.Equal(t, ActionComplete, st.NextAction)
	assert.Equal(t, 5, st.IterationCount)
	assert.NotEmpty(t, st.Findings)
	assert.Contains(t, st.Synthesis, "iteration budget")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	llm := &fakeLLM{responses: []string{"Acme Corp token economics design"}}
	search := &fakeSearch{}

	o := New(search, llm, DefaultOptions())
	o.Logger = discard

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Run(ctx, "Acme Corp tokenomics")
	assert.ErrorIs(t, err, context.Canceled)
}
