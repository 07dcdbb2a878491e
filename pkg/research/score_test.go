package research

import (
	"fmt"
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		results  []SearchResult
		findings int
		expected float64
	}{
		{
			// 3 sources across 2 hosts with 5 findings:
			// min(3/10,1)*0.4 + min(5/6,1)*0.3 + min(2/5,1)*0.3 = 0.49
			name: "three sources two hosts five findings",
			results: []SearchResult{
				webResult("Acme tokenomics overview", "https://alpha.example.com/a"),
				webResult("Acme token distribution", "https://alpha.example.com/b"),
				webResult("Acme token audit", "https://beta.example.org/c"),
			},
			findings: 5,
			expected: 0.49,
		},
		{
			name:     "no sources no findings clamps to floor",
			results:  nil,
			findings: 0,
			expected: 0.1,
		},
		{
			name:     "abundant evidence saturates at ceiling",
			results:  manyResults(30),
			findings: 20,
			expected: 1.0,
		},
		{
			name: "single source single finding",
			// 0.04 + 0.05 + 0.06 = 0.15
			results:  []SearchResult{webResult("One", "https://solo.example.com/x")},
			findings: 1,
			expected: 0.15,
		},
	}

	sc := NewScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sc.Score(tt.results, tt.findings)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	sc := NewScorer()
	for sources := 0; sources <= 25; sources += 5 {
		for findings := 0; findings <= 10; findings += 2 {
			got := sc.Score(manyResults(sources), findings)
			if got < 0.1 || got > 1.0 {
				t.Errorf("Score(%d sources, %d findings) = %v, out of [0.1, 1.0]", sources, findings, got)
			}
		}
	}
}

func TestDistinctHosts(t *testing.T) {
	results := []SearchResult{
		webResult("a", "https://a.example.com/1"),
		webResult("b", "https://a.example.com/2"),
		webResult("c", "https://b.example.com/1"),
		webResult("d", "not a url"),
		webResult("e", ""),
	}
	if got := distinctHosts(results); got != 2 {
		t.Errorf("distinctHosts() = %d, want 2", got)
	}
}

func manyResults(n int) []SearchResult {
	results := make([]SearchResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, webResult(
			fmt.Sprintf("result %d", i),
			fmt.Sprintf("https://host%d.example.com/%d", i, i)))
	}
	return results
}
