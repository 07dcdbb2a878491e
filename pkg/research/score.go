package research

import "net/url"

// Scorer computes the normalized confidence value for a research pass.
// Confidence rewards source quantity, extracted insight count, and host
// diversity, weighted 40/30/30 and clamped to [0.1, 1.0]. The weights and
// normalization denominators are inherited defaults, not tuned values.
type Scorer struct {
	SourceNorm  int
	FindingNorm int
	HostNorm    int

	SourceWeight  float64
	FindingWeight float64
	HostWeight    float64
}

// NewScorer returns a scorer with the stock 10/6/5 denominators and
// 0.4/0.3/0.3 weights.
func NewScorer() *Scorer {
	return &Scorer{
		SourceNorm:  10,
		FindingNorm: 6,
		HostNorm:    5,

		SourceWeight:  0.4,
		FindingWeight: 0.3,
		HostWeight:    0.3,
	}
}

// Score computes confidence for the given result set and finding count.
func (sc *Scorer) Score(results []SearchResult, findingCount int) float64 {
	sources := ratio(len(results), sc.SourceNorm) * sc.SourceWeight
	findings := ratio(findingCount, sc.FindingNorm) * sc.FindingWeight
	diversity := ratio(distinctHosts(results), sc.HostNorm) * sc.HostWeight
	return clampConfidence(sources + findings + diversity)
}

func ratio(n, denom int) float64 {
	r := float64(n) / float64(denom)
	if r > 1 {
		return 1
	}
	return r
}

func clampConfidence(v float64) float64 {
	switch {
	case v < 0.1:
		return 0.1
	case v > 1.0:
		return 1.0
	default:
		return v
	}
}

// distinctHosts counts unique URL authorities across the result set.
// Results with unparseable or empty URLs are skipped.
func distinctHosts(results []SearchResult) int {
	hosts := make(map[string]bool)
	for _, r := range results {
		u, err := url.Parse(r.URL)
		if err != nil || u.Hostname() == "" {
			continue
		}
		hosts[u.Hostname()] = true
	}
	return len(hosts)
}
