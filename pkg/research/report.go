package research

import (
	"fmt"
	"strings"
)

// Report renders the completed state as a markdown document: the synthesis
// prose followed by numbered findings and sources, with the confidence
// percentage and source count.
func Report(st State) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Research Report: %s\n\n", st.Query)
	sb.WriteString(strings.TrimSpace(st.Synthesis))
	sb.WriteString("\n")

	if len(st.Findings) > 0 {
		sb.WriteString("\n## Key Research Findings\n\n")
		for i, f := range st.Findings {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, f)
		}
	}

	if len(st.SourcesCited) > 0 {
		sb.WriteString("\n## Sources\n\n")
		for i, u := range st.SourcesCited {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, u)
		}
	}

	fmt.Fprintf(&sb, "\n*Confidence: %.0f%% | Sources consulted: %d*\n",
		st.ConfidenceScore*100, len(st.SearchResults))

	return sb.String()
}
