package draft

import (
	"fmt"
	"strings"
)

// CaseLawMarkdown renders the suggested case laws as markdown: one heading
// per issue, one entry per case with its fragment quoted.
func (r AnalysisResult) CaseLawMarkdown() string {
	if len(r.CaseGroups) == 0 {
		return "_No case laws suggested._\n"
	}

	var b strings.Builder
	for i, g := range r.CaseGroups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", g.Issue)

		if g.Error != "" {
			fmt.Fprintf(&b, "*Case search failed: %s*\n", g.Error)
			continue
		}
		if len(g.Cases) == 0 {
			b.WriteString("_No matching cases._\n")
			continue
		}

		for _, c := range g.Cases {
			fmt.Fprintf(&b, "**%s**", c.Name)
			if c.Citation != "" {
				fmt.Fprintf(&b, " (%s)", c.Citation)
			}
			b.WriteString("\n\n")
			if c.Fragment != "" {
				fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(strings.TrimSpace(c.Fragment), "\n", "\n> "))
			}
		}
	}

	return b.String()
}
