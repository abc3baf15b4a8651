package stubservice

import "github.com/colonyops/draftlens/internal/core/draft"

const (
	issueNaturalJustice = "Whether denial of hearing violates principles of natural justice under Article 14?"
	issueJurisdiction   = "Whether the impugned order suffers from lack of jurisdiction?"
	issueCondonation    = "Whether delay in filing appeal can be condoned under Section 5 of Limitation Act?"
)

var cannedIssues = []string{
	issueNaturalJustice,
	issueJurisdiction,
	issueCondonation,
}

var cannedCases = map[string][]draft.Case{
	issueNaturalJustice: {
		{
			Name:     "Maneka Gandhi v. Union of India",
			Citation: "AIR 1978 SC 597",
			Fragment: "The procedure prescribed by law has to be fair, just and reasonable, not fanciful, oppressive or arbitrary.",
		},
	},
	issueJurisdiction: {
		{
			Name:     "Whirlpool Corporation v. Registrar of Trade Marks",
			Citation: "(1998) 8 SCC 1",
			Fragment: "A writ petition is maintainable where the order or proceedings are wholly without jurisdiction.",
		},
	},
	issueCondonation: {
		{
			Name:     "Collector, Land Acquisition, Anantnag v. Mst. Katiji",
			Citation: "(1987) 2 SCC 107",
			Fragment: "Sufficient cause should be construed liberally so as to advance substantial justice.",
		},
	},
}

// spotIssues returns the legal issues raised by a draft. The stub has no
// model behind it and reports the same issues for every draft.
func spotIssues(string) []string {
	out := make([]string, len(cannedIssues))
	copy(out, cannedIssues)
	return out
}
