package report

import (
	"fmt"
	"sort"
	"strings"

	"goshuffle/internal/analysis"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// maxRows caps the permutation table so large enumerations stay readable.
const maxRows = 24

// Markdown renders a simulation result as a Markdown document.
func Markdown(res *analysis.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Shuffle simulation `%s`\n\n", res.RunID)
	fmt.Fprintf(&b, "| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Strategy | %s |\n", res.Strategy)
	fmt.Fprintf(&b, "| Deck size | %d |\n", res.DeckSize)
	fmt.Fprintf(&b, "| Shuffles per trial | %d |\n", res.Repeats)
	fmt.Fprintf(&b, "| Trials | %d |\n", res.Trials)
	fmt.Fprintf(&b, "| Workers | %d |\n", res.Workers)
	fmt.Fprintf(&b, "| Seed | %d |\n", res.Seed)
	fmt.Fprintf(&b, "| Fingerprint | `%s` |\n", res.Fingerprint.Short())
	fmt.Fprintf(&b, "| Duration | %s |\n\n", res.Duration)

	b.WriteString("## Displacement\n\n")
	fmt.Fprintf(&b, "Mean distance a card moves per trial: %.4f (std dev %.4f, p95 %.4f, max %.4f). ",
		res.Displacement.Mean, res.Displacement.StdDev, res.Displacement.P95, res.Displacement.Max)
	fmt.Fprintf(&b, "A uniform shuffle averages %.4f.\n\n", analysis.UniformDisplacement(res.DeckSize))

	b.WriteString("## Rising sequences\n\n| Rising sequences | Trials |\n|---|---|\n")
	rs := make([]int, 0, len(res.RisingSequences))
	for r := range res.RisingSequences {
		rs = append(rs, r)
	}
	sort.Ints(rs)
	for _, r := range rs {
		fmt.Fprintf(&b, "| %d | %d |\n", r, res.RisingSequences[r])
	}
	b.WriteString("\n")

	if res.TheoreticalTV != nil {
		fmt.Fprintf(&b, "Theoretical distance from uniform after %d riffles: %.4f\n\n", res.Repeats, *res.TheoreticalTV)
	}

	if res.Fit != nil {
		b.WriteString("## Goodness of fit\n\n")
		verdict := "consistent with the model"
		if !res.Fit.Passed {
			verdict = "NOT consistent with the model"
		}
		fmt.Fprintf(&b, "Chi-square %.4f on %d degrees of freedom, p = %.4g: %s.\n",
			res.Fit.Statistic, res.Fit.DegreesOfFreedom, res.Fit.PValue, verdict)
		if res.Fit.Impossible > 0 {
			fmt.Fprintf(&b, "%d trials produced arrangements the model rules out.\n", res.Fit.Impossible)
		}
		if res.EmpiricalTV != nil {
			fmt.Fprintf(&b, "Empirical variation distance: %.4f.\n", *res.EmpiricalTV)
		}
		b.WriteString("\n")
		writePermutationTable(&b, res)
	}

	return b.String()
}

func writePermutationTable(b *strings.Builder, res *analysis.SimulationResult) {
	rows := Rows(res)
	b.WriteString("## Most frequent arrangements\n\n| Arrangement | Observed | Expected |\n|---|---|---|\n")
	for i, row := range rows {
		if i == maxRows {
			fmt.Fprintf(b, "\n%d more arrangements omitted.\n", len(rows)-maxRows)
			break
		}
		fmt.Fprintf(b, "| %s | %.4f | %.4f |\n", row.Key, row.Observed, row.Expected)
	}
}

// Row is one permutation with its observed and expected frequency.
type Row struct {
	Key      string
	Count    int
	Observed float64
	Expected float64
}

// Rows lists every permutation that was observed or is possible, most
// frequent first.
func Rows(res *analysis.SimulationResult) []Row {
	seen := make(map[string]bool, len(res.Counts)+len(res.Expected))
	var rows []Row
	add := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		c := res.Counts[key]
		rows = append(rows, Row{
			Key:      key,
			Count:    c,
			Observed: float64(c) / float64(res.Trials),
			Expected: res.Expected[key],
		})
	}
	for key := range res.Counts {
		add(key)
	}
	for key := range res.Expected {
		add(key)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// HTML renders the Markdown report as an HTML fragment.
func HTML(res *analysis.SimulationResult) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(res)), p, r)
}
