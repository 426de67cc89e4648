package complexity

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/google/uuid"

	"jscore/internal/estree"
	"jscore/internal/jsparse"
)

// Report is the outcome of an explained scoring run.
type Report struct {
	// RunID identifies this scoring run in logs and output
	RunID string `json:"runId" yaml:"runId" toml:"runId"`

	// Language is the dialect the source was parsed as
	Language jsparse.Language `json:"language" yaml:"language" toml:"language"`

	// Score is the total readability score
	Score int `json:"score" yaml:"score" toml:"score"`

	// Nodes is the number of syntax tree nodes visited
	Nodes int `json:"nodes" yaml:"nodes" toml:"nodes"`

	// Contributions lists every node type that added points, highest first
	Contributions []Contribution `json:"contributions" yaml:"contributions" toml:"contributions"`
}

// Contribution is the share of the score owed to one node type.
type Contribution struct {
	Type   estree.Type `json:"type" yaml:"type" toml:"type"`
	Count  int         `json:"count" yaml:"count" toml:"count"`
	Points int         `json:"points" yaml:"points" toml:"points"`
}

// Explain scores source like ScoreSource and reports where the points came from.
func (s *Scorer) Explain(ctx context.Context, source []byte, lang jsparse.Language) (*Report, error) {
	root, err := s.parser.Parse(ctx, source, lang)
	if err != nil {
		return nil, err
	}

	report := Explain(root, s.visitHook(ctx))
	report.Language = lang

	s.logger.Debug("Explained source",
		"runId", report.RunID,
		"language", string(lang),
		"score", report.Score,
		"nodes", report.Nodes,
	)
	return report, nil
}

// Explain scores an already-parsed tree and tallies contributions per type.
// hook, when non-nil, is called for every visited node as well.
func Explain(root *estree.Node, hook Hook) *Report {
	report := &Report{RunID: uuid.NewString()}
	tally := make(map[estree.Type]*Contribution)

	report.Score = fold(root, nil, 0, func(n *estree.Node, points int) {
		report.Nodes++
		if hook != nil {
			hook(n, points)
		}
		if points == 0 {
			return
		}
		c, ok := tally[n.Type]
		if !ok {
			c = &Contribution{Type: n.Type}
			tally[n.Type] = c
		}
		c.Count++
		c.Points += points
	})

	report.Contributions = make([]Contribution, 0, len(tally))
	for _, c := range tally {
		report.Contributions = append(report.Contributions, *c)
	}
	sort.Slice(report.Contributions, func(i, j int) bool {
		a, b := report.Contributions[i], report.Contributions[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.Type < b.Type
	})

	return report
}

// RenderHuman writes the report as an aligned table.
func (r *Report) RenderHuman(w io.Writer) error {
	fmt.Fprintf(w, "Score: %d (%s, %d nodes)\n", r.Score, r.Language, r.Nodes)
	if len(r.Contributions) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nTYPE\tCOUNT\tPOINTS")
	for _, c := range r.Contributions {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", c.Type, c.Count, c.Points)
	}
	return tw.Flush()
}
