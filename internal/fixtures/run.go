package fixtures

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"text/tabwriter"
	"time"

	"jscore/internal/jsparse"
	"jscore/internal/slogutil"
)

// Scorer scores source text. *complexity.Scorer satisfies it.
type Scorer interface {
	ScoreSource(ctx context.Context, source []byte, lang jsparse.Language) (int, error)
}

// Result is the outcome of one case.
type Result struct {
	Case     string           `json:"case" yaml:"case" toml:"case"`
	Language jsparse.Language `json:"language" yaml:"language" toml:"language"`
	Want     int              `json:"want" yaml:"want" toml:"want"`
	Got      int              `json:"got" yaml:"got" toml:"got"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`

	Err error `json:"-" yaml:"-" toml:"-"`
}

// Passed reports whether the case scored exactly as expected.
func (r Result) Passed() bool {
	return r.Err == nil && r.Got == r.Want
}

// Report collects the results of a suite run in case order.
type Report struct {
	Suite   string   `json:"suite" yaml:"suite" toml:"suite"`
	Passed  int      `json:"passed" yaml:"passed" toml:"passed"`
	Failed  int      `json:"failed" yaml:"failed" toml:"failed"`
	Results []Result `json:"results" yaml:"results" toml:"results"`
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// RenderHuman writes one line per case followed by a summary.
func (r *Report) RenderHuman(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(tw, "FAIL\t%s\terror: %v\n", res.Case, res.Err)
		case !res.Passed():
			fmt.Fprintf(tw, "FAIL\t%s\tgot %d, want %d\n", res.Case, res.Got, res.Want)
		default:
			fmt.Fprintf(tw, "ok\t%s\t%d\n", res.Case, res.Got)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %d passed, %d failed\n", r.Suite, r.Passed, r.Failed)
	return err
}

// RunOptions tunes Run.
type RunOptions struct {
	// Parallelism caps concurrent cases; 0 means GOMAXPROCS
	Parallelism int
	Logger      *slog.Logger
}

// Run scores every case of suite independently. A case that fails to parse
// is recorded as failed; Run itself only fails when ctx is done.
func Run(ctx context.Context, scorer Scorer, suite *Suite, opts RunOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	workers := opts.Parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	results := make([]Result, len(suite.Cases))
	permits := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, c := range suite.Cases {
		select {
		case permits <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)
		go func(i int, c Case) {
			defer wg.Done()
			defer func() { <-permits }()

			lang := suite.language(c)
			res := Result{Case: c.Name, Language: lang, Want: c.Want}
			res.Got, res.Err = scorer.ScoreSource(ctx, []byte(c.Source), lang)
			if res.Err != nil {
				res.Error = res.Err.Error()
			}
			results[i] = res
		}(i, c)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Suite: suite.Name, Results: results}
	for _, res := range results {
		if res.Passed() {
			report.Passed++
			continue
		}
		report.Failed++
		logger.Info("Fixture case failed",
			"suite", suite.Name,
			"case", res.Case,
			"want", res.Want,
			"got", res.Got,
			"error", res.Error,
		)
	}

	logger.Debug("Ran fixture suite",
		"suite", suite.Name,
		"cases", len(results),
		"failed", report.Failed,
		"duration", time.Since(start),
	)
	return report, nil
}
