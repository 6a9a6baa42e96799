package reports

import (
	"context"

	"github.com/jonathan/feedback-engine/internal/aggregation"
	"github.com/jonathan/feedback-engine/internal/benchmark"
	"github.com/jonathan/feedback-engine/internal/charts"
	"github.com/jonathan/feedback-engine/internal/insights"
	"github.com/jonathan/feedback-engine/internal/trends"
	"github.com/jonathan/feedback-engine/internal/types"
	"golang.org/x/sync/errgroup"
)

// Build computes the full report document for one cycle. Answers are
// resolved for their question types in place. Charts, trends and peer
// benchmarks are computed concurrently once insights have produced the
// section summary; each fills a distinct field of the result.
func Build(ctx context.Context, in *types.CycleInput) (*types.ReportData, error) {
	in.ResolveAnswers()

	bySection := aggregation.Aggregate(in.Questions, in.Responses)
	analysis, summary := insights.Analyze(bySection)

	data := &types.ReportData{
		BySection:      bySection,
		Insights:       analysis,
		SectionSummary: summary,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return &Error{Step: "charts", Cause: err}
		}
		data.Charts = charts.Build(bySection)
		return nil
	})

	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return &Error{Step: "trends", Cause: err}
		}
		data.Comparison = trends.Compare(summary, analysis.OverallSentiment, in.History)
		return nil
	})

	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return &Error{Step: "benchmarks", Cause: err}
		}
		data.PeerBenchmarks = benchmark.Compute(summary, in.Peers)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
