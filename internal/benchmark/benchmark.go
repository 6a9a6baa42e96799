// Package benchmark ranks a reviewee's section scores against organizational
// peers who completed the same questionnaire.
package benchmark

import (
	"math"
	"sort"

	"github.com/jonathan/feedback-engine/internal/types"
)

// MinPeerCycles is the number of completed peer cycles required for benchmarking.
const MinPeerCycles = 3

// Percentile visibility gates. Small samples need a higher percentile before
// it is shown, and very small samples never show it.
const (
	LargeSampleSize       = 16
	LargeSamplePercentile = 67
	SmallSampleSize       = 6
	SmallSamplePercentile = 75
)

// ShowPercentile reports whether a percentile may be displayed for the given
// number of peers.
func ShowPercentile(percentile, peerCount int) bool {
	switch {
	case peerCount >= LargeSampleSize:
		return percentile >= LargeSamplePercentile
	case peerCount >= SmallSampleSize:
		return percentile >= SmallSamplePercentile
	default:
		return false
	}
}

// Compute benchmarks every section of summary against peers, the section
// summaries of other reviewees' completed cycles. It returns nil when fewer
// than MinPeerCycles peers are available. Sections are compared on their
// non-self mean.
func Compute(summary types.SectionSummary, peers []types.SectionSummary) *types.PeerBenchmarks {
	if len(peers) < MinPeerCycles {
		return nil
	}

	result := &types.PeerBenchmarks{
		PeerCycleCount: len(peers),
		Sections:       map[string]*types.SectionBenchmark{},
	}

	for _, title := range summary.Titles() {
		current, ok := summary.OthersMean(title)
		if !ok {
			continue
		}
		current = types.Round2(current)

		scores := make([]float64, 0, len(peers))
		for _, peer := range peers {
			if score, ok := peer.OthersMean(title); ok {
				scores = append(scores, types.Round2(score))
			}
		}
		if len(scores) == 0 {
			continue
		}
		result.Sections[title] = benchmarkSection(current, scores)
	}
	return result
}

func benchmarkSection(current float64, scores []float64) *types.SectionBenchmark {
	sort.Float64s(scores)
	mean, _ := types.Mean(scores)

	below := 0
	distribution := map[string]int{}
	for _, s := range scores {
		if s < current {
			below++
		}
		distribution[Bucket(s)]++
	}
	percentile := Percentile(below, len(scores))

	return &types.SectionBenchmark{
		CurrentScore:   current,
		PeerMedian:     types.Round2(median(scores)),
		PeerMean:       types.Round2(mean),
		PeerMin:        scores[0],
		PeerMax:        scores[len(scores)-1],
		Percentile:     percentile,
		PeerCount:      len(scores),
		Distribution:   distribution,
		ShowPercentile: ShowPercentile(percentile, len(scores)),
	}
}

// Percentile returns below/total as a rounded percentage, or 0 for no peers.
func Percentile(below, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(below) / float64(total) * 100))
}

// Bucket returns the distribution bucket of a 1-5 score.
func Bucket(score float64) string {
	switch {
	case score < 2:
		return "1-2"
	case score < 3:
		return "2-3"
	case score < 4:
		return "3-4"
	default:
		return "4-5"
	}
}

// median of sorted values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
