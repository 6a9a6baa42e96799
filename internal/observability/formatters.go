// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/feedback-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// PrintResponseSummary outputs reviewer counts per category.
func (p *Printer) PrintResponseSummary(summary types.ResponseSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total reviewers: %d\n", summary.TotalResponses))

	categories := make([]types.Category, 0, len(summary.ByCategory))
	for cat := range summary.ByCategory {
		categories = append(categories, cat)
	}
	for _, cat := range types.SortCategories(categories) {
		sb.WriteString(fmt.Sprintf("  • %-15s %d\n", cat, summary.ByCategory[cat]))
	}

	p.printBox("RESPONSES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInsights outputs sentiment, strengths, development areas and perception gaps.
func (p *Printer) PrintInsights(insights *types.Insights) {
	if insights == nil {
		return
	}

	var sb strings.Builder
	if insights.OverallSentiment != nil {
		sb.WriteString(fmt.Sprintf("Sentiment: %s (%.2f)\n\n", insights.OverallSentiment.Label, insights.OverallSentiment.Score))
	}

	writeSections := func(heading string, items []types.SectionInsight) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(heading + ":\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s  %.2f (%s)\n", truncate(items[i].Section, 30), items[i].Score, items[i].Level))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}
	writeSections("Strengths", insights.Strengths)
	writeSections("Development Areas", insights.DevelopmentAreas)

	if len(insights.PerceptionGaps) > 0 {
		sb.WriteString("Perception Gaps:\n")
		for _, gap := range insights.PerceptionGaps {
			sb.WriteString(fmt.Sprintf("⚠ %s  self %.2f / others %.2f\n", truncate(gap.Section, 25), gap.SelfScore, gap.OthersScore))
			sb.WriteString(fmt.Sprintf("  %s, %s\n", gap.Pattern, gap.Severity))
		}
	}

	content := strings.TrimRight(sb.String(), "\n")
	if content == "" {
		content = "Not enough responses for insights"
	}
	p.printBox("INSIGHTS", content)
}

// PrintComparison outputs trends against the previous cycle.
func (p *Printer) PrintComparison(comparison *types.Comparison) {
	if comparison == nil || !comparison.HasPrevious {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Prior cycles: %d\n", comparison.PriorCycleCount))
	if comparison.PreviousCycleDate != nil {
		sb.WriteString(fmt.Sprintf("Previous:     %s\n", comparison.PreviousCycleDate.Format("2006-01-02")))
	}
	if comparison.OverallTrend != nil {
		t := comparison.OverallTrend
		sb.WriteString(fmt.Sprintf("Overall:      %s %s (%+.2f)\n", t.Symbol, t.Direction, t.Change))
	}

	if len(comparison.SectionTrends) > 0 {
		sb.WriteString("\n")
		titles := make([]string, 0, len(comparison.SectionTrends))
		for title := range comparison.SectionTrends {
			titles = append(titles, title)
		}
		sort.Strings(titles)
		for _, title := range titles {
			t := comparison.SectionTrends[title]
			sb.WriteString(fmt.Sprintf("%s %s  %.2f → %.2f\n", t.Symbol, truncate(title, 30), t.Previous, t.Current))
		}
	}

	p.printBox("TRENDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBenchmarks outputs the reviewee's position among organizational peers.
func (p *Printer) PrintBenchmarks(benchmarks *types.PeerBenchmarks) {
	if benchmarks == nil || len(benchmarks.Sections) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Peer cycles: %d\n\n", benchmarks.PeerCycleCount))

	titles := make([]string, 0, len(benchmarks.Sections))
	for title := range benchmarks.Sections {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		b := benchmarks.Sections[title]
		sb.WriteString(fmt.Sprintf("%s\n", truncate(title, 40)))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  Median: %.2f", b.CurrentScore, b.PeerMedian))
		if b.ShowPercentile {
			sb.WriteString(fmt.Sprintf("  P%d", b.Percentile))
		}
		sb.WriteString("\n")
	}

	p.printBox("PEER BENCHMARKS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompetencyProfile outputs the skill and agency stages and the quadrant.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCompetencyProfile(profile *types.CompetencyProfile) {
	if profile == nil || profile.Skill == nil {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO COMPETENCY DATA")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	writeDimension := func(label string, d *types.DimensionResult) {
		sb.WriteString(fmt.Sprintf("%-7s %.2f  %s (stage %d)\n", label, d.Level, d.StageName, d.Stage))
		sb.WriteString(fmt.Sprintf("        confidence %.0f%%, %s\n", d.Confidence*100, d.Method))
	}
	writeDimension("Skill:", profile.Skill)
	if profile.Agency != nil {
		writeDimension("Agency:", profile.Agency)
	}

	if profile.Quadrant != nil {
		sb.WriteString(fmt.Sprintf("\nQuadrant: %s\n", profile.Quadrant.Name))
	}

	if profile.Recommendations.PrimaryFocus != "" {
		sb.WriteString(fmt.Sprintf("\nFocus: %s\n", profile.Recommendations.PrimaryFocus))
	}
	wins := profile.Recommendations.QuickWins
	count := min(len(wins), 3)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", wins[i]))
	}

	p.printBox("COMPETENCY PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPreview outputs an instant competency preview.
func (p *Printer) PrintPreview(preview *types.CompetencyPreview) {
	if preview == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skill:      %.2f  %s\n", preview.SkillLevel, preview.SkillStage))
	sb.WriteString(fmt.Sprintf("Agency:     %.2f  %s\n", preview.AgencyLevel, preview.AgencyStage))
	sb.WriteString(fmt.Sprintf("Quadrant:   %s\n", preview.Quadrant.Name))
	sb.WriteString(fmt.Sprintf("Confidence: %s", preview.Confidence))

	p.printBox("COMPETENCY PREVIEW", sb.String())
}
