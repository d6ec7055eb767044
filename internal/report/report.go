// Package report renders an analyzed mine into a markdown emission
// report. The renderer works off the already-built dashboard and
// insight records, so it stays a pure formatting layer.
package report

import (
	"fmt"
	"strings"
	"time"

	"minesight/internal/emissions"
	"minesight/internal/insight"
)

const maxReportRecommendations = 6

// Render produces the full markdown report. now is the report date;
// callers pass time.Now().UTC() outside tests.
func Render(mineName string, d emissions.Dashboard, rec insight.Record, now time.Time) string {
	var b strings.Builder

	name := strings.TrimSpace(mineName)
	if name == "" {
		name = "General Mining Operations"
	}

	fmt.Fprintf(&b, "# Carbon Emission Analysis Report\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", name)

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "- Total Emissions: %s tons CO2e\n", withThousands(d.TotalEmissions))
	fmt.Fprintf(&b, "- Major Source: %s\n", d.LargestSource)
	b.WriteString("- Reduction Potential: 28% in 12-18 months\n")
	b.WriteString("- Priority Level: High, immediate action required\n")
	fmt.Fprintf(&b, "- Report Date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Data Source: %s\n\n", d.DataSource)

	b.WriteString("## Emission Sources Analysis\n\n")
	b.WriteString("| Source | Percentage | Tons CO2e | Priority |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, src := range d.Sources {
		fmt.Fprintf(&b, "| %s | %d%% | %s | %s |\n",
			src.Name, src.Percentage, withThousands(src.Tons), priorityLabel(src.Priority))
	}
	b.WriteString("\n")

	b.WriteString("## Scope-Wise Emission Distribution\n\n")
	b.WriteString("| Scope | Percentage | Tons CO2e |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, scope := range d.ScopeBreakdown {
		fmt.Fprintf(&b, "| %s | %d%% | %s |\n",
			scope.Name, scope.Percentage, withThousands(scope.Tons))
	}
	b.WriteString("\n")

	b.WriteString("## Quarterly Emission Trend\n\n")
	b.WriteString("| Quarter | Tons CO2e |\n")
	b.WriteString("| --- | --- |\n")
	for _, point := range d.QuarterlyTrend {
		fmt.Fprintf(&b, "| %s | %s |\n", point.Quarter, withThousands(point.Emissions))
	}
	b.WriteString("\n")

	b.WriteString("## Quick Win Opportunities\n\n")
	for _, win := range d.QuickWins {
		fmt.Fprintf(&b, "- **%s**: potential reduction of %s tons CO2e\n",
			win.Title, withThousands(win.Reduction))
	}
	b.WriteString("\n")

	b.WriteString("## Key Recommendations\n\n")
	writeRecommendations(&b, rec.Insights)

	b.WriteString("## Next Steps\n\n")
	b.WriteString("1. Implement high-priority equipment optimization measures\n")
	b.WriteString("2. Conduct energy efficiency audit\n")
	b.WriteString("3. Develop renewable energy integration plan\n")
	b.WriteString("4. Establish monitoring and reporting system\n")
	b.WriteString("5. Train staff on carbon reduction practices\n\n")

	fmt.Fprintf(&b, "---\n\nGenerated %s. Confidential.\n", now.Format("2006-01-02 15:04 MST"))
	return b.String()
}

func writeRecommendations(b *strings.Builder, insights []insight.Insight) {
	if len(insights) == 0 {
		b.WriteString("No recommendations available yet. Upload an operations document to generate insights.\n\n")
		return
	}
	n := len(insights)
	if n > maxReportRecommendations {
		n = maxReportRecommendations
	}
	for i := 0; i < n; i++ {
		ins := insights[i]
		fmt.Fprintf(b, "### %d. %s\n\n", i+1, ins.Title)
		fmt.Fprintf(b, "Category: %s | Priority: %s | Impact: %s | Timeline: %s\n\n",
			ins.Category, ins.Priority, ins.Impact, ins.Timeline)
		for _, step := range ins.Steps {
			fmt.Fprintf(b, "- %s\n", step)
		}
		b.WriteString("\n")
	}
}

func priorityLabel(p emissions.Priority) string {
	switch p {
	case emissions.PriorityHigh:
		return "HIGH"
	case emissions.PriorityMedium:
		return "MEDIUM"
	case emissions.PriorityLow:
		return "LOW"
	}
	return "UNKNOWN"
}

// withThousands formats n with comma separators, matching the
// toLocaleString style numbers readers expect in emission figures.
func withThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
