package report

import (
	"strings"
	"testing"
	"time"

	"minesight/internal/emissions"
	"minesight/internal/insight"
)

const sampleAnalysis = `Heavy Machinery: 40%
Transport: 30%
Other: 30%
Total output was 50,000 tons CO2e last year.`

func TestRenderContainsCoreSections(t *testing.T) {
	d := emissions.BuildDashboard(sampleAnalysis, "North Ridge")
	rec := insight.BuildRecord("Upgrade haul trucks to electric drivetrains over the next two years.", "North Ridge")
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	out := Render("North Ridge", d, rec, now)

	for _, want := range []string{
		"# Carbon Emission Analysis Report",
		"**North Ridge**",
		"- Total Emissions: 50,000 tons CO2e",
		"- Report Date: 2024-06-01",
		"## Emission Sources Analysis",
		"| Heavy Machinery | 40% | 20,000 | HIGH |",
		"## Scope-Wise Emission Distribution",
		"## Quarterly Emission Trend",
		"| Q1 2024 |",
		"## Quick Win Opportunities",
		"## Key Recommendations",
		"## Next Steps",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderEmptyInsights(t *testing.T) {
	d := emissions.BuildDashboard("", "Kestrel")
	out := Render("Kestrel", d, insight.Record{}, time.Now())

	if !strings.Contains(out, "No recommendations available yet") {
		t.Fatalf("expected empty-insights placeholder, got:\n%s", out)
	}
	if !strings.Contains(out, "- Data Source: Estimated") {
		t.Fatalf("expected estimated data source for empty analysis")
	}
	if !strings.Contains(out, "| Heavy Machinery | 35% | 15,820 | HIGH |") {
		t.Fatalf("expected default source rows")
	}
}

func TestRenderCapsRecommendations(t *testing.T) {
	var insights []insight.Insight
	for i := 0; i < 8; i++ {
		insights = append(insights, insight.Insight{
			ID:       i + 1,
			Title:    "Energy Transition Improvements",
			Category: "Energy Transition",
			Priority: "medium",
			Impact:   "Medium",
			Timeline: "3-6 months",
			Steps:    []string{"Conduct energy audit"},
		})
	}
	d := emissions.BuildDashboard(sampleAnalysis, "Kestrel")
	out := Render("Kestrel", d, insight.Record{Insights: insights}, time.Now())

	if strings.Contains(out, "### 7.") {
		t.Fatalf("expected at most 6 recommendations in the report")
	}
	if !strings.Contains(out, "### 6.") {
		t.Fatalf("expected 6th recommendation to be present")
	}
}
