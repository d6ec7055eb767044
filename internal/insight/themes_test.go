package insight

import "testing"

func TestThemeInsights(t *testing.T) {
	text := "Improve energy consumption and fuel use across the fleet promptly. " +
		"Electricity and power demand keeps rising at the site. " +
		"Upgrade equipment maintenance schedules for machinery and vehicle fleets. " +
		"Track equipment performance and maintenance outcomes with telemetry."

	insights := ThemeInsights(text, "North Ridge")
	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}

	// Equipment Optimization collected the higher total keyword score,
	// so it is emitted first.
	if insights[0].Category != "Equipment Optimization" {
		t.Fatalf("first insight category %q, want Equipment Optimization", insights[0].Category)
	}
	if insights[1].Category != "Energy Management" {
		t.Fatalf("second insight category %q, want Energy Management", insights[1].Category)
	}

	for _, in := range insights {
		if len(in.Steps) < 2 {
			t.Fatalf("insight %q has %d steps, want the contributing sentences", in.Category, len(in.Steps))
		}
	}
	if insights[0].Title != "Equipment Optimization for North Ridge" {
		t.Fatalf("title %q", insights[0].Title)
	}
	if insights[0].ID != 1 || insights[1].ID != 2 {
		t.Fatalf("ids %d/%d, want 1/2", insights[0].ID, insights[1].ID)
	}
}

func TestThemeInsights_SingleSentenceThemesDropped(t *testing.T) {
	// One sentence per theme never reaches the two-sentence minimum.
	text := "Improve overall energy and power efficiency figures for the site. " +
		"Document the local workflow and process steps for every single crew."
	if got := ThemeInsights(text, "North Ridge"); len(got) != 0 {
		t.Fatalf("expected no insights, got %d", len(got))
	}
}

func TestBucketByTheme_TieGoesToFirstTheme(t *testing.T) {
	// "optimize" hits Operational Efficiency and "energy" hits Energy
	// Management, one keyword each; the strict greater-than comparison
	// leaves the sentence with the earlier theme.
	buckets := bucketByTheme([]string{"We must optimize energy across the whole site"})
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].name != "Operational Efficiency" {
		t.Fatalf("tie resolved to %q, want Operational Efficiency", buckets[0].name)
	}
}

func TestBucketByTheme_ZeroHitSentencesDropped(t *testing.T) {
	buckets := bucketByTheme([]string{"The canteen menu changed again last week"})
	if len(buckets) != 0 {
		t.Fatalf("expected no buckets, got %d", len(buckets))
	}
}
