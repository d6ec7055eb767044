package insight

import (
	"strings"
	"testing"
)

func TestAssess_PriorityCues(t *testing.T) {
	cases := []struct {
		recs         []string
		wantPriority string
		wantTimeline string
	}{
		{[]string{"Urgent: replace diesel gensets."}, "high", "3-6 months"},
		{[]string{"Take immediate action on fugitive methane."}, "high", "1-3 months"},
		{[]string{"Deliver a quick win on idle time, critical for targets."}, "high", "1-3 months"},
		{[]string{"Consider a feasibility study for CCUS."}, "low", "12+ months"},
		{[]string{"Explore long-term haulage electrification."}, "low", "12+ months"},
		{[]string{"Upgrade conveyor drives."}, "medium", "6-12 months"},
	}
	for _, tc := range cases {
		a := Assess(tc.recs)
		if a.Priority != tc.wantPriority {
			t.Fatalf("Assess(%v) priority = %q, want %q", tc.recs, a.Priority, tc.wantPriority)
		}
		if a.Timeline != tc.wantTimeline {
			t.Fatalf("Assess(%v) timeline = %q, want %q", tc.recs, a.Timeline, tc.wantTimeline)
		}
	}
}

func TestAssess_ImpactCues(t *testing.T) {
	cases := []struct {
		recs []string
		want string
	}{
		{[]string{"Expect a substantial drop in diesel use."}, "High"},
		{[]string{"Only a marginal change is expected."}, "Low"},
		{[]string{"Upgrade conveyor drives."}, "Medium"},
	}
	for _, tc := range cases {
		if a := Assess(tc.recs); a.Impact != tc.want {
			t.Fatalf("Assess(%v) impact = %q, want %q", tc.recs, a.Impact, tc.want)
		}
	}
}

func TestClassify_StepsPaddedFromBank(t *testing.T) {
	block := Block{
		Category:        "Energy Transition",
		Recommendations: []string{"Install solar capacity at the site."},
	}
	in, ok := Classify(block, 1, "Kestrel")
	if !ok {
		t.Fatal("expected an insight")
	}
	if len(in.Steps) != 3 {
		t.Fatalf("expected padding up to 3 steps, got %d", len(in.Steps))
	}
	if in.Steps[0] != "Install solar capacity at the site." {
		t.Fatalf("unexpected first step %q", in.Steps[0])
	}
	// Category contains "energy": padding comes from the energy bank.
	if in.Steps[1] != "Monitor energy consumption patterns" || in.Steps[2] != "Conduct energy audit" {
		t.Fatalf("unexpected bank steps: %v", in.Steps[1:])
	}
}

func TestClassify_GenericFallbackStep(t *testing.T) {
	block := Block{
		Category:        "Water Stewardship",
		Recommendations: []string{"Recycle process water from the tailings dam."},
	}
	in, ok := Classify(block, 1, "Kestrel")
	if !ok {
		t.Fatal("expected an insight")
	}
	if len(in.Steps) < 3 {
		t.Fatalf("expected at least 3 steps, got %d", len(in.Steps))
	}
	// No bank keyword matches "Water Stewardship".
	for _, step := range in.Steps[1:] {
		if step != genericStep {
			t.Fatalf("expected generic fallback steps, got %q", step)
		}
	}
}

func TestClassify_StepsCappedAtFour(t *testing.T) {
	block := Block{
		Category: "Operational Efficiency",
		Recommendations: []string{
			"Implement predictive maintenance for haul trucks.",
			"Optimize haul routes to cut idle time.",
			"Train operators on eco-driving techniques.",
			"Automate dispatch across the pit.",
			"Streamline shift handovers to reduce idle running.",
		},
	}
	in, _ := Classify(block, 1, "Kestrel")
	if len(in.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(in.Steps))
	}
}

func TestClassify_StepsGetTerminalPunctuation(t *testing.T) {
	block := Block{
		Category:        "Equipment Optimization",
		Recommendations: []string{"Upgrade loader hydraulics to modern spec"},
	}
	in, _ := Classify(block, 1, "Kestrel")
	if !strings.HasSuffix(in.Steps[0], ".") {
		t.Fatalf("step missing terminal punctuation: %q", in.Steps[0])
	}
}

func TestClassify_Title(t *testing.T) {
	block := Block{
		Category:        "Energy Transition",
		Recommendations: []string{"Install solar capacity at the site."},
	}
	in, _ := Classify(block, 1, "Kestrel")
	if in.Title != "Install solar for Energy Transition" {
		t.Fatalf("title %q", in.Title)
	}

	block.Recommendations = []string{"2024: electrify the light fleet."}
	in, _ = Classify(block, 1, "Kestrel")
	if in.Title != "Energy Transition Improvements" {
		t.Fatalf("fallback title %q", in.Title)
	}
}

func TestClassify_EmptyBlock(t *testing.T) {
	if _, ok := Classify(Block{Category: "Anything"}, 1, "Kestrel"); ok {
		t.Fatal("expected no insight for an empty block")
	}
}
