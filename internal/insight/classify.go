package insight

import (
	"regexp"
	"strings"
)

var (
	highPriorityCues = []string{"immediate", "urgent", "critical", "essential", "high priority", "significant reduction", "major impact"}
	lowPriorityCues  = []string{"explore", "research", "consider", "investigate", "long-term", "potential"}

	highImpactCues = []string{"significant", "major", "substantial", "dramatic", "high impact"}
	lowImpactCues  = []string{"minor", "small", "incremental", "marginal"}
)

// stepBank holds canned follow-up steps per category keyword, used to
// pad an insight up to the three-step minimum. Order matters: the first
// keyword contained in the category wins.
var stepBank = []struct {
	keyword string
	steps   []string
}{
	{"operation", []string{"Monitor performance metrics regularly", "Conduct regular maintenance checks", "Train staff on new procedures"}},
	{"energy", []string{"Monitor energy consumption patterns", "Conduct energy audit", "Set energy reduction targets"}},
	{"equipment", []string{"Schedule regular equipment maintenance", "Train operators on efficient usage", "Monitor equipment performance"}},
	{"emission", []string{"Track emission reduction progress", "Report on sustainability metrics", "Set reduction targets"}},
	{"efficiency", []string{"Measure current efficiency levels", "Identify improvement opportunities", "Implement monitoring systems"}},
	{"technology", []string{"Research latest technologies", "Evaluate technology options", "Plan implementation strategy"}},
}

const genericStep = "Establish monitoring and evaluation framework"

const minSteps = 3

var titleActionRe = regexp.MustCompile(`^([A-Za-z]+\s+[A-Za-z]+)`)

// Assessment is the inferred priority/impact/timeline for a set of
// recommendation lines.
type Assessment struct {
	Priority string
	Impact   string
	Timeline string
}

// Assess infers priority, impact, and timeline from keyword cues in the
// joined recommendation text. Absent any cue everything lands on the
// medium defaults.
func Assess(recommendations []string) Assessment {
	text := strings.ToLower(strings.Join(recommendations, " "))

	a := Assessment{Priority: "medium", Impact: "Medium", Timeline: "6-12 months"}

	if containsAny(text, highPriorityCues) {
		a.Priority = "high"
	} else if containsAny(text, lowPriorityCues) {
		a.Priority = "low"
	}

	if containsAny(text, highImpactCues) {
		a.Impact = "High"
	} else if containsAny(text, lowImpactCues) {
		a.Impact = "Low"
	}

	switch a.Priority {
	case "high":
		if strings.Contains(text, "quick") || strings.Contains(text, "immediate") {
			a.Timeline = "1-3 months"
		} else {
			a.Timeline = "3-6 months"
		}
	case "low":
		a.Timeline = "12+ months"
	}

	return a
}

// Classify turns one category block into an insight. Returns false for
// a block with no recommendations.
func Classify(block Block, id int, mineName string) (Insight, bool) {
	_ = mineName // fallback-theme titles carry the mine name; category titles do not
	if len(block.Recommendations) == 0 {
		return Insight{}, false
	}

	a := Assess(block.Recommendations)

	steps := make([]string, 0, minSteps+1)
	for _, rec := range block.Recommendations {
		if len(steps) == 4 {
			break
		}
		if !sentenceEndRe.MatchString(rec) {
			rec += "."
		}
		steps = append(steps, rec)
	}
	steps = padSteps(block.Category, steps)

	return Insight{
		ID:       id,
		Title:    titleFor(block.Category, block.Recommendations[0]),
		Steps:    steps,
		Category: block.Category,
		Priority: a.Priority,
		Impact:   a.Impact,
		Timeline: a.Timeline,
		Source:   sourceAIAnalysis,
	}, true
}

// padSteps appends bank steps until the minimum is reached. Every
// iteration appends exactly one step, so the loop is bounded by
// minSteps.
func padSteps(category string, steps []string) []string {
	for len(steps) < minSteps {
		steps = append(steps, nextBankStep(category, steps))
	}
	return steps
}

// nextBankStep picks the first bank entry for the category's keyword
// that is not already present in the existing steps, falling back to
// the generic monitoring step.
func nextBankStep(category string, existing []string) string {
	existingText := strings.ToLower(strings.Join(existing, " "))
	lowerCategory := strings.ToLower(category)
	for _, bank := range stepBank {
		if !strings.Contains(lowerCategory, bank.keyword) {
			continue
		}
		for _, step := range bank.steps {
			if !strings.Contains(existingText, strings.ToLower(step)) {
				return step
			}
		}
	}
	return genericStep
}

// titleFor builds "<first two words> for <category>" from the leading
// recommendation, or "<category> Improvements" when the line does not
// open with two plain words.
func titleFor(category, firstRecommendation string) string {
	if match := titleActionRe.FindStringSubmatch(firstRecommendation); match != nil {
		return match[1] + " for " + category
	}
	return category + " Improvements"
}
