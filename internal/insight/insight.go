// Package insight converts free-text recommendation documents into
// structured, prioritized insight cards. The text comes from an LLM and
// may be markdown, numbered prose, or plain paragraphs; parsing is
// heuristic and never fails, it only degrades.
package insight

import "time"

// Insight is one recommendation card: a category of work with ordered
// implementation steps and inferred priority/impact/timeline. Created
// once, never mutated.
type Insight struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Steps    []string `json:"steps"`
	Category string   `json:"category"`
	Priority string   `json:"priority"`
	Impact   string   `json:"impact"`
	Timeline string   `json:"timeline"`
	Source   string   `json:"source"`
}

// Record wraps the insights produced by one analysis run.
type Record struct {
	Insights      []Insight `json:"insights"`
	GeneratedAt   time.Time `json:"generatedAt"`
	TotalInsights int       `json:"totalInsights"`
	Source        string    `json:"source"`
}

const (
	sourceAIAnalysis = "AI Analysis"
	sourceNoData     = "No data available"

	maxStructuredInsights   = 8
	maxUnstructuredInsights = 6
)

// BuildRecord parses a suggestions document into a full insights
// record for a mine.
func BuildRecord(suggestionsText, mineName string) Record {
	if suggestionsText == "" {
		return Record{
			Insights:    []Insight{},
			GeneratedAt: time.Now().UTC(),
			Source:      sourceNoData,
		}
	}

	insights := Parse(suggestionsText, mineName)
	return Record{
		Insights:      insights,
		GeneratedAt:   time.Now().UTC(),
		TotalInsights: len(insights),
		Source:        sourceAIAnalysis,
	}
}

// Parse runs the structured segmenter over the text and classifies each
// category block into an insight. When no category structure is found
// it falls back to theme bucketing over raw sentences.
func Parse(text, mineName string) []Insight {
	insights := make([]Insight, 0, maxStructuredInsights)
	id := 1
	for _, block := range Segment(text) {
		if in, ok := Classify(block, id, mineName); ok {
			insights = append(insights, in)
			id++
		}
	}

	if len(insights) == 0 {
		return ThemeInsights(text, mineName)
	}
	if len(insights) > maxStructuredInsights {
		insights = insights[:maxStructuredInsights]
	}
	return insights
}
