package insight

import (
	"sort"
	"strings"
)

// themes are the fixed buckets for unstructured text, in declaration
// order. Ordering is load-bearing: sentence assignment uses a strict
// greater-than comparison, so on a tied keyword score the earlier theme
// wins.
var themes = []struct {
	name     string
	keywords []string
}{
	{"Operational Efficiency", []string{"efficient", "optimize", "productivity", "efficiency"}},
	{"Energy Management", []string{"energy", "power", "electricity", "fuel", "consumption"}},
	{"Equipment Optimization", []string{"equipment", "machinery", "vehicle", "maintenance"}},
	{"Emission Reduction", []string{"emission", "carbon", "co2", "ghg", "reduction"}},
	{"Technology Implementation", []string{"technology", "digital", "automation", "system"}},
	{"Process Improvement", []string{"process", "procedure", "workflow", "method"}},
}

type themeBucket struct {
	name      string
	sentences []string
	score     int
}

// ThemeInsights handles text with no category structure at all: split
// into sentences, bucket by keyword overlap, and emit one insight per
// theme that attracted at least two sentences.
func ThemeInsights(text, mineName string) []Insight {
	var sentences []string
	for _, part := range sentenceSplitRe.Split(text, -1) {
		if len(strings.TrimSpace(part)) > 20 {
			sentences = append(sentences, part)
		}
	}

	buckets := bucketByTheme(sentences)

	insights := make([]Insight, 0, maxUnstructuredInsights)
	id := 1
	for _, bucket := range buckets {
		if len(bucket.sentences) < 2 {
			continue
		}
		a := Assess(bucket.sentences)

		steps := make([]string, 0, 4)
		for _, s := range bucket.sentences {
			if len(steps) == 4 {
				break
			}
			steps = append(steps, strings.TrimSpace(s)+".")
		}

		insights = append(insights, Insight{
			ID:       id,
			Title:    bucket.name + " for " + mineName,
			Steps:    steps,
			Category: bucket.name,
			Priority: a.Priority,
			Impact:   a.Impact,
			Timeline: a.Timeline,
			Source:   sourceAIAnalysis,
		})
		id++
	}

	if len(insights) > maxUnstructuredInsights {
		insights = insights[:maxUnstructuredInsights]
	}
	return insights
}

// bucketByTheme assigns each sentence to the theme with the highest
// keyword-hit count, dropping sentences that hit nothing, and returns
// non-empty buckets ordered by descending total score (declaration
// order on ties).
func bucketByTheme(sentences []string) []themeBucket {
	buckets := make([]themeBucket, len(themes))
	for i, theme := range themes {
		buckets[i].name = theme.name
	}

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		bestIdx := -1
		bestScore := 0
		for i, theme := range themes {
			score := 0
			for _, kw := range theme.keywords {
				if strings.Contains(lower, kw) {
					score++
				}
			}
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			buckets[bestIdx].sentences = append(buckets[bestIdx].sentences, sentence)
			buckets[bestIdx].score += bestScore
		}
	}

	out := buckets[:0]
	for _, bucket := range buckets {
		if len(bucket.sentences) > 0 {
			out = append(out, bucket)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
