package insight

import (
	"regexp"
	"strings"
)

// Block is one detected category with the recommendation lines
// collected under it.
type Block struct {
	Category        string
	Recommendations []string
}

// Line predicates, each testable on its own. Segment composes them in
// a fixed order: header first, then recommendation, then prose
// sentence mining.
var (
	markdownHeadingRe = regexp.MustCompile(`^#+\s+`)
	numberedHeaderRe  = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	titleColonRe      = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*:$`)
	boldLineRe        = regexp.MustCompile(`^\*\*.+\*\*$`)
	allCapsRe         = regexp.MustCompile(`^[A-Z\s]{5,}$`)

	bulletRe       = regexp.MustCompile(`^[-*•]\s+`)
	numberedItemRe = regexp.MustCompile(`^\d+\.\s+`)
	sentenceLineRe = regexp.MustCompile(`^[A-Z].*[.!?]$`)
	lowerStartRe   = regexp.MustCompile(`^[a-z]`)

	sentenceEndRe   = regexp.MustCompile(`[.!?]$`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

	headingMarkupRe = regexp.MustCompile(`^#+\s*`)
	numberMarkupRe  = regexp.MustCompile(`^\d+\.\s*`)
)

var actionVerbs = []string{
	"implement", "install", "upgrade", "optimize", "reduce", "improve", "enhance",
	"develop", "create", "establish", "conduct", "perform", "monitor", "track",
	"train", "educate", "replace", "switch", "integrate", "automate", "streamline",
}

// IsCategoryHeader reports whether a trimmed line opens a new category:
// a markdown heading, a numbered section, a short title-case line ending
// in a colon, a fully bolded line, or an all-caps line.
func IsCategoryHeader(line string) bool {
	return markdownHeadingRe.MatchString(line) ||
		numberedHeaderRe.MatchString(line) ||
		titleColonRe.MatchString(line) ||
		boldLineRe.MatchString(line) ||
		allCapsRe.MatchString(line)
}

// CategoryName strips heading/number/bold markup and a trailing colon.
func CategoryName(line string) string {
	line = headingMarkupRe.ReplaceAllString(line, "")
	line = numberMarkupRe.ReplaceAllString(line, "")
	line = strings.TrimPrefix(line, "**")
	line = strings.TrimSuffix(line, "**")
	line = strings.TrimSuffix(line, ":")
	return strings.TrimSpace(line)
}

// IsRecommendationLine reports whether a trimmed line reads as one
// recommendation: bulleted, numbered, a capitalized sentence, or a
// long lower-case continuation.
func IsRecommendationLine(line string) bool {
	return bulletRe.MatchString(line) ||
		numberedItemRe.MatchString(line) ||
		sentenceLineRe.MatchString(line) ||
		(lowerStartRe.MatchString(line) && len(line) > 30)
}

// StripMarker removes the bullet or list-number marker from a
// recommendation line.
func StripMarker(line string) string {
	line = bulletRe.ReplaceAllString(line, "")
	line = numberedItemRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// IsActionableSentence reports whether a sentence contains one of the
// recognized action verbs.
func IsActionableSentence(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// Segment scans the text line by line and groups recommendation lines
// under the most recent category header. Long prose lines that are not
// themselves recommendations are mined for actionable sentences.
// Returns no blocks when the text has no recognizable category
// structure; the caller then switches to theme bucketing.
func Segment(text string) []Block {
	var blocks []Block
	currentCategory := ""
	var current []string

	flush := func() {
		if currentCategory != "" && len(current) > 0 {
			blocks = append(blocks, Block{Category: currentCategory, Recommendations: current})
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case IsCategoryHeader(line):
			flush()
			currentCategory = CategoryName(line)
			current = nil
		case IsRecommendationLine(line):
			rec := StripMarker(line)
			if len(rec) > 10 {
				current = append(current, rec)
			}
		case len(line) > 50 && sentenceEndRe.MatchString(line):
			for _, part := range sentenceSplitRe.Split(line, -1) {
				if len(strings.TrimSpace(part)) <= 20 {
					continue
				}
				sentence := strings.TrimSpace(part) + "."
				if IsActionableSentence(sentence) {
					current = append(current, sentence)
				}
			}
		}
	}
	flush()

	return blocks
}
