// Package emissions turns free-text emission analysis documents into
// structured dashboard records. Input text comes straight from an LLM
// and carries no structural guarantees; every function here is total
// and falls back to fixed defaults instead of failing.
package emissions

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTotalEmissions is the assumed site total (tons CO2e) when a
// document carries no usable tonnage figure.
const DefaultTotalEmissions = 45200

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Source is one emission source extracted from (or defaulted into) an
// analysis document.
type Source struct {
	Name       string   `json:"name"`
	Percentage int      `json:"percentage"`
	Tons       int      `json:"tons"`
	Priority   Priority `json:"priority"`
}

// Metrics is the raw extraction result before dashboard synthesis.
// Scope percentages are 0 when the document never labels scopes, unless
// the default split was substituted.
type Metrics struct {
	Sources        []Source `json:"sources"`
	Scope1         int      `json:"scope1"`
	Scope2         int      `json:"scope2"`
	Scope3         int      `json:"scope3"`
	TotalEmissions int      `json:"totalEmissions"`
}

var (
	sourceRe = regexp.MustCompile(`([A-Za-z\s]+):\s*(\d+)%`)
	scope1Re = regexp.MustCompile(`(?i)Scope 1[^:]*:\s*(\d+)%`)
	scope2Re = regexp.MustCompile(`(?i)Scope 2[^:]*:\s*(\d+)%`)
	scope3Re = regexp.MustCompile(`(?i)Scope 3[^:]*:\s*(\d+)%`)
	totalRe  = regexp.MustCompile(`(?i)(\d+[,.]?\d*)\s*(?:tons?|t)(?:\s*CO2e)?`)
)

// PriorityFor maps a percentage share to a mitigation priority.
func PriorityFor(percentage int) Priority {
	switch {
	case percentage >= 20:
		return PriorityHigh
	case percentage >= 10:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ExtractMetrics scans an analysis document for "Name: NN%" source
// lines, Scope 1/2/3 percentages, and a standalone tonnage figure.
func ExtractMetrics(text string) Metrics {
	return ExtractMetricsWithHint(text, DefaultTotalEmissions)
}

// ExtractMetricsWithHint is ExtractMetrics with an explicit total used
// to derive per-source tonnage for candidates found before the real
// total is known.
//
// A line like "Scope 1 Emissions: 60%" is deliberately counted twice:
// once as a generic source and once as the scope 1 figure.
func ExtractMetricsWithHint(text string, totalHint int) Metrics {
	if totalHint <= 0 {
		totalHint = DefaultTotalEmissions
	}

	var m Metrics
	for _, match := range sourceRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(match[1])
		pct, err := strconv.Atoi(match[2])
		if err != nil || name == "" || pct == 0 {
			continue
		}
		m.Sources = append(m.Sources, Source{
			Name:       name,
			Percentage: pct,
			Tons:       RoundShare(pct, totalHint),
			Priority:   PriorityFor(pct),
		})
	}

	m.Scope1 = firstPercent(scope1Re, text)
	m.Scope2 = firstPercent(scope2Re, text)
	m.Scope3 = firstPercent(scope3Re, text)

	// A matched tonnage figure wins even when it parses to zero; the
	// per-source sum only applies when no figure was found at all.
	if match := totalRe.FindStringSubmatch(text); match != nil {
		m.TotalEmissions = parseLeadingInt(match[1])
	} else {
		for _, src := range m.Sources {
			m.TotalEmissions += src.Tons
		}
	}
	if m.TotalEmissions == 0 {
		m.TotalEmissions = totalHint
	}

	// Documents often name sources without ever labelling scopes; an
	// all-zero scope chart would be misleading, so substitute the
	// industry-typical split.
	if len(m.Sources) > 0 && m.Scope1 == 0 && m.Scope2 == 0 && m.Scope3 == 0 {
		m.Scope1, m.Scope2, m.Scope3 = 60, 15, 25
	}

	return m
}

// RoundShare returns percentage/100 of total, rounded to whole tons.
func RoundShare(percentage, total int) int {
	return int(math.Round(float64(percentage) / 100 * float64(total)))
}

func firstPercent(re *regexp.Regexp, text string) int {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// parseLeadingInt mimics a lenient integer parse: one thousands
// separator is dropped and anything after the leading digit run
// (a decimal point included) is ignored.
func parseLeadingInt(raw string) int {
	raw = strings.Replace(raw, ",", "", 1)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return n
}
