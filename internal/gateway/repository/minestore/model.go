// Package minestore persists mine records and the analysis artifacts
// attached to them. One Store serves either a Postgres backend (DSN
// provided) or a JSON file fallback for development.
package minestore

import (
	"strings"
	"time"

	"minesight/internal/emissions"
	"minesight/internal/insight"
)

// Mine is the unit of persistence: one physical site owned by a user,
// carrying at most one dashboard and one insights record at a time.
// A new analysis overwrites both wholesale.
type Mine struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	Name        string               `json:"name"`
	Location    string               `json:"location,omitempty"`
	Subsidiary  string               `json:"subsidiary,omitempty"`
	HasAnalysis bool                 `json:"has_analysis"`
	Analysis    *Analysis            `json:"analysis,omitempty"`
	Dashboard   *emissions.Dashboard `json:"dashboard,omitempty"`
	Insights    *insight.Record      `json:"insights,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at,omitempty"`
}

// Analysis keeps the raw LLM documents an analysis run was built from,
// so records can be re-derived or audited later.
type Analysis struct {
	AnalysisText    string    `json:"analysis"`
	SuggestionsText string    `json:"suggestions"`
	FileName        string    `json:"file_name,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// payload is the JSON-serialized slice of a Mine stored in a single
// column; the queryable fields live in their own columns.
type payload struct {
	Location   string               `json:"location,omitempty"`
	Subsidiary string               `json:"subsidiary,omitempty"`
	Analysis   *Analysis            `json:"analysis,omitempty"`
	Dashboard  *emissions.Dashboard `json:"dashboard,omitempty"`
	Insights   *insight.Record      `json:"insights,omitempty"`
}

func normalizeMine(m Mine) Mine {
	m.ID = strings.TrimSpace(m.ID)
	m.UserID = strings.TrimSpace(m.UserID)
	m.Name = strings.TrimSpace(m.Name)
	m.Location = strings.TrimSpace(m.Location)
	m.Subsidiary = strings.TrimSpace(m.Subsidiary)
	if m.Name == "" {
		m.Name = "Mine"
	}
	m.HasAnalysis = m.Dashboard != nil && m.Insights != nil
	return m
}

type rowScanner interface {
	Scan(dest ...any) error
}
