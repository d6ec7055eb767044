// Package analysis runs the document-to-records pipeline for one mine:
// store the uploaded PDF, ask the model for analysis and suggestions,
// derive the dashboard and insight records, and persist everything on
// the mine. Progress is broadcast so websocket clients can follow along.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"minesight/internal/emissions"
	"minesight/internal/gateway/repository/document"
	"minesight/internal/gateway/repository/minestore"
	"minesight/internal/insight"
	"minesight/internal/llm"
)

var (
	ErrMineNotFound = errors.New("mine not found")
	ErrForbidden    = errors.New("mine belongs to another user")
)

type Service struct {
	mines  *minestore.Store
	docs   document.Store
	client llm.Client // nil means degraded mode, records come from defaults
	broker *progressBroker
}

func New(mines *minestore.Store, docs document.Store, client llm.Client) *Service {
	return &Service{
		mines:  mines,
		docs:   docs,
		client: client,
		broker: newProgressBroker(),
	}
}

// Subscribe attaches a progress listener for the mine. The returned
// cancel func must be called when the listener goes away.
func (s *Service) Subscribe(mineID string) (<-chan ProgressEvent, func(), error) {
	mineID = strings.TrimSpace(mineID)
	if mineID == "" {
		return nil, nil, fmt.Errorf("mine id is required")
	}
	ch, cancel := s.broker.subscribe(mineID)
	return ch, cancel, nil
}

// Analyze runs the full pipeline and returns the updated mine record.
// Model failures do not fail the run: the derivation layer falls back
// to estimated defaults when the texts come back empty.
func (s *Service) Analyze(ctx context.Context, userID, mineID, fileName string, pdf []byte) (minestore.Mine, error) {
	mineID = strings.TrimSpace(mineID)
	userID = strings.TrimSpace(userID)

	s.mines.EnsureLoaded()
	mine, ok := s.mines.Get(mineID)
	if !ok {
		return minestore.Mine{}, ErrMineNotFound
	}
	if userID != "" && mine.UserID != "" && mine.UserID != userID {
		return minestore.Mine{}, ErrForbidden
	}

	s.publish(mineID, StageReceived, "document received", 10)

	if err := s.docs.Put(ctx, mineID, fileName, pdf); err != nil {
		s.publish(mineID, StageError, "document storage failed", 0)
		return minestore.Mine{}, fmt.Errorf("store document: %w", err)
	}
	s.publish(mineID, StageStored, "document stored", 25)

	s.publish(mineID, StageAnalyzing, "analyzing emissions", 45)
	analysisText := s.analyzeDocument(ctx, mine.Name, pdf)

	s.publish(mineID, StageSuggesting, "generating suggestions", 70)
	suggestionsText := s.generateSuggestions(ctx, mine.Name, analysisText)

	dashboard := emissions.BuildDashboard(analysisText, mine.Name)
	record := insight.BuildRecord(suggestionsText, mine.Name)

	updated, ok := s.mines.Update(mineID, func(m *minestore.Mine) {
		m.Dashboard = &dashboard
		m.Insights = &record
		m.Analysis = &minestore.Analysis{
			AnalysisText:    analysisText,
			SuggestionsText: suggestionsText,
			FileName:        strings.TrimSpace(fileName),
			UpdatedAt:       time.Now().UTC(),
		}
	})
	if !ok {
		s.publish(mineID, StageError, "mine disappeared during analysis", 0)
		return minestore.Mine{}, ErrMineNotFound
	}
	s.mines.Save()

	s.publish(mineID, StageComplete, "analysis complete", 100)
	return updated, nil
}

func (s *Service) analyzeDocument(ctx context.Context, mineName string, pdf []byte) string {
	if s.client == nil {
		log.Printf("analysis: no model configured, using estimated defaults")
		return ""
	}
	text, err := s.client.AnalyzeDocument(ctx, mineName, pdf)
	if err != nil {
		log.Printf("analysis: document analysis failed: %v", err)
		return ""
	}
	return text
}

func (s *Service) generateSuggestions(ctx context.Context, mineName, analysisText string) string {
	if s.client == nil || strings.TrimSpace(analysisText) == "" {
		return ""
	}
	text, err := s.client.GenerateSuggestions(ctx, mineName, analysisText)
	if err != nil {
		log.Printf("analysis: suggestion generation failed: %v", err)
		return ""
	}
	return text
}

func (s *Service) publish(mineID, stage, message string, percent int) {
	s.broker.publish(ProgressEvent{
		MineID:  mineID,
		Stage:   stage,
		Message: message,
		Percent: percent,
		At:      time.Now().UTC(),
	})
}
