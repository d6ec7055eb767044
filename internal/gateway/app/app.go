// Package app wires configuration, stores, services, and handlers into
// a runnable gateway.
package app

import (
	"context"
	"fmt"
	"log"

	"minesight/internal/gateway/config"
	"minesight/internal/gateway/handler"
	"minesight/internal/gateway/repository/minestore"
	"minesight/internal/gateway/server"
	"minesight/internal/gateway/service/analysis"
	"minesight/internal/llm"
)

type App struct {
	server *server.Server
	mines  *minestore.Store
	model  llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	mines := minestore.NewFromDSN(cfg.DatabaseURL, cfg.StorePath)
	mines.EnsureLoaded()
	docs := chooseDocumentStore(cfg)
	model := initModel(ctx, cfg)

	analysisSvc := analysis.New(mines, docs, model)

	mineHandler := handler.NewMineHandler(mines, docs, analysisSvc)
	wsHandler := handler.NewAnalysisWSHandler(analysisSvc)

	// Routing & Server
	mux := server.NewMux(mineHandler, wsHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		mines:  mines,
		model:  model,
	}, nil
}

// initModel builds the Gemini client when a key is configured. Without
// one the gateway still runs; analyses fall back to estimated records.
func initModel(ctx context.Context, cfg *config.Config) llm.Client {
	if cfg.Gemini.APIKey == "" {
		log.Printf("model: no GEMINI_API_KEY, running in estimated-only mode")
		return nil
	}
	client, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Printf("model: gemini init failed, running in estimated-only mode: %v", err)
		return nil
	}
	log.Printf("model: using %s", client.Name())
	return client
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.mines.Save()
	if a.model != nil {
		_ = a.model.Close()
	}
	return a.server.Shutdown(ctx)
}
