package server

import (
	"net/http"

	"minesight/internal/gateway/handler"
	"minesight/internal/gateway/middleware"
)

func NewMux(
	mineHandler *handler.MineHandler,
	wsHandler *handler.AnalysisWSHandler,
) http.Handler {
	mux := http.NewServeMux()

	// Mine lifecycle
	mux.HandleFunc("POST /api/mines", mineHandler.HandleCreateMine)
	mux.HandleFunc("GET /api/mines", mineHandler.HandleListMines)
	mux.HandleFunc("GET /api/mines/{id}", mineHandler.HandleGetMine)
	mux.HandleFunc("DELETE /api/mines/{id}", mineHandler.HandleDeleteMine)

	// Analysis pipeline and derived records
	mux.HandleFunc("POST /api/mines/{id}/analyze", mineHandler.HandleAnalyze)
	mux.HandleFunc("GET /api/mines/{id}/dashboard", mineHandler.HandleDashboard)
	mux.HandleFunc("GET /api/mines/{id}/insights", mineHandler.HandleInsights)
	mux.HandleFunc("GET /api/mines/{id}/report", mineHandler.HandleReport)
	mux.HandleFunc("GET /api/mines/{id}/documents", mineHandler.HandleListDocuments)
	mux.HandleFunc("GET /api/mines/{id}/documents/{name}", mineHandler.HandleGetDocument)

	// Progress stream
	mux.HandleFunc("GET /ws/analysis", wsHandler.HandleAnalysisWS)

	// Middleware
	return middleware.CORS(mux)
}
