// Package handler exposes the mine and analysis endpoints over plain
// HTTP. Identity arrives as an X-User-ID header supplied by the auth
// layer in front of the gateway.
package handler

import (
	"encoding/json"
	"net/http"

	"minesight/internal/gateway/entity"
	"minesight/internal/gateway/repository/document"
	"minesight/internal/gateway/repository/minestore"
	"minesight/internal/gateway/service/analysis"
)

type MineHandler struct {
	mines    *minestore.Store
	docs     document.Store
	analysis *analysis.Service
}

func NewMineHandler(mines *minestore.Store, docs document.Store, svc *analysis.Service) *MineHandler {
	return &MineHandler{mines: mines, docs: docs, analysis: svc}
}

func requestUserID(r *http.Request) entity.UserID {
	return entity.NormalizeUserID(r.Header.Get("X-User-ID"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
