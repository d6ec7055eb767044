package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"minesight/internal/gateway/entity"
	"minesight/internal/gateway/repository/minestore"
)

// HandleCreateMine registers a new mine for the requesting user.
func (h *MineHandler) HandleCreateMine(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID.IsZero() {
		http.Error(w, "X-User-ID header is required", http.StatusUnauthorized)
		return
	}

	var in struct {
		Name       string `json:"name"`
		Location   string `json:"location"`
		Subsidiary string `json:"subsidiary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	h.mines.EnsureLoaded()
	mine := minestore.Mine{
		ID:         newMineID(),
		UserID:     userID.String(),
		Name:       name,
		Location:   strings.TrimSpace(in.Location),
		Subsidiary: strings.TrimSpace(in.Subsidiary),
		CreatedAt:  time.Now().UTC(),
	}
	h.mines.Put(mine)
	h.mines.Save()

	writeJSON(w, http.StatusCreated, mine)
}

// HandleListMines returns all mines owned by the requesting user,
// oldest first.
func (h *MineHandler) HandleListMines(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID.IsZero() {
		http.Error(w, "X-User-ID header is required", http.StatusUnauthorized)
		return
	}

	h.mines.EnsureLoaded()
	mines := h.mines.ListByUser(userID.String())
	if mines == nil {
		mines = []minestore.Mine{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mines": mines,
	})
}

// HandleGetMine returns one mine record including its analysis status.
func (h *MineHandler) HandleGetMine(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mine)
}

// HandleDeleteMine removes a mine and lets its stored documents age out.
func (h *MineHandler) HandleDeleteMine(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}
	h.mines.Delete(mine.ID)
	h.mines.Save()
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// ownedMine loads the mine named in the path and enforces that the
// requesting user owns it. Writes the error response itself.
func (h *MineHandler) ownedMine(w http.ResponseWriter, r *http.Request) (minestore.Mine, bool) {
	userID := requestUserID(r)
	if userID.IsZero() {
		http.Error(w, "X-User-ID header is required", http.StatusUnauthorized)
		return minestore.Mine{}, false
	}
	mineID := entity.NormalizeMineID(r.PathValue("id"))
	if mineID.IsZero() {
		http.Error(w, "mine id is required", http.StatusBadRequest)
		return minestore.Mine{}, false
	}

	h.mines.EnsureLoaded()
	mine, ok := h.mines.Get(mineID.String())
	if !ok {
		http.Error(w, "mine not found", http.StatusNotFound)
		return minestore.Mine{}, false
	}
	if mine.UserID != "" && mine.UserID != userID.String() {
		http.Error(w, "mine belongs to another user", http.StatusForbidden)
		return minestore.Mine{}, false
	}
	return mine, true
}

func newMineID() string {
	return fmt.Sprintf("mine-%d", time.Now().UnixNano())
}
