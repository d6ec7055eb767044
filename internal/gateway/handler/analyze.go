package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"minesight/internal/gateway/repository/document"
	"minesight/internal/gateway/service/analysis"
	"minesight/internal/report"
)

// maxUploadBytes caps the multipart upload. Sustainability reports run
// a few megabytes; 32 MiB leaves generous headroom.
const maxUploadBytes = 32 << 20

// HandleAnalyze accepts a multipart PDF upload, runs the analysis
// pipeline, and returns the updated mine with its fresh records.
func (h *MineHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		http.Error(w, "document file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "pdf") {
		http.Error(w, "document must be a PDF", http.StatusUnsupportedMediaType)
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read document", http.StatusBadRequest)
		return
	}

	updated, err := h.analysis.Analyze(r.Context(), mine.UserID, mine.ID, header.Filename, content)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrMineNotFound):
			http.Error(w, "mine not found", http.StatusNotFound)
		case errors.Is(err, analysis.ErrForbidden):
			http.Error(w, "mine belongs to another user", http.StatusForbidden)
		default:
			log.Printf("handler: analyze %s failed: %v", mine.ID, err)
			http.Error(w, "analysis failed", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDashboard returns the dashboard record for an analyzed mine.
func (h *MineHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}
	if mine.Dashboard == nil {
		http.Error(w, "mine has no analysis yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mine.Dashboard)
}

// HandleInsights returns the insight record for an analyzed mine.
func (h *MineHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}
	if mine.Insights == nil {
		http.Error(w, "mine has no analysis yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mine.Insights)
}

// HandleReport renders the markdown emission report for an analyzed
// mine.
func (h *MineHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}
	if mine.Dashboard == nil || mine.Insights == nil {
		http.Error(w, "mine has no analysis yet", http.StatusNotFound)
		return
	}
	out := report.Render(mine.Name, *mine.Dashboard, *mine.Insights, time.Now().UTC())
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

// HandleGetDocument hands out one stored document. Stores that can
// presign answer with a redirect to the object URL; otherwise the
// bytes are served directly.
func (h *MineHandler) HandleGetDocument(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		http.Error(w, "document name is required", http.StatusBadRequest)
		return
	}

	if url, err := h.docs.GetURL(r.Context(), mine.ID, name); err == nil && url != "" {
		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
		return
	}

	content, err := h.docs.Get(r.Context(), mine.ID, name)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}
		log.Printf("handler: get document %s/%s failed: %v", mine.ID, name, err)
		http.Error(w, "failed to read document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(content)
}

// HandleListDocuments lists stored document names for a mine.
func (h *MineHandler) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	mine, ok := h.ownedMine(w, r)
	if !ok {
		return
	}
	names, err := h.docs.List(r.Context(), mine.ID)
	if err != nil {
		log.Printf("handler: list documents for %s failed: %v", mine.ID, err)
		http.Error(w, "failed to list documents", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": names,
	})
}
