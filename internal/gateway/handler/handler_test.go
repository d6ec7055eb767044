package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"minesight/internal/gateway/handler"
	"minesight/internal/gateway/repository/document"
	"minesight/internal/gateway/repository/minestore"
	"minesight/internal/gateway/server"
	"minesight/internal/gateway/service/analysis"
)

func newTestServer(t *testing.T) (http.Handler, *minestore.Store) {
	t.Helper()
	mines := minestore.New(filepath.Join(t.TempDir(), "mines.json"))
	docs := document.NewMemoryStore()
	svc := analysis.New(mines, docs, nil)
	mux := server.NewMux(
		handler.NewMineHandler(mines, docs, svc),
		handler.NewAnalysisWSHandler(svc),
	)
	return mux, mines
}

func doJSON(t *testing.T, mux http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func createMine(t *testing.T, mux http.Handler, userID, name string) minestore.Mine {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/api/mines", userID, map[string]string{
		"name":     name,
		"location": "Queensland",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var mine minestore.Mine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.NotEmpty(t, mine.ID)
	return mine
}

func TestCreateAndListMines(t *testing.T) {
	mux, _ := newTestServer(t)

	created := createMine(t, mux, "owner@example.com", "North Ridge")
	require.Equal(t, "North Ridge", created.Name)
	require.Equal(t, "owner@example.com", created.UserID)
	require.False(t, created.HasAnalysis)

	rec := doJSON(t, mux, http.MethodGet, "/api/mines", "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Mines []minestore.Mine `json:"mines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Mines, 1)

	// Another user sees nothing.
	rec = doJSON(t, mux, http.MethodGet, "/api/mines", "other@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Empty(t, out.Mines)
}

func TestMinesRequireUserHeader(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/mines", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/mines", "", map[string]string{"name": "X"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMineOwnership(t *testing.T) {
	mux, _ := newTestServer(t)
	mine := createMine(t, mux, "owner@example.com", "North Ridge")

	rec := doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID, "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID, "intruder@example.com", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/missing", "owner@example.com", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMine(t *testing.T) {
	mux, _ := newTestServer(t)
	mine := createMine(t, mux, "owner@example.com", "North Ridge")

	rec := doJSON(t, mux, http.MethodDelete, "/api/mines/"+mine.ID, "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID, "owner@example.com", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func analyzeRequest(t *testing.T, mineID, userID string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="document"; filename="report.pdf"`)
	partHeader.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test document"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/mines/"+mineID+"/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", userID)
	return req
}

func TestAnalyzeAndRecordEndpoints(t *testing.T) {
	mux, _ := newTestServer(t)
	mine := createMine(t, mux, "owner@example.com", "North Ridge")

	// Records 404 before any analysis.
	rec := doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/dashboard", "owner@example.com", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, analyzeRequest(t, mine.ID, "owner@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated minestore.Mine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.True(t, updated.HasAnalysis)
	require.NotNil(t, updated.Dashboard)
	// No model configured, so the estimated defaults apply.
	require.Equal(t, 45200, updated.Dashboard.TotalEmissions)
	require.Equal(t, "Estimated", updated.Dashboard.DataSource)

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/dashboard", "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/insights", "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/report", "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	require.Contains(t, rec.Body.String(), "# Carbon Emission Analysis Report")

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/documents", "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "report.pdf")
}

func TestAnalyzeRequiresDocument(t *testing.T) {
	mux, _ := newTestServer(t)
	mine := createMine(t, mux, "owner@example.com", "North Ridge")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file attached"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/mines/"+mine.ID+"/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", "owner@example.com")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeRejectsNonPDF(t *testing.T) {
	mux, _ := newTestServer(t)
	mine := createMine(t, mux, "owner@example.com", "North Ridge")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="document"; filename="notes.txt"`)
	partHeader.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/mines/"+mine.ID+"/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", "owner@example.com")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestGetDocumentServesBytes(t *testing.T) {
	mux, _ := newTestServer(t)
	mine := createMine(t, mux, "owner@example.com", "North Ridge")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, analyzeRequest(t, mine.ID, "owner@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	// The memory store cannot presign, so the handler falls back to
	// serving the stored bytes.
	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/documents/report.pdf", "owner@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "%PDF-1.4")

	rec = doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/documents/missing.pdf", "owner@example.com", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// presignStore overrides GetURL to behave like the S3 store.
type presignStore struct {
	*document.MemoryStore
}

func (s presignStore) GetURL(_ context.Context, mineID, name string) (string, error) {
	return "https://documents.example.com/" + mineID + "/" + name, nil
}

func TestGetDocumentRedirectsWhenPresigned(t *testing.T) {
	mines := minestore.New(filepath.Join(t.TempDir(), "mines.json"))
	docs := presignStore{document.NewMemoryStore()}
	svc := analysis.New(mines, docs, nil)
	mux := server.NewMux(
		handler.NewMineHandler(mines, docs, svc),
		handler.NewAnalysisWSHandler(svc),
	)

	mine := createMine(t, mux, "owner@example.com", "North Ridge")
	require.NoError(t, docs.Put(context.Background(), mine.ID, "report.pdf", []byte("%PDF-1.4")))

	rec := doJSON(t, mux, http.MethodGet, "/api/mines/"+mine.ID+"/documents/report.pdf", "owner@example.com", nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "https://documents.example.com/"+mine.ID+"/report.pdf", rec.Header().Get("Location"))
}

func TestCORSPreflight(t *testing.T) {
	mux, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/mines", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), "X-User-ID"))
}
