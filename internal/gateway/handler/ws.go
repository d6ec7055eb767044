package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"minesight/internal/gateway/service/analysis"
)

// AnalysisWSHandler streams analyze progress events to clients
// watching a mine.
type AnalysisWSHandler struct {
	svc *analysis.Service
}

func NewAnalysisWSHandler(svc *analysis.Service) *AnalysisWSHandler {
	return &AnalysisWSHandler{svc: svc}
}

const (
	analysisWSWriteWait = 10 * time.Second
	analysisWSPongWait  = 60 * time.Second
	analysisWSPingEvery = (analysisWSPongWait * 9) / 10
)

var analysisWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type analysisWSOutbound struct {
	Type     string `json:"type"`
	MineID   string `json:"mineId,omitempty"`
	Stage    string `json:"stage,omitempty"`
	Message  string `json:"message,omitempty"`
	Percent  int    `json:"percent,omitempty"`
	Code     string `json:"code,omitempty"`
	ErrorMsg string `json:"error,omitempty"`
}

func (h *AnalysisWSHandler) HandleAnalysisWS(w http.ResponseWriter, r *http.Request) {
	mineID := strings.TrimSpace(r.URL.Query().Get("mine"))
	if mineID == "" {
		http.Error(w, "mine is required", http.StatusBadRequest)
		return
	}

	conn, err := analysisWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(analysisWSPongWait)); err != nil {
		log.Printf("analysis ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(analysisWSPongWait))
	})

	writeCh := make(chan analysisWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(analysisWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(analysisWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(analysisWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	events, unsubscribe, subErr := h.svc.Subscribe(mineID)
	if subErr != nil {
		pushAnalysisWS(writeCh, analysisWSOutbound{
			Type:     "error",
			Code:     "invalid_argument",
			ErrorMsg: subErr.Error(),
		})
		cancel()
		<-writerDone
		return
	}
	defer unsubscribe()

	pushAnalysisWS(writeCh, analysisWSOutbound{
		Type:   "subscribed",
		MineID: mineID,
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				pushAnalysisWS(writeCh, analysisWSOutbound{
					Type:    "progress",
					MineID:  ev.MineID,
					Stage:   ev.Stage,
					Message: ev.Message,
					Percent: ev.Percent,
				})
			}
		}
	}()

	// The read loop only keeps the connection alive and notices when
	// the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			<-writerDone
			return
		}
	}
}

func pushAnalysisWS(writeCh chan analysisWSOutbound, out analysisWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
