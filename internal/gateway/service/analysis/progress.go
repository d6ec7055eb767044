package analysis

import (
	"strings"
	"sync"
	"time"
)

// Progress stages in pipeline order. Percent values are fixed per
// stage so clients can drive a progress bar without bookkeeping.
const (
	StageReceived   = "received"
	StageStored     = "stored"
	StageAnalyzing  = "analyzing"
	StageSuggesting = "suggesting"
	StageComplete   = "complete"
	StageError      = "error"
)

// ProgressEvent is one step of an analyze run, broadcast to websocket
// subscribers watching the mine.
type ProgressEvent struct {
	MineID  string    `json:"mineId"`
	Stage   string    `json:"stage"`
	Message string    `json:"message,omitempty"`
	Percent int       `json:"percent"`
	At      time.Time `json:"at"`
}

// progressBroker fans analyze progress out to per-mine subscribers.
// Publishing never blocks; a slow subscriber loses old events instead
// of stalling the pipeline.
type progressBroker struct {
	mu   sync.Mutex
	subs map[string]map[chan ProgressEvent]struct{}
}

func newProgressBroker() *progressBroker {
	return &progressBroker{subs: make(map[string]map[chan ProgressEvent]struct{})}
}

func (b *progressBroker) subscribe(mineID string) (<-chan ProgressEvent, func()) {
	mineID = strings.TrimSpace(mineID)
	ch := make(chan ProgressEvent, 32)

	b.mu.Lock()
	set, ok := b.subs[mineID]
	if !ok {
		set = make(map[chan ProgressEvent]struct{})
		b.subs[mineID] = set
	}
	set[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if set, ok := b.subs[mineID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(b.subs, mineID)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (b *progressBroker) publish(ev ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[strings.TrimSpace(ev.MineID)] {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Drop the oldest queued event to make room for the newest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
