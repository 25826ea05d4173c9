package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/infrastructure/metrics"
)

// sseWriter serializes server-sent events onto one response stream.
type sseWriter struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	log     zerolog.Logger
	mu      sync.Mutex
}

func newSSEWriter(w http.ResponseWriter, flusher http.Flusher, log zerolog.Logger) *sseWriter {
	return &sseWriter{
		writer:  w,
		flusher: flusher,
		log:     log,
	}
}

func (w *sseWriter) send(name string, payload interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		w.log.Error().Err(err).Msg("marshal SSE payload")
		return
	}

	fmt.Fprintf(w.writer, "event: %s\n", name)
	fmt.Fprintf(w.writer, "data: %s\n\n", data)
	w.flusher.Flush()
}

// sseStream prepares the response for server-sent events. It returns false
// when the underlying writer cannot flush, in which case a JSON error has
// already been written.
func sseStream(c *gin.Context, log zerolog.Logger) (*sseWriter, bool) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return nil, false
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	return newSSEWriter(c.Writer, flusher, log), true
}

// drainEvents forwards generation events onto the stream. The channel is
// always consumed to the end so the run can finish and persist even when
// the client has gone away.
func drainEvents(sse *sseWriter, events <-chan deck.Event) {
	for ev := range events {
		sse.send(string(ev.Type), ev)
		switch ev.Type {
		case deck.EventComplete:
			if ev.Document != nil {
				metrics.RecordGeneration(string(ev.Document.Status), len(ev.Document.Slides))
			}
		case deck.EventError:
			metrics.RecordGeneration("failed", 0)
		}
	}
}
