package emit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogEmitter writes events to an io.Writer, either as human-readable text
// (one line per event) or as JSONL. Writes are synchronous; there is no
// internal buffering, so Flush is a no-op.
type LogEmitter struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter returns a LogEmitter writing to w. A nil w defaults to
// os.Stdout.
func NewLogEmitter(w io.Writer, jsonMode bool) *LogEmitter {
	if w == nil {
		w = os.Stdout
	}
	return &LogEmitter{writer: w, jsonMode: jsonMode}
}

func (l *LogEmitter) Emit(event Event) {
	if l.jsonMode {
		l.emitJSON(event)
	} else {
		l.emitText(event)
	}
}

func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		RunID    string         `json:"runID"`
		NodeName string         `json:"nodeName,omitempty"`
		Msg      string         `json:"msg"`
		Meta     map[string]any `json:"meta,omitempty"`
		Time     string         `json:"time"`
	}{
		RunID:    event.RunID,
		NodeName: event.NodeName,
		Msg:      event.Msg,
		Meta:     event.Meta,
		Time:     event.Time.Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if err != nil {
		fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogEmitter) emitText(event Event) {
	fmt.Fprintf(l.writer, "[%s] runID=%s", event.Msg, event.RunID)
	if event.NodeName != "" {
		fmt.Fprintf(l.writer, " node=%s", event.NodeName)
	}
	if len(event.Meta) > 0 {
		if metaJSON, err := json.Marshal(event.Meta); err == nil {
			fmt.Fprintf(l.writer, " meta=%s", metaJSON)
		} else {
			fmt.Fprintf(l.writer, " meta=%v", event.Meta)
		}
	}
	fmt.Fprint(l.writer, "\n")
}

func (l *LogEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, event := range events {
		l.Emit(event)
	}
	return nil
}

// Flush is a no-op: LogEmitter writes are synchronous. Wrap writer with
// bufio.Writer and flush that directly if buffering is needed.
func (l *LogEmitter) Flush(context.Context) error { return nil }
