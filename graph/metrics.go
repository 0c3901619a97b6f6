package graph

import (
	"strconv"
	"time"
)

// Metrics is the per-run flat metric bundle: keys of the form
// "{node.name}.<suffix>", values formatted as strings. It is the sole
// failure-reporting channel out of Node.run and Graph.Run — callers detect
// node failures by scanning for keys ending in ".exception".
type Metrics map[string]string

// merge copies src into m, last-writer-wins on key collision. Collisions
// only occur when distinct nodes share a name, which is a caller bug rather
// than something the engine prevents.
func (m Metrics) merge(src Metrics) {
	for k, v := range src {
		m[k] = v
	}
}

// formatSeconds renders a duration as a 3-decimal-place seconds string.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
