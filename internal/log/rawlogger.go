package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger dumps rendered wrapper text, one block per export.
type RawLogger interface {
	Log(export string, text string)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log writes a timestamped banner line followed by the rendered text.
func (r *rawLogger) Log(export string, text string) {
	if r.w == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s ==== %s: %d bytes\n",
		time.Now().Format("2006/01/02 15:04:05"),
		export,
		len(text))
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteByte('\n')
	}

	r.mu.Lock()
	_, _ = io.WriteString(r.w, b.String())
	r.mu.Unlock()
}
