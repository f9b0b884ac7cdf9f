package endpoint

import (
	"io"
	"net/http"
)

// The export downloads are the only responses big enough to be worth
// streaming; flush once per completed chunk so the browser's download
// starts before the whole workbook is encoded.
const responseChunkSize = 4096

type flushWriter struct {
	w http.ResponseWriter
	f http.Flusher

	pending int
}

func newFlushWriter(w http.ResponseWriter) io.Writer {
	if f, ok := w.(http.Flusher); ok {
		return &flushWriter{w: w, f: f}
	}
	return w
}

func (w *flushWriter) Write(b []byte) (int, error) {
	n, err := w.w.Write(b)

	w.pending += n
	if w.pending >= responseChunkSize {
		w.f.Flush()
		w.pending = 0
	}

	return n, err
}
