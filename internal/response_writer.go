package internal

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter to make response commitment
// observable and one-shot. It tracks the pending status, runs hooks before
// the first write and refuses writes once the response has been finalized.
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	size        int64
	written     bool // headers committed
	sealed      bool // terminal write done, body closed
	beforeWrite []func()
	mu          sync.Mutex
}

// NewResponseWriter wraps w with a pending status of 200.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// OnBeforeWrite registers fn to run once, right before the headers are
// committed by whichever write comes first. Hooks see the final status.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeWrite = append(w.beforeWrite, fn)
}

// SetStatus records the status code to use when the response is committed
// implicitly. It has no effect once headers are written, and codes outside
// 200..999 are refused with ErrInvalidStatus.
func (w *ResponseWriter) SetStatus(code int) error {
	if !finalStatus(code) {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, code)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.written {
		w.status = code
	}
	return nil
}

// commit marks headers as written and returns the hooks to run.
// Caller must hold w.mu.
func (w *ResponseWriter) commit(code int) []func() {
	w.written = true
	w.status = code
	hooks := w.beforeWrite
	w.beforeWrite = nil
	return hooks
}

// WriteHeader commits the headers with code. Later calls are ignored.
// A code outside 200..999 is committed as 500.
func (w *ResponseWriter) WriteHeader(code int) {
	if !finalStatus(code) {
		code = http.StatusInternalServerError
	}
	w.mu.Lock()
	if w.written || w.sealed {
		w.mu.Unlock()
		return
	}
	hooks := w.commit(code)
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write streams b, committing the pending status first if needed.
// It fails with ErrResponseFinalized after Finalize or Seal.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	if w.sealed {
		w.mu.Unlock()
		return 0, ErrResponseFinalized
	}
	if !w.written {
		code := w.status
		hooks := w.commit(code)
		w.mu.Unlock()

		for _, fn := range hooks {
			fn()
		}
		w.ResponseWriter.WriteHeader(code)
	} else {
		w.mu.Unlock()
	}

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Finalize commits the response with code and body as a single terminal
// write. It returns ErrResponseFinalized if headers were already written
// and ErrInvalidStatus, leaving the response open, for a code outside 200..999.
func (w *ResponseWriter) Finalize(code int, body []byte) error {
	if !finalStatus(code) {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, code)
	}
	w.mu.Lock()
	if w.written || w.sealed {
		w.mu.Unlock()
		return ErrResponseFinalized
	}
	hooks := w.commit(code)
	w.sealed = true
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(code)
	if len(body) == 0 {
		return nil
	}
	n, err := w.ResponseWriter.Write(body)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return err
}

// Seal closes the writer for good. Headers are committed with the pending
// status if nothing was written yet. Later writes fail.
func (w *ResponseWriter) Seal() {
	w.mu.Lock()
	if w.sealed {
		w.mu.Unlock()
		return
	}
	if w.written {
		w.sealed = true
		w.mu.Unlock()
		return
	}
	code := w.status
	hooks := w.commit(code)
	w.sealed = true
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(code)
}

// Status is the committed status, or the pending one before commit.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size counts body bytes written so far.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written returns true if the response has been committed.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written || w.sealed
}

// Flush forwards to the underlying writer when it supports flushing.
func (w *ResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack hands over the connection when the underlying writer allows it.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap lets http.ResponseController reach the wrapped writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
