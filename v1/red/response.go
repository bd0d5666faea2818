package red

import (
	"io"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
)

// responseRecorder captures the final status code and body size of a
// response. httpsnoop keeps the optional interfaces (Flusher, Hijacker,
// ReaderFrom, Pusher) of the wrapped writer intact.
type responseRecorder struct {
	status      int
	written     int64
	wroteHeader bool
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{status: http.StatusOK}
}

func (rec *responseRecorder) wrap(w http.ResponseWriter) http.ResponseWriter {
	return httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				next(code)
				rec.writeHeader(code)
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				n, err := next(b)
				rec.commit()
				rec.written += int64(n)
				return n, err
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				n, err := next(src)
				rec.commit()
				rec.written += n
				return n, err
			}
		},
	})
}

func (rec *responseRecorder) writeHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	// Informational responses other than 101 are followed by the real one.
	if code >= 100 && code <= 199 && code != http.StatusSwitchingProtocols {
		return
	}
	rec.wroteHeader = true
}

// commit marks the header as sent, either by a body write or by the handler
// returning. If only informational headers went out, net/http sends an
// implicit 200.
func (rec *responseRecorder) commit() {
	if rec.wroteHeader {
		return
	}
	if rec.status >= 100 && rec.status <= 199 {
		rec.status = http.StatusOK
	}
	rec.wroteHeader = true
}

// responseLength prefers an explicit Content-Length header and falls back to
// the bytes actually written.
func responseLength(resp Response) int64 {
	if resp.Header != nil {
		if v := resp.Header.Get("Content-Length"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
				return n
			}
		}
	}
	return resp.Size
}

// requestLength returns the size declared by the Content-Length header, or -1
// when the request carries none. net/http reports ContentLength 0 for
// bodyless requests without the header, so the header itself is checked.
func requestLength(r *http.Request) int64 {
	if r.Header.Get("Content-Length") == "" || r.ContentLength < 0 {
		return -1
	}
	return r.ContentLength
}
