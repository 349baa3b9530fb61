package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	got := w.Header().Get(RequestIDHeader)
	if got == "" || got != seen {
		t.Fatalf("header %q, context %q", got, seen)
	}
	if _, err := ulid.ParseStrict(got); err != nil {
		t.Errorf("generated id %q is not a ULID: %v", got, err)
	}
}

func TestRequestID_ReusesWellFormedIncoming(t *testing.T) {
	h := RequestID(okHandler())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "trace-abc_123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "trace-abc_123" {
		t.Errorf("request id = %q, want incoming id", got)
	}
}

func TestRequestID_ReplacesMalformedIncoming(t *testing.T) {
	h := RequestID(okHandler())
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "<script>alert(1)</script>")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); strings.Contains(got, "<") {
		t.Errorf("malformed incoming id echoed: %q", got)
	}
}

func TestRequestIDFrom_Empty(t *testing.T) {
	if got := RequestIDFrom(httptest.NewRequest("GET", "/", nil).Context()); got != "" {
		t.Errorf("RequestIDFrom = %q, want empty", got)
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), RequestID, AccessLog(log))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/?target=secret.example", nil))

	out := buf.String()
	for _, want := range []string{"path=/", "status=418", "bytes=15", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("access log %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "secret.example") {
		t.Errorf("access log leaked query string: %q", out)
	}
}
