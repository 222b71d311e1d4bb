package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLoggerRecordsStatusAndBytes(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("expected warn level for 4xx, got %s", entry.Level)
	}
	if entry.Data["status"] != http.StatusTeapot {
		t.Errorf("unexpected status field %v", entry.Data["status"])
	}
	if entry.Data["bytes"] != len("short and stout") {
		t.Errorf("unexpected bytes field %v", entry.Data["bytes"])
	}
	if entry.Data["path"] != "/brew" {
		t.Errorf("unexpected path field %v", entry.Data["path"])
	}
}

func TestLoggerKeepsFlusher(t *testing.T) {
	rec := httptest.NewRecorder()
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("wrapped writer must implement http.Flusher")
		}
		w.Write([]byte("data: x\n\n"))
		f.Flush()
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", nil))

	if !rec.Flushed {
		t.Error("expected the underlying recorder to be flushed")
	}
}
