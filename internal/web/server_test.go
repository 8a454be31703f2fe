package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reportdev/reportd/internal/config"
	"github.com/reportdev/reportd/internal/report"
)

// newTestServer builds a server whose service has no database pool. Only
// request validation paths are exercised here; anything that would reach
// Postgres stays out of these tests.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: 30 * time.Second,
		},
		Upload: config.UploadConfig{
			MaxFileSize:         1 << 20,
			MaxConcurrent:       2,
			MaxWaitTime:         time.Second,
			CleanTimeout:        time.Minute,
			DefaultFillStrategy: "forward",
		},
	}
	return NewServer(report.NewService(nil, cfg), cfg)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if body["active_uploads"] != float64(0) {
		t.Errorf("active_uploads = %v, want 0", body["active_uploads"])
	}
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"bad report id", http.MethodGet, "/api/report/not-a-uuid", http.StatusBadRequest},
		{"bad report id on delete", http.MethodDelete, "/api/report/xyz", http.StatusBadRequest},
		{"bad report id on column list", http.MethodGet, "/api/report/nope/column", http.StatusBadRequest},
		{"negative offset", http.MethodGet, "/api/report?offset=-1", http.StatusBadRequest},
		{"zero limit", http.MethodGet, "/api/report?limit=0", http.StatusBadRequest},
		{"limit over cap", http.MethodGet, "/api/report?limit=500", http.StatusBadRequest},
		{"non-numeric offset", http.MethodGet, "/api/report?offset=abc", http.StatusBadRequest},
		{
			"bad dtype filter", http.MethodGet,
			"/api/report/5f1c2f60-14a1-4b21-9c08-2a54a75f44d1/column?dtype=blob",
			http.StatusUnprocessableEntity,
		},
		{
			"bad operation token", http.MethodGet,
			"/api/report/5f1c2f60-14a1-4b21-9c08-2a54a75f44d1/column/amount?operation=variance",
			http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestHandleCreateReport_BadRequests(t *testing.T) {
	s := newTestServer(t)

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewBufferString("a,b\n1,2\n"))
		req.Header.Set("Content-Type", "text/csv")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if err := w.WriteField("name", "orders"); err != nil {
			t.Fatal(err)
		}
		w.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/report", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown fill strategy", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		fw, err := w.CreateFormFile("file", "orders.csv")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("a,b\n1,2\n"))
		w.WriteField("fill_strategy", "interpolate")
		w.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/report", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
	})
}
