package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWithGZip_CompressesResponseForAcceptingClients(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("snapshot payload ", 50)))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/download", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	if enc := rr.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", enc)
	}

	gz, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("response is not valid gzip: %v", err)
	}
	defer gz.Close()

	body, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if !strings.Contains(string(body), "snapshot payload") {
		t.Fatal("decompressed body lost its content")
	}
}

func TestWithGZip_PassThroughWithoutAcceptHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	if enc := rr.Header().Get("Content-Encoding"); enc != "" {
		t.Fatalf("expected no encoding, got %q", enc)
	}
	if rr.Body.String() != "plain" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestWithGZip_DecompressesRequestBody(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(`{"records":[]}`))
	gz.Close()

	var gotBody string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sync/upload", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	if gotBody != `{"records":[]}` {
		t.Fatalf("expected decompressed body, got %q", gotBody)
	}
}

func TestWithGZip_RejectsCorruptRequestBody(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run for corrupt gzip")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sync/upload", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
