package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Codec instances are pooled: snapshot payloads are large enough that
// both directions see traffic on every sync, and allocating a fresh
// flate state per request shows up in profiles.
var (
	compressorPool = sync.Pool{
		New: func() any { return gzip.NewWriter(io.Discard) },
	}
	decompressorPool = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip handles gzip on both legs of a request: bodies uploaded with
// Content-Encoding: gzip are inflated before the handler sees them, and
// responses are deflated when the client accepts gzip. A body that
// claims gzip but fails the header check is rejected with 400 before
// the handler runs.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Content-Encoding"), "gzip") && req.Body != nil {
			inflated, err := inflateBody(req.Body)
			if err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
			req.Body = inflated
			req.Header.Del("Content-Encoding")
		}

		if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		zw := compressorPool.Get().(*gzip.Writer)
		zw.Reset(w)

		// The header must be stamped before the first flush commits the
		// status line; every byte goes through zw from here on.
		w.Header().Set("Content-Encoding", "gzip")

		next.ServeHTTP(&compressedResponse{ResponseWriter: w, zw: zw}, req)

		zw.Close()
		compressorPool.Put(zw)
	})
}

// inflateBody wraps a gzip request body in a ReadCloser that returns the
// pooled reader on Close. The gzip header is validated eagerly so a
// corrupt body fails here, not midway through JSON decoding.
func inflateBody(body io.ReadCloser) (io.ReadCloser, error) {
	zr := decompressorPool.Get().(*gzip.Reader)
	if err := zr.Reset(body); err != nil {
		decompressorPool.Put(zr)
		return nil, err
	}

	return &inflatedBody{zr: zr, raw: body}, nil
}

type inflatedBody struct {
	zr  *gzip.Reader
	raw io.ReadCloser
}

func (b *inflatedBody) Read(p []byte) (int, error) { return b.zr.Read(p) }

func (b *inflatedBody) Close() error {
	b.zr.Close()
	decompressorPool.Put(b.zr)
	return b.raw.Close()
}

// compressedResponse funnels handler writes through the pooled gzip
// writer.
type compressedResponse struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *compressedResponse) Write(data []byte) (int, error) {
	return w.zw.Write(data)
}
