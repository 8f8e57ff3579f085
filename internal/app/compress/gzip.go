package compress

import (
	"io"
	"net/http"

	"github.com/klauspost/compress/gzip"
)

// Response writer with gzip compression. Error responses, bodiless
// statuses and already compressed images are written as is
type Writer struct {
	w           http.ResponseWriter
	zw          *gzip.Writer
	passthrough bool
	decided     bool
}

var skipContentTypes = map[string]struct{}{
	"image/png": {},
	"image/gif": {},
}

// Creates response writer with gzip compression
func NewWriter(w http.ResponseWriter) *Writer {
	return &Writer{w: w}
}

// Header
func (cw *Writer) Header() http.Header {
	return cw.w.Header()
}

// Writes compressed data
func (cw *Writer) Write(p []byte) (int, error) {
	if !cw.decided {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.passthrough {
		return cw.w.Write(p)
	}

	return cw.zw.Write(p)
}

// WriteHeader
func (cw *Writer) WriteHeader(statusCode int) {
	if cw.decided {
		return
	}
	cw.decided = true

	_, skip := skipContentTypes[cw.w.Header().Get("Content-Type")]
	if statusCode >= 300 || statusCode == http.StatusNoContent || skip {
		cw.passthrough = true
	} else {
		cw.w.Header().Add("Vary", "Accept-Encoding")
		cw.w.Header().Set("Content-Encoding", "gzip")
		cw.w.Header().Del("Content-Length")
		cw.zw = gzip.NewWriter(cw.w)
	}
	cw.w.WriteHeader(statusCode)
}

// Close flushes compressed data if any was written
func (cw *Writer) Close() error {
	if cw.zw == nil {
		return nil
	}
	return cw.zw.Close()
}

// Reader for compressed data
type Reader struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

// Creates reader for compressed data
func NewReader(r io.ReadCloser) (*Reader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &Reader{
		r:  r,
		zr: zr,
	}, nil
}

// Read uncompressed data
func (cr Reader) Read(p []byte) (int, error) {
	return cr.zr.Read(p)
}

// Close
func (cr *Reader) Close() error {
	if err := cr.r.Close(); err != nil {
		return err
	}
	return cr.zr.Close()
}
