package response

import (
	"bytes"
	"fmt"
	"hellotcp/internal/headers"
	"io"
	"net/http"
	"strconv"
)

// Body is the only payload the acceptor ever sends.
const Body = "Hello from Rust server!"

type StatusCode int

const (
	StatusOK StatusCode = 200
)

func WriteStatusLine(w io.Writer, statusCode StatusCode) error {
	_, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", statusCode, http.StatusText(int(statusCode)))
	return err
}

// GetDefaultHeaders returns the single header the acceptor emits.
func GetDefaultHeaders(contentLen int) headers.Headers {
	h := headers.NewHeaders()
	// a constant, valid field name cannot be rejected
	_ = h.Set("Content-Length", strconv.Itoa(contentLen))
	return h
}

func WriteHeaders(w io.Writer, h headers.Headers) error {
	for _, key := range h.Keys() {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", key, h[key]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\r\n")
	return err
}

func WriteBody(w io.Writer, body string) error {
	_, err := io.WriteString(w, body)
	return err
}

// Build renders the complete response for Body. Content-Length is derived
// from the body so the two can never disagree.
func Build() []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer cannot fail
	_ = WriteStatusLine(&buf, StatusOK)
	_ = WriteHeaders(&buf, GetDefaultHeaders(len(Body)))
	_ = WriteBody(&buf, Body)
	return buf.Bytes()
}
