package request

import (
	"errors"
	"io"
	"strings"
)

// BufferSize is the capacity of the per-connection request buffer.
const BufferSize = 1024

// Request is whatever a single read produced. It is never parsed.
type Request struct {
	Raw  []byte
	Text string
}

// Read performs exactly one read into buf. The bytes are decoded for
// logging only, with invalid UTF-8 replaced rather than rejected.
// A connection closed before sending anything yields an empty Request.
func Read(reader io.Reader, buf []byte) (*Request, error) {
	n, err := reader.Read(buf)
	r := &Request{
		Raw:  buf[:n],
		Text: strings.ToValidUTF8(string(buf[:n]), "�"),
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return r, err
	}
	return r, nil
}
