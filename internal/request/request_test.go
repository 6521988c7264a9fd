package request

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	// Test: Short request fits the buffer
	buf := make([]byte, BufferSize)
	r, err := Read(strings.NewReader("GET / HTTP/1.1\r\n\r\n"), buf)
	require.NoError(t, err)
	assert.Equal(t, "GET / HTTP/1.1\r\n\r\n", r.Text)
	assert.Len(t, r.Raw, 18)

	// Test: Only one buffer's worth is consumed
	src := strings.NewReader(strings.Repeat("a", BufferSize+100))
	r, err = Read(src, buf)
	require.NoError(t, err)
	assert.Len(t, r.Raw, BufferSize)
	assert.Equal(t, 100, src.Len())

	// Test: Invalid UTF-8 is replaced
	r, err = Read(bytes.NewReader([]byte{'h', 0xff, 'i'}), buf)
	require.NoError(t, err)
	assert.Equal(t, "h�i", r.Text)

	// Test: Peer closed without sending
	r, err = Read(strings.NewReader(""), buf)
	require.NoError(t, err)
	assert.Empty(t, r.Raw)
	assert.Empty(t, r.Text)
}

func TestReadError(t *testing.T) {
	boom := errors.New("connection reset")
	r, err := Read(iotest.ErrReader(boom), make([]byte, BufferSize))
	require.ErrorIs(t, err, boom)
	require.NotNil(t, r)
	assert.Empty(t, r.Raw)

	_, err = Read(iotest.ErrReader(io.EOF), make([]byte, BufferSize))
	require.NoError(t, err)
}
