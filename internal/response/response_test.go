package response

import (
	"bufio"
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	raw := string(Build())

	assert.True(t, strings.HasPrefix(raw, "HTTP/1.1 200 OK\r\n"))
	assert.True(t, strings.HasSuffix(raw, Body))
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: "+strconv.Itoa(len(Body))+"\r\n\r\n"+Body, raw)
}

func TestBuildContentLengthMatchesBody(t *testing.T) {
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(Build())), nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(len(Body)), resp.ContentLength)

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, Body, body.String())
	assert.Len(t, resp.Header, 1)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteErrors(t *testing.T) {
	require.Error(t, WriteStatusLine(failingWriter{}, StatusOK))
	require.Error(t, WriteHeaders(failingWriter{}, GetDefaultHeaders(1)))
	require.Error(t, WriteBody(failingWriter{}, Body))
}
