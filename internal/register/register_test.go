package register

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBalancer(t *testing.T, status int, envelope string, got *Request) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/register" {
			http.NotFound(w, r)
			return
		}
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(got); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(envelope))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRegisterSuccess(t *testing.T) {
	var got Request
	lb := loadBalancer(t, http.StatusOK, `{"status":"success","data":{"server":"http://127.0.0.1:1080","weight":2}}`, &got)

	err := NewClient(lb.URL+"/").Register(context.Background(), "http://127.0.0.1:1080", 2)
	require.NoError(t, err)
	assert.Equal(t, Request{Address: "http://127.0.0.1:1080", Weight: 2}, got)
}

func TestRegisterFail(t *testing.T) {
	var got Request
	lb := loadBalancer(t, http.StatusNotFound, `{"status":"fail","data":{"title":"http://127.0.0.1:1080 not alive, registration failed."}}`, &got)

	err := NewClient(lb.URL).Register(context.Background(), "http://127.0.0.1:1080", 1)
	require.Error(t, err)

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusNotFound, rejected.StatusCode)
	assert.Equal(t, StatusFail, rejected.Status)
	assert.Contains(t, rejected.Data, "not alive")
}

func TestRegisterError(t *testing.T) {
	var got Request
	lb := loadBalancer(t, http.StatusInternalServerError, `{"status":"error","data":"unexpected EOF"}`, &got)

	err := NewClient(lb.URL).Register(context.Background(), "http://127.0.0.1:1080", 1)

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, StatusError, rejected.Status)
}

func TestRegisterGarbage(t *testing.T) {
	var got Request
	lb := loadBalancer(t, http.StatusOK, `not json`, &got)

	err := NewClient(lb.URL).Register(context.Background(), "http://127.0.0.1:1080", 1)
	require.Error(t, err)

	var rejected *RejectedError
	assert.False(t, errors.As(err, &rejected))
}

func TestRegisterUnreachable(t *testing.T) {
	lb := httptest.NewServer(http.NotFoundHandler())
	url := lb.URL
	lb.Close()

	err := NewClient(url).Register(context.Background(), "http://127.0.0.1:1080", 1)
	require.Error(t, err)
}
