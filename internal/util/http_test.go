package util

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"name":"Sol Ring","cmc":1}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
		CMC  int    `json:"cmc"`
	}
	require.NoError(t, GetJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, &out))
	assert.Equal(t, "Sol Ring", out.Name)
	assert.Equal(t, 1, out.CMC)
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"object":"error"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	var out map[string]any
	err := GetJSON(context.Background(), NewHTTPClient(time.Second), srv.URL+"/cards/named", &out)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestGetJSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := GetJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestNewHTTPClientDefaultTimeout(t *testing.T) {
	assert.Equal(t, 12*time.Second, NewHTTPClient(0).Timeout)
	assert.Equal(t, 3*time.Second, NewHTTPClient(3*time.Second).Timeout)
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EnsureParentDir(filepath.Join(dir, "nested", "logs", "app.log")))
	assert.DirExists(t, filepath.Join(dir, "nested", "logs"))
	require.NoError(t, EnsureParentDir("app.log"))
}
