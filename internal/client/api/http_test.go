package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkorotkov/privateme/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestPush_SendsUploadContract(t *testing.T) {
	var got UploadNoteRequest

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/notes/upload", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(UploadNoteResponse{
			Success: true,
			Message: "Note uploaded successfully",
			Key:     "users/u1/notes/n1.enc",
			ETag:    `"abc"`,
		})
	}))

	err := c.Push(context.Background(), "u1", "n1", "cGF5bG9hZA==")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "n1", got.NoteID)
	assert.Equal(t, "cGF5bG9hZA==", got.EncryptedData)
}

func TestPush_ExtractsErrorMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"bucket unavailable"}`))
	}))

	err := c.Push(context.Background(), "u1", "n1", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRemote))
	assert.Contains(t, err.Error(), "bucket unavailable")
}

func TestPush_NetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient(srv.URL, time.Second)
	srv.Close() // connection refused from here on

	err := c.Push(context.Background(), "u1", "n1", "x")
	assert.True(t, errors.Is(err, common.ErrRemote))
}

func TestPull_SendsFetchContract(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/notes/fetch", r.URL.Path)
		require.Equal(t, "u1", r.URL.Query().Get("userId"))
		require.Equal(t, "n1", r.URL.Query().Get("noteId"))
		_ = json.NewEncoder(w).Encode(FetchNoteResponse{
			Success:       true,
			EncryptedData: "ZGF0YQ==",
			NoteID:        "n1",
			UserID:        "u1",
		})
	}))

	payload, err := c.Pull(context.Background(), "u1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "ZGF0YQ==", payload)
}

func TestPull_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Note not found"}`))
	}))

	_, err := c.Pull(context.Background(), "u1", "missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.False(t, errors.Is(err, common.ErrRemote))
}

func TestHealthCheck(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Timestamp: time.Now().UTC().Format(time.RFC3339)})
	}))

	assert.NoError(t, c.HealthCheck(context.Background()))
}

func TestLogin_InstallsToken(t *testing.T) {
	var sawAuth string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_ = json.NewEncoder(w).Encode(AuthResponse{Success: true, Token: "tok123", UserID: "u1"})
		case "/health":
			sawAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
		}
	}))

	uid, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	require.NoError(t, c.HealthCheck(context.Background()))
	assert.Equal(t, "Bearer tok123", sawAuth)
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))

	_, err := c.Login(context.Background(), "a@b.c", "bad")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}
