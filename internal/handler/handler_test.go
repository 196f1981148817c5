package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"trolli/internal/config"
	"trolli/internal/server"
)

// testServer wires the full router against a throwaway data file so the
// handlers, middleware and store run together exactly as in production.
type testServer struct {
	srv   *server.Server
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		DataFile:       filepath.Join(dir, "data.json"),
		SessionFile:    filepath.Join(dir, "session.json"),
		ServerPort:     "0",
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		AllowedOrigins: []string{"*"},
	}

	srv, err := server.Init(cfg)
	require.NoError(t, err)
	return &testServer{srv: srv}
}

// request performs one call against the router, marshalling body when given.
func (ts *testServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}

	w := httptest.NewRecorder()
	ts.srv.Engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), into))
}

// login registers the user when needed and authenticates follow-up requests.
func (ts *testServer) login(t *testing.T, username, password string) {
	t.Helper()
	ctx := context.Background()

	if _, err := ts.srv.Store.GetUser(ctx, username); err != nil {
		require.NoError(t, ts.srv.Store.AddUser(ctx, username, password))
	}

	w := ts.request(t, http.MethodPost, "/api/login", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	ts.token = resp.Token
}
