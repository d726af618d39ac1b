package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/finfeed/pkg/auth"
	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/server/mocks"
)

const testToken = "TESTTOKEN"

var testUser = &domain.User{ID: 42, Email: "user@example.com"}

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return ":8080", 30 * time.Second
		},
	}
}

// testAuth accepts testToken only
func testAuth() *mocks.AuthenticatorMock {
	return &mocks.AuthenticatorMock{
		AuthenticateFunc: func(_ context.Context, plaintext string) (*domain.User, error) {
			if plaintext == testToken {
				return testUser, nil
			}
			return nil, auth.ErrInvalidToken
		},
	}
}

// testServer makes a server with given collaborators, nil ones are replaced with empty mocks
func testServer(t *testing.T, p Params) *Server {
	t.Helper()
	if p.Config == nil {
		p.Config = testConfig()
	}
	if p.Auth == nil {
		p.Auth = testAuth()
	}
	if p.News == nil {
		p.News = &mocks.NewsServiceMock{}
	}
	if p.Saved == nil {
		p.Saved = &mocks.SavedStoreMock{}
	}
	if p.Health == nil {
		p.Health = &mocks.HealthCheckerMock{PingFunc: func(context.Context) error { return nil }}
	}
	if p.Version == "" {
		p.Version = "test"
	}
	return New(p)
}

// doRequest runs request through the full router, token is sent as bearer if not empty
func doRequest(t *testing.T, srv *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func TestServer_New(t *testing.T) {
	srv := New(Params{Config: testConfig(), Version: "1.0.0"})
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.NotNil(t, srv.validate)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
	}
	srv := testServer(t, Params{Config: cfg, Version: "1.0.0", Debug: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "finfeed", resp.Header.Get("App-Name"))
	assert.Equal(t, "1.0.0", resp.Header.Get("App-Version"))

	// shutdown server
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_RunListenError(t *testing.T) {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return "bad-address", time.Second
		},
	}
	srv := testServer(t, Params{Config: cfg})
	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")
}

func TestServer_healthHandler(t *testing.T) {
	t.Run("database connected", func(t *testing.T) {
		srv := testServer(t, Params{Version: "1.2.3"})
		w := doRequest(t, srv, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		res := decodeBody(t, w)
		assert.Equal(t, "healthy", res["status"])
		assert.Equal(t, "connected", res["database"])
		assert.Equal(t, "1.2.3", res["version"])
		assert.NotEmpty(t, res["timestamp"])
	})

	t.Run("database down", func(t *testing.T) {
		health := &mocks.HealthCheckerMock{PingFunc: func(context.Context) error { return errors.New("db is gone") }}
		srv := testServer(t, Params{Health: health})
		w := doRequest(t, srv, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)

		res := decodeBody(t, w)
		assert.Equal(t, "unhealthy", res["status"])
		assert.Equal(t, "disconnected", res["database"])
		assert.Len(t, health.PingCalls(), 1)
	})
}

func TestServer_authMiddleware(t *testing.T) {
	authMock := &mocks.AuthenticatorMock{
		AuthenticateFunc: func(_ context.Context, plaintext string) (*domain.User, error) {
			switch plaintext {
			case testToken:
				return testUser, nil
			case "expired":
				return nil, auth.ErrTokenExpired
			case "broken":
				return nil, errors.New("db error")
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}
	srv := testServer(t, Params{Auth: authMock})

	tbl := []struct {
		name    string
		header  string
		code    int
		errText string
	}{
		{name: "no header", header: "", code: http.StatusUnauthorized, errText: "authentication required"},
		{name: "not bearer", header: "Basic abc", code: http.StatusUnauthorized, errText: "invalid token"},
		{name: "empty bearer", header: "Bearer ", code: http.StatusUnauthorized, errText: "invalid token"},
		{name: "unknown token", header: "Bearer nope", code: http.StatusUnauthorized, errText: "invalid token"},
		{name: "expired token", header: "Bearer expired", code: http.StatusUnauthorized, errText: "token expired"},
		{name: "store failure", header: "Bearer broken", code: http.StatusInternalServerError, errText: "authentication failed"},
		{name: "valid token", header: "Bearer " + testToken, code: http.StatusOK},
		{name: "lower case scheme", header: "bearer " + testToken, code: http.StatusOK},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code, w.Body.String())
			res := decodeBody(t, w)
			if tt.errText != "" {
				assert.Equal(t, tt.errText, res["error"])
				return
			}
			user := res["user"].(map[string]any)
			assert.Equal(t, "user@example.com", user["email"])
			assert.InDelta(t, 42, user["id"], 0)
		})
	}
}

func TestServer_securityHeaders(t *testing.T) {
	srv := testServer(t, Params{})
	for _, path := range []string{"/health", "/api/auth/me"} {
		w := doRequest(t, srv, http.MethodGet, path, "", "")
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"), path)
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"), path)
		assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"), path)
		assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"), path)
	}
}

func TestServer_rateLimit(t *testing.T) {
	srv := testServer(t, Params{RateLimit: 2, RateWindow: time.Hour})
	send := func(path, ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		req.RemoteAddr = ip + ":12345"
		req.Header.Set("Authorization", "Bearer "+testToken)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("/api/auth/me", "203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, send("/api/auth/me", "203.0.113.1").Code)
	w := send("/api/auth/me", "203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, decodeBody(t, w)["error"], "too many requests")

	assert.Equal(t, http.StatusOK, send("/api/auth/me", "203.0.113.2").Code, "other client has its own budget")
	for range 5 {
		assert.Equal(t, http.StatusOK, send("/health", "203.0.113.1").Code, "health is not limited")
	}

	unlimited := testServer(t, Params{})
	for range 5 {
		assert.Equal(t, http.StatusOK, doRequest(t, unlimited, http.MethodGet, "/api/auth/me", "", testToken).Code)
	}
}

func TestFeedDeadline(t *testing.T) {
	assert.Equal(t, 48*time.Second, feedDeadline(time.Minute))
	assert.Equal(t, 800*time.Millisecond, feedDeadline(time.Second))
	assert.Equal(t, 30*time.Second, feedDeadline(0))
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	renderError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), nil, http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"unknown error"}`, w.Body.String())

	w = httptest.NewRecorder()
	renderError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), errors.New("boom"), http.StatusBadRequest)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
}
