package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/finfeed/pkg/config"
	"github.com/umputun/finfeed/pkg/repository"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	tmpDir := t.TempDir()

	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	t.Setenv("FINFEED_TEST_DB", filepath.Join(tmpDir, "test.db"))
	path := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  dsn: "file:${FINFEED_TEST_DB}?mode=rwc"
auth:
  bcrypt_cost: 4
`), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, Opts{Config: path, Listen: fmt.Sprintf("127.0.0.1:%d", port)})
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK && string(body) != ""
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run didn't return after cancel")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Listen = ":8080"
	cfg.Provider.APIKey = "from-config"
	cfg.Database.DSN = "file:a.db"

	applyOverrides(cfg, Opts{})
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "from-config", cfg.Provider.APIKey)
	assert.Equal(t, "file:a.db", cfg.Database.DSN)

	applyOverrides(cfg, Opts{Listen: ":9090", APIKey: "from-env", DSN: "postgres://localhost/finfeed"})
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "from-env", cfg.Provider.APIKey)
	assert.Equal(t, "postgres://localhost/finfeed", cfg.Database.DSN)
}

func TestCleanupTokens(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cleanupTokens(ctx, repos.Token, 10*time.Millisecond)
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup didn't stop")
	}
}

func TestSetupLog(t *testing.T) {
	setupLog(true, "secret", "")
	setupLog(false)
}
