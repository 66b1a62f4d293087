package integration_tests

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/app"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/config"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/export"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/stubapi"
	"go.uber.org/zap"
)

const deviceSecret = "integration-device-secret"

// testBackend is a running stub backend
type testBackend struct {
	server *stubapi.Server
	url    string
}

func startBackend(t *testing.T) *testBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := stubapi.NewServer(stubapi.Config{Secret: "integration-jwt-secret"}, zap.NewNop())
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	return &testBackend{server: server, url: srv.URL}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Environment: "test",
		API:         config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		Storage:     config.StorageConfig{Driver: config.DriverMemory},
		Security:    config.SecurityConfig{DeviceSecret: deviceSecret},
		AI:          config.AIConfig{Provider: config.ProviderBackend},
	}
}

// device is one installed client with its own on-device store
type device struct {
	app   *app.App
	store storage.KeyValueStore
	sink  *export.MemorySink
}

// newDevice assembles a client on top of store
func newDevice(t *testing.T, backend *testBackend, store storage.KeyValueStore) *device {
	t.Helper()

	sink := export.NewMemorySink(zap.NewNop())
	a, err := app.New(context.Background(), testConfig(backend.url), zap.NewNop(),
		app.WithStore(store),
		app.WithSink(sink),
	)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	return &device{app: a, store: store, sink: sink}
}

// sqliteStore opens an on-disk store that outlives a single client instance
func sqliteStore(t *testing.T) storage.KeyValueStore {
	t.Helper()

	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "eva.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
