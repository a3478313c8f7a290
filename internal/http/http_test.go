package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratt/validator/internal/metrics"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakePinger implements StoragePinger for readiness tests.
type fakePinger struct {
	err error
}

func (f *fakePinger) PingContext(ctx context.Context) error {
	return f.err
}

func createTestServer(db StoragePinger) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(db, "localhost", 0, logger)
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name           string
		db             StoragePinger
		expectedStatus int
		expectedState  string
		expectedDB     string
	}{
		{"database reachable", &fakePinger{}, http.StatusOK, "ready", "ok"},
		{"database down", &fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "not_ready", "error"},
		{"nil database", nil, http.StatusServiceUnavailable, "not_ready", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createTestServer(tt.db)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			server.readinessHandler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedState, response["status"])

			components, ok := response["components"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedDB, components["database"])
		})
	}
}

// stubValidatorHandlers implements ValidatorHandlers for routing tests.
type stubValidatorHandlers struct{}

func (stubValidatorHandlers) ScanHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"handler": "scan"})
}

func (stubValidatorHandlers) PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"handler": "ping"})
}

// stubCardHandlers implements CardHandlers for routing tests.
type stubCardHandlers struct{}

func (stubCardHandlers) ListHandler(c *gin.Context)       { c.JSON(http.StatusOK, gin.H{"handler": "list"}) }
func (stubCardHandlers) CreateHandler(c *gin.Context)     { c.JSON(http.StatusCreated, gin.H{"handler": "create"}) }
func (stubCardHandlers) GetHandler(c *gin.Context)        { c.JSON(http.StatusOK, gin.H{"handler": "get"}) }
func (stubCardHandlers) DeleteHandler(c *gin.Context)     { c.Status(http.StatusNoContent) }
func (stubCardHandlers) TopUpHandler(c *gin.Context)      { c.JSON(http.StatusOK, gin.H{"handler": "topup"}) }
func (stubCardHandlers) StatusHandler(c *gin.Context)     { c.JSON(http.StatusOK, gin.H{"handler": "status"}) }
func (stubCardHandlers) ExpirationHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"handler": "expiration"}) }
func (stubCardHandlers) NameHandler(c *gin.Context)       { c.JSON(http.StatusOK, gin.H{"handler": "name"}) }

func TestSetupRouterRoutes(t *testing.T) {
	server := createTestServer(&fakePinger{})
	server.SetupRouter(RouterConfig{
		ValidatorHandlers: stubValidatorHandlers{},
		CardHandlers:      stubCardHandlers{},
	})

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodPost, "/validator/scanCardInfo", http.StatusOK},
		{http.MethodPost, "/validator/pingStatus", http.StatusOK},
		{http.MethodGet, "/validator/cards", http.StatusOK},
		{http.MethodPost, "/validator/cards", http.StatusCreated},
		{http.MethodGet, "/validator/cards/04A1B2C3", http.StatusOK},
		{http.MethodDelete, "/validator/cards/04A1B2C3", http.StatusNoContent},
		{http.MethodPost, "/validator/cards/04A1B2C3/topup", http.StatusOK},
		{http.MethodPost, "/validator/cards/04A1B2C3/status", http.StatusOK},
		{http.MethodPost, "/validator/cards/04A1B2C3/expiration", http.StatusOK},
		{http.MethodPost, "/validator/cards/04A1B2C3/name", http.StatusOK},
		{http.MethodGet, "/nonexistent", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			server.GetHandler().ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSetupRouterAppliesAuthMiddleware(t *testing.T) {
	server := createTestServer(&fakePinger{})
	server.SetupRouter(RouterConfig{
		ValidatorHandlers: stubValidatorHandlers{},
		CardHandlers:      stubCardHandlers{},
		AuthMiddleware: func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		},
	})

	// The authenticated surface rejects, health does not.
	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/validator/scanCardInfo", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/validator/cards", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := createTestServer(&fakePinger{})
	server.SetupRouter(RouterConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID, "X-Request-Id header should be present")

	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.NotEqual(t, uuid.Nil, parsedUUID)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer(&fakePinger{})
	server.SetupRouter(RouterConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 0, logger, provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}
