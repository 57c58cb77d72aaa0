package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/medicore/ai-service/config"
	"github.com/medicore/ai-service/interfaces"
)

// MockHTTPHandler implements interfaces.HTTPHandler, answering with the handler name
type MockHTTPHandler struct {
	requestIDs []string
}

var _ interfaces.HTTPHandler = (*MockHTTPHandler)(nil)

func (m *MockHTTPHandler) reply(w http.ResponseWriter, r *http.Request, name string) {
	m.requestIDs = append(m.requestIDs, middleware.GetReqID(r.Context()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(name))
}

func (m *MockHTTPHandler) PredictDisease(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "predict")
}

func (m *MockHTTPHandler) RecommendMedicine(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "recommend")
}

func (m *MockHTTPHandler) ServeRestock(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "restock")
}

func (m *MockHTTPHandler) ServeRealStats(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "real-stats")
}

func (m *MockHTTPHandler) ScreenInteractions(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "screen")
}

func (m *MockHTTPHandler) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "check")
}

func (m *MockHTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "health")
}

func (m *MockHTTPHandler) ServePerformance(w http.ResponseWriter, r *http.Request) {
	m.reply(w, r, "performance")
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Address:        "localhost",
		Env:            config.EnvTest,
		MaxRequestBody: 1048576,
		MaxHeaderSize:  1048576,
	}
}

func TestSetupRoutes(t *testing.T) {
	mock := &MockHTTPHandler{}
	handler := NewServer(testConfig(), mock).Handler()

	tests := []struct {
		method   string
		path     string
		expected string
	}{
		{http.MethodPost, "/predict/disease", "predict"},
		{http.MethodPost, "/predict/recommend-medicine", "recommend"},
		{http.MethodGet, "/predict/restock", "restock"},
		{http.MethodGet, "/predict/real-stats?region=Overall&days=30", "real-stats"},
		{http.MethodPost, "/predict/interactions", "screen"},
		{http.MethodPost, "/interactions", "check"},
		{http.MethodGet, "/health", "health"},
		{http.MethodGet, "/health/performance", "performance"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rr.Code)
			}
			if rr.Body.String() != tt.expected {
				t.Errorf("Expected %s handler, got %s", tt.expected, rr.Body.String())
			}
		})
	}
}

func TestRoutingErrors(t *testing.T) {
	handler := NewServer(testConfig(), &MockHTTPHandler{}).Handler()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"wrong method", http.MethodGet, "/predict/disease", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/database", http.StatusNotFound},
		{"trailing slash redirect", http.MethodGet, "/health/", http.StatusMovedPermanently},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	mock := &MockHTTPHandler{}
	handler := NewServer(testConfig(), mock).Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if len(mock.requestIDs) != 1 || mock.requestIDs[0] == "" {
		t.Errorf("RequestID should be available in request context, got %v", mock.requestIDs)
	}
	if rr.Header().Get("X-RateLimit-Limit") != "1000" {
		t.Errorf("Expected rate limit headers, got %v", rr.Header())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := NewServer(testConfig(), &MockHTTPHandler{}).Handler()

	// one routed request so the HTTP collectors have a sample
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `medicore_ai_http_request_total{method="GET",path="/health",status="200"}`) {
		t.Errorf("Expected routed request in exposition, got:\n%s", rr.Body.String())
	}
}

func TestServerLifecycle(t *testing.T) {
	s := NewServer(testConfig(), &MockHTTPHandler{})

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start()
	}()

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Server shutdown should not error: %v", err)
	}

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Server should have shutdown within 1 second")
	}
}

func TestServerConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = "8000"
	s := NewServer(cfg, &MockHTTPHandler{})

	if s.server.Addr != "127.0.0.1:8000" {
		t.Errorf("Expected addr 127.0.0.1:8000, got %s", s.server.Addr)
	}
	if s.server.ReadTimeout != 15*time.Second || s.server.IdleTimeout != 60*time.Second {
		t.Errorf("Unexpected timeouts read=%s idle=%s", s.server.ReadTimeout, s.server.IdleTimeout)
	}
}
