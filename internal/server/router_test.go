package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/testutil"

	"github.com/google/uuid"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		MaxBodyBytes:   1 << 10,
		WelcomeMessage: "Welcome to Calculator by HoneyBadger.",
	}
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := NewRouter(testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterMetadataEndpoint(t *testing.T) {
	router := NewRouter(testConfig(t))

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Body, &payload)

	if payload["type"] != "METADATA" || payload["output"] != "Welcome to Calculator by HoneyBadger." {
		t.Fatalf("unexpected metadata payload: %#v", payload)
	}
}

func TestNewRouterCalculateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := NewRouter(testConfig(t))

	body := []byte(`{"num1":2,"num2":3,"operation":"add"}`)
	req := httptest.NewRequest(http.MethodPost, "/calculate/", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&payload); err != nil {
		t.Fatalf("decoding JSON response: %v", err)
	}

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["output"].(float64); !ok || got != 5 {
		t.Fatalf("expected output 5, got %#v", payload["output"])
	}
}

func TestNewRouterCalculateWithoutTrailingSlash(t *testing.T) {
	router := NewRouter(testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(`{"num1":6,"num2":3,"operation":"divide"}`))
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
}

func TestNewRouterFallbacksUseFailureEnvelope(t *testing.T) {
	router := NewRouter(testConfig(t))

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "unknown route", method: http.MethodGet, path: "/nope", status: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/calculate/", status: http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(httptest.NewRequest(tc.method, tc.path, nil), router)
			testutil.CheckResponseCode(t, tc.status, w.Code)

			var payload map[string]any
			testutil.DecodeJSONBody(t, w.Body, &payload)
			if payload["type"] != "FAILURE" {
				t.Fatalf("expected FAILURE envelope, got %#v", payload)
			}
		})
	}
}

func TestNewRouterRejectsOversizedBody(t *testing.T) {
	router := NewRouter(testConfig(t))

	big := `{"num1":1,"num2":2,"operation":"` + strings.Repeat("a", 2<<10) + `"}`
	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculate/", strings.NewReader(big)), router)

	testutil.CheckResponseCode(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestNewRouterExposesFailureMetrics(t *testing.T) {
	router := NewRouter(testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/calculate/", strings.NewReader(`{"num1":5,"num2":0,"operation":"divide"}`))
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	want := `calculator_failures_total{kind="invalid_value",operation="divide"}`
	if !strings.Contains(w.Body.String(), want) {
		t.Fatalf("expected metrics output to contain %s", want)
	}
}
