package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"contentfactory/internal/http/handlers"
	httpapi "contentfactory/internal/http/httpapi"
	"contentfactory/internal/infra"
	"contentfactory/internal/providers/replicate"
)

// stubTransport plays the provider. Creations are acknowledged with
// sequential prediction ids; fetches answer from a canned table.
type stubTransport struct {
	calls       int
	createBodies [][]byte
	createCode  int
	createBody  string
	predictions map[string]string
}

func newStubTransport() *stubTransport {
	return &stubTransport{createCode: http.StatusCreated, predictions: map[string]string{}}
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.calls++
	if req.Method == http.MethodPost && req.URL.Path == "/v1/predictions" {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		s.createBodies = append(s.createBodies, body)
		if s.createCode != http.StatusCreated {
			return jsonResponse(s.createCode, s.createBody), nil
		}
		ack := fmt.Sprintf(`{"id":"pred-%d","status":"starting"}`, len(s.createBodies))
		return jsonResponse(http.StatusCreated, ack), nil
	}
	if req.Method == http.MethodGet {
		id := strings.TrimPrefix(req.URL.Path, "/v1/predictions/")
		if body, ok := s.predictions[id]; ok {
			return jsonResponse(http.StatusOK, body), nil
		}
	}
	return jsonResponse(http.StatusNotFound, `{"detail":"not found"}`), nil
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func (s *stubTransport) lastCreateSpec(t *testing.T) map[string]any {
	t.Helper()
	if len(s.createBodies) == 0 {
		t.Fatalf("no create call captured")
	}
	var spec map[string]any
	if err := json.Unmarshal(s.createBodies[len(s.createBodies)-1], &spec); err != nil {
		t.Fatalf("decode create spec: %v", err)
	}
	return spec
}

func newTestRouter(t *testing.T, token string, transport http.RoundTripper) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	provider := replicate.NewClient(replicate.Options{
		APIToken:   token,
		HTTPClient: &http.Client{Transport: transport},
	})
	app := handlers.NewApp(provider, logger)
	cfg := &infra.Config{
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitPerMin: 1000,
	}
	return httpapi.NewRouter(app, cfg, logger)
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, decoded
}
