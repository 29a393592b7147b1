package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	jwttoken "rubrica/internal/jwt_token"
	"rubrica/internal/platform/config"
	"rubrica/internal/platform/logger"
	"rubrica/internal/server"
	"rubrica/pkg/requestcontext"
)

// TestContext holds state between test steps. Without BASE_URL every
// scenario gets its own in-process server backed by the seeded memory store.
type TestContext struct {
	BaseURL          string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte
	AccessToken      string
	SavedIDs         map[string]int64

	server   *server.Server
	listener *httptest.Server
}

// NewTestContext creates a new test context
func NewTestContext() (*TestContext, error) {
	tc := &TestContext{
		BaseURL:    os.Getenv("BASE_URL"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		SavedIDs:   make(map[string]int64),
	}
	if tc.BaseURL != "" {
		return tc, nil
	}

	cfg := config.Default()
	cfg.Store = config.StoreMemory
	cfg.Auth.JWTSigningKey = config.DevSigningKey
	cfg.Auth.BcryptCost = bcrypt.MinCost

	srv, err := server.New(context.Background(), cfg, logger.NewWithWriter(io.Discard, "error"))
	if err != nil {
		return nil, fmt.Errorf("start in-process server: %w", err)
	}
	tc.server = srv
	tc.listener = httptest.NewServer(srv.Handler())
	tc.BaseURL = tc.listener.URL
	return tc, nil
}

// Close stops the in-process server, if any.
func (tc *TestContext) Close() {
	if tc.listener != nil {
		tc.listener.Close()
	}
	if tc.server != nil {
		tc.server.Close()
	}
}

// Do sends a request with the current bearer token (if any) and stores the response.
func (tc *TestContext) Do(method, path string, body any) error {
	headers := map[string]string{}
	if tc.AccessToken != "" {
		headers["Authorization"] = "Bearer " + tc.AccessToken
	}
	return tc.DoWithHeaders(method, path, body, headers)
}

// DoWithHeaders sends a request with exactly the given headers.
func (tc *TestContext) DoWithHeaders(method, path string, body any, headers map[string]string) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// IssueToken signs a token with the in-process server's key, pinned to issuedAt.
func (tc *TestContext) IssueToken(claims jwttoken.Claims, issuedAt time.Time, ttl time.Duration) (string, error) {
	if tc.server == nil {
		return "", fmt.Errorf("minting tokens requires the in-process server")
	}
	return tc.server.Tokens().Issue(requestcontext.WithTime(context.Background(), issuedAt), claims, ttl)
}

// GetResponseField extracts a top-level field from the JSON response
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}
	return value, nil
}

// ResponseContains checks if the response body contains a field or text
func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}

	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err == nil {
		if _, ok := data[text]; ok {
			return true
		}
	}
	return false
}

// Getter methods for step package interfaces

func (tc *TestContext) GetAccessToken() string {
	return tc.AccessToken
}

func (tc *TestContext) SetAccessToken(token string) {
	tc.AccessToken = token
}

func (tc *TestContext) SaveID(name string, id int64) {
	tc.SavedIDs[name] = id
}

func (tc *TestContext) SavedID(name string) (int64, bool) {
	id, ok := tc.SavedIDs[name]
	return id, ok
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.LastResponseBody
}
