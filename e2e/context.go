// Package e2e drives a running server through Gherkin scenarios.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

type account struct {
	id    int64
	phone string
	token string
}

// TestContext carries HTTP state between the steps of one scenario.
type TestContext struct {
	baseURL string
	client  *http.Client

	accounts map[string]*account
	status   int
	body     []byte
	headers  http.Header
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		accounts: map[string]*account{},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.accounts = map[string]*account{}
	tc.status = 0
	tc.body = nil
	tc.headers = nil
}

// PhoneFor returns a stable phone number for alias within the scenario. The
// random part keeps scenarios independent against a shared server.
func (tc *TestContext) PhoneFor(alias string) string {
	if a, ok := tc.accounts[alias]; ok {
		return a.phone
	}
	a := &account{phone: fmt.Sprintf("+1555%07d", rand.IntN(10_000_000))}
	tc.accounts[alias] = a
	return a.phone
}

func (tc *TestContext) SetAccountID(alias string, id int64) {
	tc.PhoneFor(alias)
	tc.accounts[alias].id = id
}

func (tc *TestContext) AccountID(alias string) (int64, error) {
	a, ok := tc.accounts[alias]
	if !ok || a.id == 0 {
		return 0, fmt.Errorf("no registered account %q", alias)
	}
	return a.id, nil
}

func (tc *TestContext) SetToken(alias, token string) {
	tc.PhoneFor(alias)
	tc.accounts[alias].token = token
}

func (tc *TestContext) Token(alias string) string {
	if a, ok := tc.accounts[alias]; ok {
		return a.token
	}
	return ""
}

func (tc *TestContext) POST(path string, body any, token string) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(raw), token)
}

func (tc *TestContext) GET(path, token string) error {
	return tc.do(http.MethodGet, path, nil, token)
}

func (tc *TestContext) do(method, path string, body io.Reader, token string) error {
	req, err := http.NewRequest(method, tc.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	tc.body, err = io.ReadAll(resp.Body)
	tc.status = resp.StatusCode
	tc.headers = resp.Header
	return err
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.status
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.body
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	return tc.headers.Get(name)
}

// GetResponseField walks a dotted path (e.g. "user.email") into the last JSON
// body. Array elements are addressed by index.
func (tc *TestContext) GetResponseField(field string) (any, bool, error) {
	var decoded any
	if err := json.Unmarshal(tc.body, &decoded); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	current := decoded
	for part := range strings.SplitSeq(field, ".") {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, false, nil
			}
			current = v
		case []any:
			var idx int
			if _, err := fmt.Sscanf(part, "%d", &idx); err != nil || idx < 0 || idx >= len(node) {
				return nil, false, nil
			}
			current = node[idx]
		default:
			return nil, false, nil
		}
	}
	return current, true, nil
}
