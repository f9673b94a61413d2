//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// DecodeJSON decodes a response body into out, failing the test on error.
func DecodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode response body %q: %v", string(data), err)
	}
}

// AssertStatus fails the test if the response status does not match.
func AssertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

// AssertErrorCode fails the test unless the response status and error code both match.
func AssertErrorCode(t *testing.T, resp *http.Response, wantStatus int, wantCode string) {
	t.Helper()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", wantStatus, resp.StatusCode, string(body))
	}
	var body struct {
		Code string `json:"code"`
	}
	DecodeJSON(t, resp, &body)
	if body.Code != wantCode {
		t.Fatalf("expected error code %s, got %s", wantCode, body.Code)
	}
}

// AssertBalance fails the test unless the user's stored balance matches.
func (env *TestEnv) AssertBalance(userID uuid.UUID, want int64) {
	env.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var balance int64
	err := env.Pool.QueryRow(ctx,
		`SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		env.t.Fatalf("query balance: %v", err)
	}
	if balance != want {
		env.t.Fatalf("expected balance %d, got %d", want, balance)
	}
}
