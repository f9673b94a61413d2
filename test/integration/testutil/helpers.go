//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterPlayer registers a new player account and returns its token and user ID.
func (env *TestEnv) RegisterPlayer(username, password string) (token string, userID uuid.UUID) {
	env.t.Helper()

	resp := env.POST("/auth/register", map[string]any{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()
	AssertStatus(env.t, resp, http.StatusCreated)

	var body struct {
		Token  string    `json:"token"`
		UserID uuid.UUID `json:"user_id"`
	}
	DecodeJSON(env.t, resp, &body)
	if body.Token == "" {
		env.t.Fatalf("register returned empty token")
	}
	return body.Token, body.UserID
}

// LoginPlayer logs in an existing player and returns the token.
func (env *TestEnv) LoginPlayer(username, password string) string {
	env.t.Helper()

	resp := env.POST("/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()
	AssertStatus(env.t, resp, http.StatusOK)

	var body struct {
		Token string `json:"token"`
	}
	DecodeJSON(env.t, resp, &body)
	return body.Token
}

// CreateAdmin inserts an admin user directly and returns an admin-realm token.
func (env *TestEnv) CreateAdmin(username, password string) (token string, adminID uuid.UUID) {
	env.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		env.t.Fatalf("hash admin password: %v", err)
	}

	adminID = uuid.New()
	_, err = env.Pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)`,
		adminID, username, string(hash), domain.RoleAdmin)
	if err != nil {
		env.t.Fatalf("insert admin: %v", err)
	}

	token, err = env.JWTMgr.GenerateToken(auth.RealmAdmin, adminID, username)
	if err != nil {
		env.t.Fatalf("generate admin token: %v", err)
	}
	return token, adminID
}

// SetBalance sets a user's balance directly, bypassing the ledger.
func (env *TestEnv) SetBalance(userID uuid.UUID, balance int64) {
	env.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := env.Pool.Exec(ctx,
		`UPDATE users SET balance = $2 WHERE id = $1`, userID, balance)
	if err != nil {
		env.t.Fatalf("set balance: %v", err)
	}
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	return env.do(http.MethodGet, path, "", nil, nil)
}

// POST performs an unauthenticated POST request with a JSON body.
func (env *TestEnv) POST(path string, body any) *http.Response {
	env.t.Helper()
	return env.do(http.MethodPost, path, "", body, nil)
}

// AuthGET performs a GET request with a bearer token.
func (env *TestEnv) AuthGET(token, path string) *http.Response {
	env.t.Helper()
	return env.do(http.MethodGet, path, token, nil, nil)
}

// AuthPOST performs a POST request with a bearer token and JSON body.
func (env *TestEnv) AuthPOST(token, path string, body any) *http.Response {
	env.t.Helper()
	return env.do(http.MethodPost, path, token, body, nil)
}

// AuthPOSTWithHeaders performs a POST with a bearer token, JSON body, and extra headers.
func (env *TestEnv) AuthPOSTWithHeaders(token, path string, body any, headers map[string]string) *http.Response {
	env.t.Helper()
	return env.do(http.MethodPost, path, token, body, headers)
}

// AuthPATCH performs a PATCH request with a bearer token and JSON body.
func (env *TestEnv) AuthPATCH(token, path string, body any) *http.Response {
	env.t.Helper()
	return env.do(http.MethodPatch, path, token, body, nil)
}

// AuthDELETE performs a DELETE request with a bearer token.
func (env *TestEnv) AuthDELETE(token, path string) *http.Response {
	env.t.Helper()
	return env.do(http.MethodDelete, path, token, nil, nil)
}

func (env *TestEnv) do(method, path, token string, body any, headers map[string]string) *http.Response {
	env.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			env.t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, env.Server.URL+path, reader)
	if err != nil {
		env.t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := env.Server.Client().Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// UniqueName returns a name unlikely to collide across tests.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.New().String()[:8])
}

