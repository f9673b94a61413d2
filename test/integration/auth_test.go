//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/clutchplay/platform/test/integration/testutil"
)

func TestRegisterAndLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)

	username := testutil.UniqueName("player")

	resp := env.POST("/auth/register", map[string]any{
		"username": username,
		"password": "hunter2hunter2",
		"email":    "p@example.com",
	})
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var reg struct {
		Token    string `json:"token"`
		Username string `json:"username"`
		Role     string `json:"role"`
		Balance  int64  `json:"balance"`
	}
	testutil.DecodeJSON(t, resp, &reg)
	if reg.Token == "" {
		t.Fatal("expected a token on registration")
	}
	if reg.Username != username {
		t.Fatalf("expected username %s, got %s", username, reg.Username)
	}
	if reg.Role != "player" {
		t.Fatalf("expected role player, got %s", reg.Role)
	}
	if reg.Balance != 0 {
		t.Fatalf("expected zero starting balance, got %d", reg.Balance)
	}

	token := env.LoginPlayer(username, "hunter2hunter2")

	me := env.AuthGET(token, "/users/me")
	defer me.Body.Close()
	testutil.AssertStatus(t, me, http.StatusOK)

	var profile struct {
		Username string `json:"username"`
	}
	testutil.DecodeJSON(t, me, &profile)
	if profile.Username != username {
		t.Fatalf("expected profile username %s, got %s", username, profile.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := testutil.NewTestEnv(t)

	username := testutil.UniqueName("dup")
	env.RegisterPlayer(username, "hunter2hunter2")

	resp := env.POST("/auth/register", map[string]any{
		"username": username,
		"password": "anotherpassword",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusConflict, "CONFLICT")
}

func TestRegisterValidation(t *testing.T) {
	env := testutil.NewTestEnv(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing username", map[string]any{"password": "hunter2hunter2"}},
		{"missing password", map[string]any{"username": testutil.UniqueName("p")}},
		{"short password", map[string]any{"username": testutil.UniqueName("p"), "password": "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.POST("/auth/register", tc.body)
			defer resp.Body.Close()
			testutil.AssertErrorCode(t, resp, http.StatusBadRequest, "VALIDATION_ERROR")
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := testutil.NewTestEnv(t)

	username := testutil.UniqueName("player")
	env.RegisterPlayer(username, "hunter2hunter2")

	resp := env.POST("/auth/login", map[string]any{
		"username": username,
		"password": "wrongpassword",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestLoginUnknownUser(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/auth/login", map[string]any{
		"username": "ghost",
		"password": "whatever123",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestBannedAccountCannotLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)

	username := testutil.UniqueName("banned")
	_, userID := env.RegisterPlayer(username, "hunter2hunter2")

	adminToken, _ := env.CreateAdmin(testutil.UniqueName("admin"), "adminpass123")
	banResp := env.AuthPATCH(adminToken, "/admin/users/"+userID.String()+"/ban", map[string]any{"banned": true})
	defer banResp.Body.Close()
	testutil.AssertStatus(t, banResp, http.StatusOK)

	// Banned accounts are refused with the correct password
	resp := env.POST("/auth/login", map[string]any{
		"username": username,
		"password": "hunter2hunter2",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusForbidden, "ACCOUNT_BANNED")

	// and with the wrong one, without leaking which was wrong
	resp2 := env.POST("/auth/login", map[string]any{
		"username": username,
		"password": "wrongpassword",
	})
	defer resp2.Body.Close()
	testutil.AssertErrorCode(t, resp2, http.StatusForbidden, "ACCOUNT_BANNED")
}

func TestAdminLoginRealm(t *testing.T) {
	env := testutil.NewTestEnv(t)

	// Players cannot enter through the admin door
	username := testutil.UniqueName("player")
	env.RegisterPlayer(username, "hunter2hunter2")

	resp := env.POST("/auth/admin/login", map[string]any{
		"username": username,
		"password": "hunter2hunter2",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusForbidden, "FORBIDDEN")

	// A real admin can
	adminName := testutil.UniqueName("admin")
	env.CreateAdmin(adminName, "adminpass123")

	ok := env.POST("/auth/admin/login", map[string]any{
		"username": adminName,
		"password": "adminpass123",
	})
	defer ok.Body.Close()
	testutil.AssertStatus(t, ok, http.StatusOK)

	var body struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	testutil.DecodeJSON(t, ok, &body)
	if body.Role != "admin" {
		t.Fatalf("expected role admin, got %s", body.Role)
	}

	dash := env.AuthGET(body.Token, "/admin/reports/dashboard")
	defer dash.Body.Close()
	testutil.AssertStatus(t, dash, http.StatusOK)
}

func TestPlayerTokenRejectedOnAdminRoutes(t *testing.T) {
	env := testutil.NewTestEnv(t)

	token, _ := env.RegisterPlayer(testutil.UniqueName("player"), "hunter2hunter2")

	resp := env.AuthGET(token, "/admin/reports/dashboard")
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestLoginLockout(t *testing.T) {
	env := testutil.NewTestEnv(t)

	username := testutil.UniqueName("locked")
	env.RegisterPlayer(username, "hunter2hunter2")

	for i := 0; i < 5; i++ {
		resp := env.POST("/auth/login", map[string]any{
			"username": username,
			"password": "wrongpassword",
		})
		resp.Body.Close()
	}

	// Sixth attempt is locked out even with the correct password
	resp := env.POST("/auth/login", map[string]any{
		"username": username,
		"password": "hunter2hunter2",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusTooManyRequests, "ACCOUNT_LOCKED")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/users/me")
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)

	resp2 := env.GET("/wallet/balance")
	defer resp2.Body.Close()
	testutil.AssertStatus(t, resp2, http.StatusUnauthorized)
}

func TestHealth(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/health")
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusOK)
}
