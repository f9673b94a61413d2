//go:build integration

package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/clutchplay/platform/test/integration/testutil"
	"github.com/google/uuid"
)

func TestJoinTournament(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminToken, _ := env.CreateAdmin(testutil.UniqueName("admin"), "adminpass123")
	token, userID := env.RegisterPlayer(testutil.UniqueName("player"), "hunter2hunter2")

	tournamentID := createTournament(t, env, adminToken, "Join Cup")

	resp := env.AuthPOST(token, "/tournaments/"+tournamentID.String()+"/join", map[string]any{
		"team_name": "The Regulars",
		"game_uid":  "GU-1234",
	})
	defer resp.Body.Close()
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var joined struct {
		ID       uuid.UUID `json:"id"`
		UserID   uuid.UUID `json:"user_id"`
		Approved bool      `json:"approved"`
	}
	testutil.DecodeJSON(t, resp, &joined)
	if joined.UserID != userID {
		t.Fatalf("expected participant for %s, got %s", userID, joined.UserID)
	}
	if joined.Approved {
		t.Fatal("expected entry to start unapproved")
	}

	// Duplicate join is rejected
	dup := env.AuthPOST(token, "/tournaments/"+tournamentID.String()+"/join", map[string]any{
		"game_uid": "GU-1234",
	})
	defer dup.Body.Close()
	testutil.AssertErrorCode(t, dup, http.StatusConflict, "CONFLICT")

	// Own entries are visible
	mine := env.AuthGET(token, "/users/me/participations")
	defer mine.Body.Close()
	testutil.AssertStatus(t, mine, http.StatusOK)

	var list []struct {
		TournamentID uuid.UUID `json:"tournament_id"`
	}
	testutil.DecodeJSON(t, mine, &list)
	if len(list) != 1 || list[0].TournamentID != tournamentID {
		t.Fatalf("expected one participation, got %+v", list)
	}
}

func TestJoinValidation(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminToken, _ := env.CreateAdmin(testutil.UniqueName("admin"), "adminpass123")
	token, _ := env.RegisterPlayer(testutil.UniqueName("player"), "hunter2hunter2")

	tournamentID := createTournament(t, env, adminToken, "Strict Cup")

	// game_uid is required
	resp := env.AuthPOST(token, "/tournaments/"+tournamentID.String()+"/join", map[string]any{
		"team_name": "No UID",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusBadRequest, "VALIDATION_ERROR")

	// Unknown tournament
	missing := env.AuthPOST(token, "/tournaments/"+uuid.New().String()+"/join", map[string]any{
		"game_uid": "GU-1",
	})
	defer missing.Body.Close()
	testutil.AssertErrorCode(t, missing, http.StatusNotFound, "NOT_FOUND")
}

func TestJoinClosedTournament(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminToken, _ := env.CreateAdmin(testutil.UniqueName("admin"), "adminpass123")
	token, _ := env.RegisterPlayer(testutil.UniqueName("player"), "hunter2hunter2")

	tournamentID := createTournament(t, env, adminToken, "Closed Cup")

	cancel := env.AuthPATCH(adminToken, "/admin/tournaments/"+tournamentID.String()+"/status", map[string]any{"status": "cancelled"})
	cancel.Body.Close()

	resp := env.AuthPOST(token, "/tournaments/"+tournamentID.String()+"/join", map[string]any{
		"game_uid": "GU-1",
	})
	defer resp.Body.Close()
	testutil.AssertErrorCode(t, resp, http.StatusConflict, "CONFLICT")
}

func TestParticipantReview(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminToken, _ := env.CreateAdmin(testutil.UniqueName("admin"), "adminpass123")

	tournamentID := createTournament(t, env, adminToken, "Review Cup")

	tokenA, _ := env.RegisterPlayer(testutil.UniqueName("alice"), "hunter2hunter2")
	tokenB, _ := env.RegisterPlayer(testutil.UniqueName("bob"), "hunter2hunter2")

	for _, tok := range []string{tokenA, tokenB} {
		resp := env.AuthPOST(tok, "/tournaments/"+tournamentID.String()+"/join", map[string]any{
			"game_uid": testutil.UniqueName("GU"),
		})
		resp.Body.Close()
	}

	// Both entries are in the pending queue
	pending := env.AuthGET(adminToken, "/admin/participants/pending")
	defer pending.Body.Close()
	testutil.AssertStatus(t, pending, http.StatusOK)

	var queue []struct {
		ID uuid.UUID `json:"id"`
	}
	testutil.DecodeJSON(t, pending, &queue)
	if len(queue) != 2 {
		t.Fatalf("expected 2 pending entries, got %d", len(queue))
	}

	// Approve one, reject the other
	appr := env.AuthPOST(adminToken, "/admin/participants/"+queue[0].ID.String()+"/approve", nil)
	defer appr.Body.Close()
	testutil.AssertStatus(t, appr, http.StatusOK)

	rej := env.AuthPOST(adminToken, "/admin/participants/"+queue[1].ID.String()+"/reject", nil)
	defer rej.Body.Close()
	testutil.AssertStatus(t, rej, http.StatusOK)

	// Queue is now empty
	after := env.AuthGET(adminToken, "/admin/participants/pending")
	defer after.Body.Close()
	var rest []struct{}
	testutil.DecodeJSON(t, after, &rest)
	if len(rest) != 0 {
		t.Fatalf("expected empty pending queue, got %d entries", len(rest))
	}

	// Tournament roster shows only the approved entry
	roster := env.AuthGET(adminToken, "/admin/tournaments/"+tournamentID.String()+"/participants")
	defer roster.Body.Close()
	testutil.AssertStatus(t, roster, http.StatusOK)

	var members []struct {
		Approved bool `json:"approved"`
	}
	testutil.DecodeJSON(t, roster, &members)
	if len(members) != 1 || !members[0].Approved {
		t.Fatalf("expected one approved member, got %+v", members)
	}

	// Approving an unknown entry is a 404
	missing := env.AuthPOST(adminToken, "/admin/participants/"+uuid.New().String()+"/approve", nil)
	defer missing.Body.Close()
	testutil.AssertErrorCode(t, missing, http.StatusNotFound, "NOT_FOUND")
}

func TestDeleteTournamentRemovesEntries(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminToken, _ := env.CreateAdmin(testutil.UniqueName("admin"), "adminpass123")
	token, _ := env.RegisterPlayer(testutil.UniqueName("player"), "hunter2hunter2")

	tournamentID := createTournament(t, env, adminToken, "Doomed Cup")

	join := env.AuthPOST(token, "/tournaments/"+tournamentID.String()+"/join", map[string]any{
		"game_uid": "GU-9",
	})
	join.Body.Close()

	del := env.AuthDELETE(adminToken, "/admin/tournaments/"+tournamentID.String())
	defer del.Body.Close()
	testutil.AssertStatus(t, del, http.StatusOK)

	mine := env.AuthGET(token, "/users/me/participations")
	defer mine.Body.Close()
	testutil.AssertStatus(t, mine, http.StatusOK)

	var list []struct{}
	testutil.DecodeJSON(t, mine, &list)
	if len(list) != 0 {
		t.Fatalf("expected entries removed with the tournament, got %d", len(list))
	}
}

func TestConcurrentDuplicateJoins(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminToken, _ := env.CreateAdmin(testutil.UniqueName("admin"), "adminpass123")
	token, _ := env.RegisterPlayer(testutil.UniqueName("player"), "hunter2hunter2")

	tournamentID := createTournament(t, env, adminToken, "Race Cup")

	// Identical joins in parallel: the ON CONFLICT insert lets exactly one
	// row through regardless of interleaving.
	const workers = 8
	statuses := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := env.AuthPOST(token, "/tournaments/"+tournamentID.String()+"/join", map[string]any{
				"game_uid": "GU-RACE",
			})
			statuses <- r.StatusCode
			r.Body.Close()
		}()
	}
	wg.Wait()
	close(statuses)

	var created, conflict int
	for code := range statuses {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflict++
		default:
			t.Fatalf("unexpected status %d from concurrent join", code)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly 1 successful join, got %d", created)
	}
	if conflict != workers-1 {
		t.Fatalf("expected %d conflicts, got %d", workers-1, conflict)
	}

	mine := env.AuthGET(token, "/users/me/participations")
	defer mine.Body.Close()
	testutil.AssertStatus(t, mine, http.StatusOK)

	var list []struct{}
	testutil.DecodeJSON(t, mine, &list)
	if len(list) != 1 {
		t.Fatalf("expected exactly 1 participation row, got %d", len(list))
	}
}
