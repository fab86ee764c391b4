package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

// TestResultsFlow: votes -> live results -> close polls -> seats.
func TestResultsFlow(t *testing.T) {
	app := setupTestApp(t)
	defer app.Teardown(t)

	ballot := app.createBallot(t, "Bangkok", 3)
	for i, pick := range []int{1, 1, 0} {
		voter := app.tokenFor(t, domain.RoleVoter, &ballot.constituencyID)
		status, resp := app.do(t, http.MethodPost, "/api/voter/vote", voter, map[string]any{"candidateId": ballot.candidateIDs[pick]})
		require.Equal(t, http.StatusCreated, status, "voter %d: %s", i, resp.Message)
	}

	// 1. Ranked results for the constituency
	status, resp := app.do(t, http.MethodGet, fmt.Sprintf("/api/public/results?constituencyId=%d", ballot.constituencyID), "", nil)
	require.Equal(t, http.StatusOK, status)
	var result domain.ConstituencyResult
	resp.decode(t, &result)
	require.Len(t, result.Candidates, 3)
	assert.Equal(t, int64(3), result.TotalVotes)
	assert.Equal(t, ballot.candidateIDs[1], result.Candidates[0].CandidateID)
	assert.Equal(t, int64(2), result.Candidates[0].VoteCount)
	assert.Equal(t, ballot.candidateIDs[0], result.Candidates[1].CandidateID)
	assert.Equal(t, int64(0), result.Candidates[2].VoteCount)

	status, resp = app.do(t, http.MethodGet, "/api/public/results?constituencyId=999999", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp.Data)

	// 2. No seats while the poll is open
	status, resp = app.do(t, http.MethodGet, "/api/public/stats", "", nil)
	require.Equal(t, http.StatusOK, status)
	var dashboard domain.DashboardStats
	resp.decode(t, &dashboard)
	assert.Equal(t, int64(3), dashboard.TotalVotes)
	assert.Zero(t, dashboard.CountingProgress)
	for _, p := range dashboard.PartyStats {
		assert.Zero(t, p.Seats, p.Name)
	}

	// 3. Close every poll and the leader's party takes the seat
	status, resp = app.do(t, http.MethodPost, "/api/ec/control/close-all", ballot.ecToken, nil)
	require.Equal(t, http.StatusOK, status)
	var bulk struct {
		Affected int64 `json:"affected"`
	}
	resp.decode(t, &bulk)
	assert.Equal(t, int64(1), bulk.Affected)

	status, resp = app.do(t, http.MethodGet, "/api/public/stats", "", nil)
	require.Equal(t, http.StatusOK, status)
	resp.decode(t, &dashboard)
	assert.Equal(t, 100.0, dashboard.CountingProgress)

	var winner domain.Candidate
	status, resp = app.do(t, http.MethodGet, fmt.Sprintf("/api/ec/candidates/%d", ballot.candidateIDs[1]), ballot.ecToken, nil)
	require.Equal(t, http.StatusOK, status)
	resp.decode(t, &winner)

	seats := map[int64]int{}
	for _, p := range dashboard.PartyStats {
		seats[p.ID] = p.Seats
	}
	assert.Equal(t, 1, seats[winner.PartyID])

	// 4. Reopen
	status, resp = app.do(t, http.MethodPost, "/api/ec/control/open-all", ballot.ecToken, nil)
	require.Equal(t, http.StatusOK, status)
	resp.decode(t, &bulk)
	assert.Equal(t, int64(1), bulk.Affected)
}

func TestOfficerCatalog(t *testing.T) {
	app := setupTestApp(t)
	defer app.Teardown(t)

	ballot := app.createBallot(t, "Kanchanaburi", 1)

	status, resp := app.do(t, http.MethodGet, fmt.Sprintf("/api/ec/candidates?constituencyId=%d", ballot.constituencyID), ballot.ecToken, nil)
	require.Equal(t, http.StatusOK, status)
	var listed []domain.Candidate
	resp.decode(t, &listed)
	require.Len(t, listed, 1)
	partyID := listed[0].PartyID

	status, resp = app.do(t, http.MethodDelete, fmt.Sprintf("/api/ec/parties/%d", partyID), ballot.ecToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.ErrPartyInUse.Error(), resp.Message)

	status, _ = app.do(t, http.MethodPost, "/api/admin/constituencies", ballot.adminToken, map[string]any{"province": "Kanchanaburi", "zoneNumber": 1})
	assert.Equal(t, http.StatusBadRequest, status, "duplicate province and zone")

	status, _ = app.do(t, http.MethodPost, "/api/admin/constituencies", ballot.ecToken, map[string]any{"province": "Kanchanaburi", "zoneNumber": 2})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = app.do(t, http.MethodDelete, fmt.Sprintf("/api/ec/candidates/%d", ballot.candidateIDs[0]), ballot.ecToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = app.do(t, http.MethodDelete, fmt.Sprintf("/api/ec/parties/%d", partyID), ballot.ecToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = app.do(t, http.MethodGet, "/api/public/parties", "", nil)
	require.Equal(t, http.StatusOK, status)
	var parties []domain.Party
	resp.decode(t, &parties)
	assert.Empty(t, parties)
}
