package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

func TestVoteFlow(t *testing.T) {
	app := setupTestApp(t)
	defer app.Teardown(t)

	ballot := app.createBallot(t, "Khon Kaen", 3)
	voter := app.tokenFor(t, domain.RoleVoter, &ballot.constituencyID)

	// 1. Ballot listing follows the voter's own constituency
	status, resp := app.do(t, http.MethodGet, "/api/voter/candidates", voter, nil)
	require.Equal(t, http.StatusOK, status)
	var candidates []domain.Candidate
	resp.decode(t, &candidates)
	require.Len(t, candidates, 3)
	assert.Equal(t, 1, candidates[0].CandidateNumber)

	// 2. No ballot yet
	status, resp = app.do(t, http.MethodGet, "/api/voter/my-vote", voter, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp.Data)

	// 3. Cast, then change through POST
	status, resp = app.do(t, http.MethodPost, "/api/voter/vote", voter, map[string]any{"candidateId": ballot.candidateIDs[0]})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	assert.Equal(t, "vote cast", resp.Message)

	status, resp = app.do(t, http.MethodPost, "/api/voter/vote", voter, map[string]any{"candidateId": ballot.candidateIDs[1]})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	assert.Equal(t, "vote changed", resp.Message)

	// 4. PUT changes the same ballot
	status, resp = app.do(t, http.MethodPut, "/api/voter/vote", voter, map[string]any{"candidateId": ballot.candidateIDs[2]})
	require.Equal(t, http.StatusOK, status, resp.Message)

	status, resp = app.do(t, http.MethodGet, "/api/voter/vote", voter, nil)
	require.Equal(t, http.StatusOK, status)
	var mine domain.Vote
	resp.decode(t, &mine)
	assert.Equal(t, ballot.candidateIDs[2], mine.CandidateID)
	require.NotNil(t, mine.Candidate)

	var rows int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&rows))
	assert.Equal(t, 1, rows, "changing a vote never adds a ballot")

	// 5. Closed poll rejects changes
	status, _ = app.do(t, http.MethodPatch, fmt.Sprintf("/api/ec/control/%d", ballot.constituencyID), ballot.ecToken, map[string]any{"isPollOpen": false})
	require.Equal(t, http.StatusOK, status)

	status, resp = app.do(t, http.MethodPost, "/api/voter/vote", voter, map[string]any{"candidateId": ballot.candidateIDs[0]})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.ErrPollClosed.Error(), resp.Message)
}

func TestVote_Rejections(t *testing.T) {
	app := setupTestApp(t)
	defer app.Teardown(t)

	home := app.createBallot(t, "Songkhla", 1)
	away := app.createBallot(t, "Phuket", 1)
	voter := app.tokenFor(t, domain.RoleVoter, &home.constituencyID)
	homeless := app.tokenFor(t, domain.RoleVoter, nil)

	status, resp := app.do(t, http.MethodPost, "/api/voter/vote", voter, map[string]any{"candidateId": away.candidateIDs[0]})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.ErrCandidateNotInConstituency.Error(), resp.Message)

	status, _ = app.do(t, http.MethodPost, "/api/voter/vote", voter, map[string]any{"candidateId": 999999})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = app.do(t, http.MethodPut, "/api/voter/vote", voter, map[string]any{"candidateId": home.candidateIDs[0]})
	assert.Equal(t, http.StatusBadRequest, status, "nothing to change yet")

	status, resp = app.do(t, http.MethodPost, "/api/voter/vote", homeless, map[string]any{"candidateId": home.candidateIDs[0]})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.ErrNoConstituency.Error(), resp.Message)

	status, _ = app.do(t, http.MethodPost, "/api/voter/vote", "", map[string]any{"candidateId": home.candidateIDs[0]})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestVote_ConcurrentCasts(t *testing.T) {
	app := setupTestApp(t)
	defer app.Teardown(t)

	ballot := app.createBallot(t, "Chonburi", 2)
	voter := app.tokenFor(t, domain.RoleVoter, &ballot.constituencyID)

	const attempts = 10
	statuses := make([]int, attempts)
	messages := make([]string, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var resp apiResponse
			statuses[i], resp = app.do(t, http.MethodPost, "/api/voter/vote", voter, map[string]any{
				"candidateId": ballot.candidateIDs[i%2],
			})
			messages[i] = resp.Message
		}()
	}
	wg.Wait()

	var created, changed int
	for i, s := range statuses {
		require.Equal(t, http.StatusCreated, s, messages[i])
		switch messages[i] {
		case "vote cast":
			created++
		case "vote changed":
			changed++
		}
	}
	assert.Equal(t, 1, created, "exactly one request creates the ballot")
	assert.Equal(t, attempts-1, changed)

	var rows int
	err := app.DB.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM votes WHERE constituency_id = $1", ballot.constituencyID).Scan(&rows)
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}
