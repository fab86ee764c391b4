package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type repos struct {
	profiles       ports.ProfileRepository
	constituencies ports.ConstituencyRepository
	parties        ports.PartyRepository
	candidates     ports.CandidateRepository
	votes          ports.VoteRepository
	auth           ports.AuthRepository
}

func newRepos(t *testing.T) repos {
	db := newTestDB(t)
	return repos{
		profiles:       NewProfileRepository(db),
		constituencies: NewConstituencyRepository(db),
		parties:        NewPartyRepository(db),
		candidates:     NewCandidateRepository(db),
		votes:          NewVoteRepository(db),
		auth:           NewAuthRepository(db),
	}
}

func (r repos) seed(t *testing.T) (*domain.Constituency, *domain.Party, []*domain.Candidate) {
	t.Helper()
	ctx := context.Background()

	c := &domain.Constituency{Province: "Bangkok", ZoneNumber: 1, IsPollOpen: true}
	require.NoError(t, r.constituencies.Create(ctx, c))
	p := &domain.Party{Name: "Blue", Color: domain.DefaultPartyColor}
	require.NoError(t, r.parties.Create(ctx, p))

	var cands []*domain.Candidate
	for i, name := range []string{"Anan", "Boon", "Chai"} {
		cand := &domain.Candidate{
			FirstName:       name,
			LastName:        "Test",
			CandidateNumber: i + 1,
			NationalID:      uuid.NewString()[:13],
			PartyID:         p.ID,
			ConstituencyID:  c.ID,
		}
		require.NoError(t, r.candidates.Create(ctx, cand))
		cands = append(cands, cand)
	}
	return c, p, cands
}

func (r repos) voter(t *testing.T, c *domain.Constituency) *domain.Profile {
	t.Helper()
	id := uuid.NewString()
	p := &domain.Profile{
		Email:          id + "@example.com",
		PasswordHash:   "hash",
		NationalID:     id[:13],
		FullName:       "Voter",
		Role:           domain.RoleVoter,
		ConstituencyID: &c.ID,
	}
	require.NoError(t, r.profiles.Create(context.Background(), p))
	return p
}

func TestProfileRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c, _, _ := r.seed(t)
	voter := r.voter(t, c)

	got, err := r.profiles.GetByEmail(ctx, voter.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Constituency)
	assert.Equal(t, "Bangkok", got.Constituency.Province)

	missing, err := r.profiles.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := *voter
	dup.NationalID = "0000000000000"
	assert.ErrorIs(t, r.profiles.Create(ctx, &dup), domain.ErrEmailTaken)

	updated, err := r.profiles.UpdateRole(ctx, voter.ID, domain.RoleEC)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEC, updated.Role)

	n, err := r.profiles.CountByRole(ctx, domain.RoleAdmin, domain.RoleEC)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, total, err := r.profiles.List(ctx, domain.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	deleted, err := r.profiles.Delete(ctx, voter.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestConstituencyAndPartyRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c, p, _ := r.seed(t)

	err := r.constituencies.Create(ctx, &domain.Constituency{Province: "Bangkok", ZoneNumber: 1})
	assert.ErrorIs(t, err, domain.ErrConstituencyExists)
	require.NoError(t, r.constituencies.Create(ctx, &domain.Constituency{Province: "Phuket", ZoneNumber: 1, IsPollOpen: true}))

	items, total, err := r.constituencies.List(ctx, domain.Page{Page: 1, Limit: 10}, "Phuket")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)

	closed, err := r.constituencies.SetPollStatus(ctx, c.ID, false)
	require.NoError(t, err)
	assert.False(t, closed.IsPollOpen)
	n, err := r.constituencies.CountClosed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	changed, err := r.constituencies.SetAllPollStatus(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	assert.ErrorIs(t, r.parties.Create(ctx, &domain.Party{Name: "Blue"}), domain.ErrPartyExists)
	_, err = r.parties.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrPartyInUse)
}

func TestCandidateRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c, p, cands := r.seed(t)

	got, err := r.candidates.GetByID(ctx, cands[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got.Party)
	assert.Equal(t, p.Name, got.Party.Name)
	assert.Equal(t, c.Province, got.Constituency.Province)

	list, total, err := r.candidates.List(ctx, domain.Page{Page: 1, Limit: 2}, ports.CandidateFilter{ConstituencyID: &c.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].CandidateNumber)

	all, err := r.candidates.ListWithParty(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got.CandidateNumber = 9
	require.NoError(t, r.candidates.Update(ctx, got))
	again, err := r.candidates.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, again.CandidateNumber)
}

func TestVoteRepository_UniqueBallot(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c, _, cands := r.seed(t)
	voter := r.voter(t, c)

	vote := &domain.Vote{VoterID: voter.ID, CandidateID: cands[0].ID, ConstituencyID: c.ID, CastAt: time.Now()}
	require.NoError(t, r.votes.Insert(ctx, vote))

	dup := &domain.Vote{VoterID: voter.ID, CandidateID: cands[1].ID, ConstituencyID: c.ID, CastAt: time.Now()}
	assert.ErrorIs(t, r.votes.Insert(ctx, dup), domain.ErrBallotExists)

	updated, err := r.votes.UpdateCandidate(ctx, voter.ID, c.ID, cands[1].ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, cands[1].ID, updated.CandidateID)

	counts, err := r.votes.CountByCandidate(ctx, &c.ID)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{cands[1].ID: 1}, counts)
}

func TestVoteRepository_ConcurrentInserts(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c, _, cands := r.seed(t)
	voter := r.voter(t, c)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
		conflict int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(cand *domain.Candidate) {
			defer wg.Done()
			err := r.votes.Insert(ctx, &domain.Vote{VoterID: voter.ID, CandidateID: cand.ID, ConstituencyID: c.ID, CastAt: time.Now()})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				inserted++
			case errors.Is(err, domain.ErrBallotExists):
				conflict++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(cands[i%len(cands)])
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	assert.Equal(t, 9, conflict)
	n, err := r.votes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAuthRepository(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	c, _, _ := r.seed(t)
	voter := r.voter(t, c)

	live := &domain.RefreshToken{ProfileID: voter.ID, TokenHash: "live", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &domain.RefreshToken{ProfileID: voter.ID, TokenHash: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, r.auth.StoreRefreshToken(ctx, live))
	require.NoError(t, r.auth.StoreRefreshToken(ctx, stale))

	require.NoError(t, r.auth.RevokeRefreshToken(ctx, live.ID.String()))
	got, err := r.auth.GetRefreshTokenByHash(ctx, "live")
	require.NoError(t, err)
	assert.True(t, got.Revoked)

	n, err := r.auth.DeleteExpiredRefreshTokens(ctx, voter.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err = r.auth.GetRefreshTokenByHash(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReset(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	constituencies := NewConstituencyRepository(db)
	require.NoError(t, constituencies.Create(ctx, &domain.Constituency{Province: "Phuket", ZoneNumber: 1, IsPollOpen: true}))

	require.NoError(t, Reset(ctx, db))

	n, err := constituencies.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	c := &domain.Constituency{Province: "Phuket", ZoneNumber: 1, IsPollOpen: true}
	require.NoError(t, constituencies.Create(ctx, c))
	assert.Equal(t, int64(1), c.ID, "sequences restart")
}
