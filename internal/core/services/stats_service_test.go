package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

func TestStatsService_AdminStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.constituency("Bangkok", 1, true)
	f.voter(c)
	f.voter(c)
	officer := f.voter(nil)
	_, err := f.profiles.UpdateRole(ctx, officer.ID, domain.RoleEC)
	require.NoError(t, err)

	svc := NewStatsService(f.profiles, f.constituencies, f.parties, f.candidates, f.votes)
	stats, err := svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVoters)
	assert.Equal(t, int64(1), stats.TotalConstituencies)
	assert.Equal(t, int64(1), stats.TotalOfficers)
	assert.Zero(t, stats.VoterChange)
}

func TestStatsService_ECStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewStatsService(f.profiles, f.constituencies, f.parties, f.candidates, f.votes)

	stats, err := svc.ECStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.VotedPercentage)

	c := f.constituency("Bangkok", 1, true)
	a := f.candidate("A", 1, f.party("Blue"), c)
	f.ballot(f.voter(c), a)
	f.voter(c)
	f.voter(c)

	stats, err = svc.ECStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalParties)
	assert.Equal(t, int64(1), stats.TotalCandidates)
	assert.Equal(t, int64(1), stats.VotedCount)
	assert.Equal(t, 33.3, stats.VotedPercentage)
}
