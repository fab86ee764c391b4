package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

func TestConstituencyService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewConstituencyService(f.constituencies, nil)

	c, err := svc.Create(ctx, ports.CreateConstituencyInput{Province: " Bangkok ", ZoneNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, "Bangkok", c.Province)
	assert.True(t, c.IsPollOpen)

	_, err = svc.Create(ctx, ports.CreateConstituencyInput{Province: "Bangkok", ZoneNumber: 1})
	require.ErrorIs(t, err, domain.ErrConstituencyExists)
	_, err = svc.Create(ctx, ports.CreateConstituencyInput{Province: "Bangkok", ZoneNumber: 0})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Create(ctx, ports.CreateConstituencyInput{Province: "Phuket", ZoneNumber: 1})
	require.NoError(t, err)

	page, err := svc.List(ctx, domain.Page{}, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, domain.PageMeta{Total: 2, Page: 1, Limit: 50, TotalPages: 1}, page.Meta)

	page, err = svc.List(ctx, domain.Page{Page: 1, Limit: 10}, "Phuket")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	closed, err := svc.SetPollStatus(ctx, c.ID, false)
	require.NoError(t, err)
	assert.False(t, closed.IsPollOpen)
	_, err = svc.SetPollStatus(ctx, 999, false)
	require.ErrorIs(t, err, domain.ErrConstituencyNotFound)

	n, err := svc.CloseAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = svc.OpenAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, svc.Delete(ctx, c.ID))
	require.ErrorIs(t, svc.Delete(ctx, c.ID), domain.ErrConstituencyNotFound)
	_, err = svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrConstituencyNotFound)
}

func TestPartyService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewPartyService(f.parties, nil)

	blue, err := svc.Create(ctx, ports.CreatePartyInput{Name: "Blue"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPartyColor, blue.Color)

	_, err = svc.Create(ctx, ports.CreatePartyInput{Name: "Blue"})
	require.ErrorIs(t, err, domain.ErrPartyExists)

	red, err := svc.Create(ctx, ports.CreatePartyInput{Name: "Red", Color: "#EF4444"})
	require.NoError(t, err)

	taken := "Blue"
	_, err = svc.Update(ctx, red.ID, ports.UpdatePartyInput{Name: &taken})
	require.ErrorIs(t, err, domain.ErrPartyExists)

	policy := "lower taxes"
	same := "Blue"
	updated, err := svc.Update(ctx, blue.ID, ports.UpdatePartyInput{Name: &same, Policy: &policy})
	require.NoError(t, err)
	assert.Equal(t, "lower taxes", updated.Policy)
	assert.Equal(t, domain.DefaultPartyColor, updated.Color)

	page, err := svc.List(ctx, domain.Page{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Blue", page.Items[0].Name)
	assert.Equal(t, 20, page.Meta.Limit)

	c := f.constituency("Bangkok", 1, true)
	f.candidate("A", 1, red, c)
	require.ErrorIs(t, svc.Delete(ctx, red.ID), domain.ErrPartyInUse)
	require.NoError(t, svc.Delete(ctx, blue.ID))
	require.ErrorIs(t, svc.Delete(ctx, blue.ID), domain.ErrPartyNotFound)
}

func TestCandidateService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	c := f.constituency("Bangkok", 1, true)
	blue := f.party("Blue")
	red := f.party("Red")
	svc := NewCandidateService(f.candidates, f.parties, f.constituencies, f.profiles, nil)

	input := ports.CreateCandidateInput{
		FirstName:       "Anan",
		LastName:        "Somsak",
		CandidateNumber: 1,
		PartyID:         blue.ID,
		ConstituencyID:  c.ID,
		NationalID:      "1100000000001",
	}
	cand, err := svc.Create(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, cand.Party)
	assert.Equal(t, "Blue", cand.Party.Name)

	officer := f.voter(nil)
	_, err = f.profiles.UpdateRole(ctx, officer.ID, domain.RoleEC)
	require.NoError(t, err)
	asOfficer := input
	asOfficer.NationalID = officer.NationalID
	_, err = svc.Create(ctx, asOfficer)
	require.ErrorIs(t, err, domain.ErrCandidateIsOfficer)

	noParty := input
	noParty.PartyID = 999
	_, err = svc.Create(ctx, noParty)
	require.ErrorIs(t, err, domain.ErrPartyNotFound)

	noConstituency := input
	noConstituency.ConstituencyID = 999
	_, err = svc.Create(ctx, noConstituency)
	require.ErrorIs(t, err, domain.ErrConstituencyNotFound)

	number := 7
	updated, err := svc.Update(ctx, cand.ID, ports.UpdateCandidateInput{CandidateNumber: &number, PartyID: &red.ID})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.CandidateNumber)
	assert.Equal(t, red.ID, updated.PartyID)

	list, err := svc.ListByConstituency(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, err = svc.ListByConstituency(ctx, 999)
	require.ErrorIs(t, err, domain.ErrConstituencyNotFound)

	page, err := svc.List(ctx, domain.Page{}, ports.CandidateFilter{PartyID: &blue.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	require.NoError(t, svc.Delete(ctx, cand.ID))
	_, err = svc.Get(ctx, cand.ID)
	require.ErrorIs(t, err, domain.ErrCandidateNotFound)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewUserService(f.profiles, nil)
	voter := f.voter(nil)

	got, err := svc.GetByID(ctx, voter.ID.String())
	require.NoError(t, err)
	assert.Equal(t, voter.Email, got.Email)

	_, err = svc.UpdateRole(ctx, voter.ID.String(), domain.Role("root"))
	require.ErrorIs(t, err, domain.ErrInvalidRole)

	promoted, err := svc.UpdateRole(ctx, voter.ID.String(), domain.RoleEC)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEC, promoted.Role)

	_, err = svc.UpdateRole(ctx, "00000000-0000-0000-0000-000000000000", domain.RoleEC)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	page, err := svc.List(ctx, domain.Page{Page: 3, Limit: 5000})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, domain.MaxPageLimit, page.Meta.Limit)

	require.NoError(t, svc.Delete(ctx, voter.ID.String()))
	require.ErrorIs(t, svc.Delete(ctx, voter.ID.String()), domain.ErrProfileNotFound)
}
