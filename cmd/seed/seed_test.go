package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

func TestNationalID(t *testing.T) {
	assert.Equal(t, "9000000000000", nationalID(9, 0))
	assert.Equal(t, "1000000000042", nationalID(1, 42))
	assert.Len(t, nationalID(1, 999999), 13)
}

func TestSeeder_Picks(t *testing.T) {
	s := newSeeder(seedRepos{}, options{seed: 7}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	all := []*domain.Party{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	for range 50 {
		picked := s.pickParties(all, candidatesPerConstituency)
		assert.Len(t, picked, candidatesPerConstituency)
		seen := map[int64]bool{}
		for _, p := range picked {
			assert.False(t, seen[p.ID], "parties are distinct")
			seen[p.ID] = true
		}

		choice := s.pickCandidate(3, 1)
		assert.GreaterOrEqual(t, choice, 0)
		assert.Less(t, choice, 3)
	}

	assert.Len(t, s.pickParties(all[:2], candidatesPerConstituency), 2)
}

func TestSeeder_Deterministic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := newSeeder(seedRepos{}, options{seed: 42}, logger)
	b := newSeeder(seedRepos{}, options{seed: 42}, logger)

	for range 10 {
		fa, la := a.name()
		fb, lb := b.name()
		assert.Equal(t, fa, fb)
		assert.Equal(t, la, lb)
	}
}
