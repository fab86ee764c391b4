package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const demoPassword = "123456"

type province struct {
	name  string
	zones int
}

var provinces = []province{
	{"Chiang Mai", 3},
	{"Khon Kaen", 3},
	{"Nakhon Ratchasima", 3},
	{"Bangkok", 5},
	{"Chonburi", 3},
	{"Kanchanaburi", 2},
	{"Songkhla", 3},
	{"Phuket", 1},
}

var parties = []domain.Party{
	{Name: "Future Forward (FF)", Color: "#F47933", Policy: "Technology for All", LogoURL: "https://placehold.co/200x200/F47933/ffffff.png?text=FF"},
	{Name: "People's Power (PP)", Color: "#E30613", Policy: "Power to the People", LogoURL: "https://placehold.co/200x200/E30613/ffffff.png?text=PP"},
	{Name: "Blue Sky (BS)", Color: "#2D3494", Policy: "Clear Sky, Clear Future", LogoURL: "https://placehold.co/200x200/2D3494/ffffff.png?text=BS"},
	{Name: "Green Earth (GE)", Color: "#00B2E3", Policy: "Sustainable Growth", LogoURL: "https://placehold.co/200x200/00B2E3/ffffff.png?text=GE"},
}

var (
	firstNames = []string{"Somchai", "Somsak", "Malee", "Wichai", "Pranee"}
	lastNames  = []string{"Jaidee", "Rakthai", "Mungmee", "Srisuk"}
)

const candidatesPerConstituency = 3

type options struct {
	reset                bool
	seed                 uint64
	votesPerConstituency int
	closedRatio          float64
}

type seedRepos struct {
	profiles       ports.ProfileRepository
	constituencies ports.ConstituencyRepository
	parties        ports.PartyRepository
	candidates     ports.CandidateRepository
	votes          ports.VoteRepository
}

type summary struct {
	constituencies int
	parties        int
	candidates     int
	votes          int
}

type seeder struct {
	repos  seedRepos
	opts   options
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func newSeeder(repos seedRepos, opts options, logger *slog.Logger) *seeder {
	return &seeder{
		repos:  repos,
		opts:   opts,
		logger: logger,
		rng:    rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15)),
	}
}

func (s *seeder) run(ctx context.Context) (*summary, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	constituencies, err := s.createConstituencies(ctx)
	if err != nil {
		return nil, err
	}
	createdParties, err := s.createParties(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		sum = summary{constituencies: len(constituencies), parties: len(createdParties)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, c := range constituencies {
		g.Go(func() error {
			candidates, votes, err := s.populate(gctx, i, c, createdParties, string(hash))
			if err != nil {
				return fmt.Errorf("constituency %s %d: %w", c.Province, c.ZoneNumber, err)
			}
			mu.Lock()
			sum.candidates += candidates
			sum.votes += votes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.createFixedAccounts(ctx, constituencies[0].ID, string(hash)); err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *seeder) createConstituencies(ctx context.Context) ([]*domain.Constituency, error) {
	var out []*domain.Constituency
	for _, p := range provinces {
		for zone := 1; zone <= p.zones; zone++ {
			c := &domain.Constituency{
				Province:   p.name,
				ZoneNumber: zone,
				IsPollOpen: s.float() >= s.opts.closedRatio,
			}
			if err := s.repos.constituencies.Create(ctx, c); err != nil {
				return nil, fmt.Errorf("failed to create constituency %s %d: %w", p.name, zone, err)
			}
			out = append(out, c)
		}
	}
	s.logger.Info("constituencies created", "count", len(out))
	return out, nil
}

func (s *seeder) createParties(ctx context.Context) ([]*domain.Party, error) {
	out := make([]*domain.Party, 0, len(parties))
	for _, p := range parties {
		party := p
		if err := s.repos.parties.Create(ctx, &party); err != nil {
			return nil, fmt.Errorf("failed to create party %s: %w", p.Name, err)
		}
		out = append(out, &party)
	}
	s.logger.Info("parties created", "count", len(out))
	return out, nil
}

// populate adds the candidates of one constituency and, when its poll is
// closed, a batch of voters who have already voted there.
func (s *seeder) populate(ctx context.Context, index int, c *domain.Constituency, all []*domain.Party, hash string) (int, int, error) {
	candidates := make([]*domain.Candidate, 0, candidatesPerConstituency)
	for i, party := range s.pickParties(all, candidatesPerConstituency) {
		first, last := s.name()
		cand := &domain.Candidate{
			FirstName:       first,
			LastName:        last,
			CandidateNumber: i + 1,
			ImageURL:        "https://api.dicebear.com/9.x/avataaars/svg?seed=" + first + last,
			PersonalPolicy:  "Vote for " + party.Name,
			NationalID:      nationalID(9, index*candidatesPerConstituency+i),
			PartyID:         party.ID,
			ConstituencyID:  c.ID,
		}
		if err := s.repos.candidates.Create(ctx, cand); err != nil {
			return 0, 0, fmt.Errorf("failed to create candidate: %w", err)
		}
		candidates = append(candidates, cand)
	}

	if c.IsPollOpen || len(candidates) == 0 {
		return len(candidates), 0, nil
	}

	favourite := s.intN(len(candidates))
	for v := 0; v < s.opts.votesPerConstituency; v++ {
		voter := &domain.Profile{
			Email:          fmt.Sprintf("v_%d_%d@seed.com", c.ID, v),
			PasswordHash:   hash,
			NationalID:     nationalID(1, index*s.opts.votesPerConstituency+v),
			FullName:       fmt.Sprintf("Voter %d", v),
			Address:        c.Province,
			Role:           domain.RoleVoter,
			ConstituencyID: &c.ID,
		}
		if err := s.repos.profiles.Create(ctx, voter); err != nil {
			return 0, 0, fmt.Errorf("failed to create voter: %w", err)
		}

		choice := s.pickCandidate(len(candidates), favourite)
		vote := &domain.Vote{
			VoterID:        voter.ID,
			CandidateID:    candidates[choice].ID,
			ConstituencyID: c.ID,
			CastAt:         time.Now(),
		}
		if err := s.repos.votes.Insert(ctx, vote); err != nil {
			return 0, 0, fmt.Errorf("failed to cast vote: %w", err)
		}
	}
	return len(candidates), s.opts.votesPerConstituency, nil
}

func (s *seeder) createFixedAccounts(ctx context.Context, voterConstituency int64, hash string) error {
	accounts := []*domain.Profile{
		{Email: "admin@election.th", NationalID: "1111111", FullName: "Admin", Address: "Admin HQ", Role: domain.RoleAdmin},
		{Email: "ec@election.th", NationalID: "2222222", FullName: "EC Chair", Address: "EC HQ", Role: domain.RoleEC},
		{Email: "voter@election.th", NationalID: "3333333", FullName: "Voter 1", Address: "Bangkok", Role: domain.RoleVoter, ConstituencyID: &voterConstituency},
	}
	for _, p := range accounts {
		p.PasswordHash = hash
		if err := s.repos.profiles.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create %s: %w", p.Email, err)
		}
	}
	s.logger.Info("fixed accounts created", "password", demoPassword)
	return nil
}

// pickParties returns n distinct parties in random order.
func (s *seeder) pickParties(all []*domain.Party, n int) []*domain.Party {
	s.mu.Lock()
	perm := s.rng.Perm(len(all))
	s.mu.Unlock()

	n = min(n, len(all))
	out := make([]*domain.Party, n)
	for i := range n {
		out[i] = all[perm[i]]
	}
	return out
}

// pickCandidate leans 60% of ballots towards the favourite.
func (s *seeder) pickCandidate(n, favourite int) int {
	if s.float() > 0.4 {
		return favourite
	}
	return s.intN(n)
}

func (s *seeder) name() (string, string) {
	return firstNames[s.intN(len(firstNames))], lastNames[s.intN(len(lastNames))]
}

func (s *seeder) float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *seeder) intN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// nationalID builds a 13 digit id: the prefix digit followed by n.
func nationalID(prefix, n int) string {
	return strconv.Itoa(prefix) + fmt.Sprintf("%012d", n)
}
