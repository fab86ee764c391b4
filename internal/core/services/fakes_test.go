package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// memStore backs every repository port with maps guarded by one mutex. The
// vote table enforces the same (voter, constituency) uniqueness as postgres.
type memStore struct {
	mu             sync.Mutex
	seq            int64
	profiles       map[uuid.UUID]*domain.Profile
	constituencies map[int64]*domain.Constituency
	parties        map[int64]*domain.Party
	candidates     map[int64]*domain.Candidate
	votes          map[voteKey]*domain.Vote
	tokens         map[uuid.UUID]*domain.RefreshToken
}

type voteKey struct {
	voter        uuid.UUID
	constituency int64
}

func newMemStore() *memStore {
	return &memStore{
		profiles:       map[uuid.UUID]*domain.Profile{},
		constituencies: map[int64]*domain.Constituency{},
		parties:        map[int64]*domain.Party{},
		candidates:     map[int64]*domain.Candidate{},
		votes:          map[voteKey]*domain.Vote{},
		tokens:         map[uuid.UUID]*domain.RefreshToken{},
	}
}

func (m *memStore) nextID() int64 {
	m.seq++
	return m.seq
}

func paginate[T any](items []T, page domain.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type memProfiles struct{ *memStore }

func (r memProfiles) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.profiles {
		if other.Email == p.Email {
			return domain.ErrEmailTaken
		}
		if other.NationalID == p.NationalID {
			return domain.ErrNationalIDTaken
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r memProfiles) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r memProfiles) find(match func(*domain.Profile) bool) *domain.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if match(p) {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (r memProfiles) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	return r.find(func(p *domain.Profile) bool { return p.Email == email }), nil
}

func (r memProfiles) GetByNationalID(_ context.Context, nationalID string) (*domain.Profile, error) {
	return r.find(func(p *domain.Profile) bool { return p.NationalID == nationalID }), nil
}

func (r memProfiles) List(_ context.Context, page domain.Page) ([]*domain.Profile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, page), int64(len(all)), nil
}

func (r memProfiles) UpdateRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	p.Role = role
	cp := *p
	return &cp, nil
}

func (r memProfiles) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.profiles[id]
	delete(r.profiles, id)
	return ok, nil
}

func (r memProfiles) CountByRole(_ context.Context, roles ...domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.profiles {
		for _, role := range roles {
			if p.Role == role {
				n++
			}
		}
	}
	return n, nil
}

type memConstituencies struct{ *memStore }

func (r memConstituencies) Create(_ context.Context, c *domain.Constituency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.constituencies {
		if other.Province == c.Province && other.ZoneNumber == c.ZoneNumber {
			return domain.ErrConstituencyExists
		}
	}
	c.ID = r.nextID()
	cp := *c
	r.constituencies[c.ID] = &cp
	return nil
}

func (r memConstituencies) GetByID(_ context.Context, id int64) (*domain.Constituency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.constituencies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r memConstituencies) GetByProvinceAndZone(_ context.Context, province string, zone int) (*domain.Constituency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.constituencies {
		if c.Province == province && c.ZoneNumber == zone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memConstituencies) sorted() []*domain.Constituency {
	all := make([]*domain.Constituency, 0, len(r.constituencies))
	for _, c := range r.constituencies {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Province != all[j].Province {
			return all[i].Province < all[j].Province
		}
		return all[i].ZoneNumber < all[j].ZoneNumber
	})
	return all
}

func (r memConstituencies) List(_ context.Context, page domain.Page, province string) ([]*domain.Constituency, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Constituency
	for _, c := range r.sorted() {
		if province == "" || c.Province == province {
			all = append(all, c)
		}
	}
	return paginate(all, page), int64(len(all)), nil
}

func (r memConstituencies) ListAll(_ context.Context) ([]*domain.Constituency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r memConstituencies) SetPollStatus(_ context.Context, id int64, open bool) (*domain.Constituency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.constituencies[id]
	if !ok {
		return nil, nil
	}
	c.IsPollOpen = open
	cp := *c
	return &cp, nil
}

func (r memConstituencies) SetAllPollStatus(_ context.Context, open bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.constituencies {
		if c.IsPollOpen != open {
			c.IsPollOpen = open
			n++
		}
	}
	return n, nil
}

func (r memConstituencies) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.constituencies[id]
	delete(r.constituencies, id)
	return ok, nil
}

func (r memConstituencies) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.constituencies)), nil
}

func (r memConstituencies) CountClosed(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.constituencies {
		if !c.IsPollOpen {
			n++
		}
	}
	return n, nil
}

type memParties struct{ *memStore }

func (r memParties) Create(_ context.Context, p *domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.parties {
		if other.Name == p.Name {
			return domain.ErrPartyExists
		}
	}
	p.ID = r.nextID()
	cp := *p
	r.parties[p.ID] = &cp
	return nil
}

func (r memParties) GetByID(_ context.Context, id int64) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parties[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r memParties) GetByName(_ context.Context, name string) (*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.parties {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memParties) sorted() []*domain.Party {
	all := make([]*domain.Party, 0, len(r.parties))
	for _, p := range r.parties {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func (r memParties) List(_ context.Context, page domain.Page) ([]*domain.Party, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted()
	return paginate(all, page), int64(len(all)), nil
}

func (r memParties) ListAll(_ context.Context) ([]*domain.Party, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r memParties) Update(_ context.Context, p *domain.Party) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.parties[p.ID] = &cp
	return nil
}

func (r memParties) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.parties[id]; !ok {
		return false, nil
	}
	for _, c := range r.candidates {
		if c.PartyID == id {
			return false, domain.ErrPartyInUse
		}
	}
	delete(r.parties, id)
	return true, nil
}

func (r memParties) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.parties)), nil
}

type memCandidates struct{ *memStore }

func (r memCandidates) Create(_ context.Context, c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID()
	cp := *c
	cp.Party, cp.Constituency = nil, nil
	r.candidates[c.ID] = &cp
	return nil
}

func (r memCandidates) GetByID(_ context.Context, id int64) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.candidates[id]; ok {
		return r.withParty(c), nil
	}
	return nil, nil
}

func (r memCandidates) withParty(c *domain.Candidate) *domain.Candidate {
	cp := *c
	if p, ok := r.parties[c.PartyID]; ok {
		pc := *p
		cp.Party = &pc
	}
	return &cp
}

func (r memCandidates) sorted(match func(*domain.Candidate) bool) []*domain.Candidate {
	var all []*domain.Candidate
	for _, c := range r.candidates {
		if match(c) {
			all = append(all, r.withParty(c))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ConstituencyID != all[j].ConstituencyID {
			return all[i].ConstituencyID < all[j].ConstituencyID
		}
		return all[i].CandidateNumber < all[j].CandidateNumber
	})
	return all
}

func (r memCandidates) List(_ context.Context, page domain.Page, f ports.CandidateFilter) ([]*domain.Candidate, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(c *domain.Candidate) bool {
		return (f.ConstituencyID == nil || c.ConstituencyID == *f.ConstituencyID) &&
			(f.PartyID == nil || c.PartyID == *f.PartyID)
	})
	return paginate(all, page), int64(len(all)), nil
}

func (r memCandidates) ListWithParty(_ context.Context, constituencyID *int64) ([]*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(c *domain.Candidate) bool {
		return constituencyID == nil || c.ConstituencyID == *constituencyID
	}), nil
}

func (r memCandidates) Update(_ context.Context, c *domain.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Party, cp.Constituency = nil, nil
	r.candidates[c.ID] = &cp
	return nil
}

func (r memCandidates) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.candidates[id]
	delete(r.candidates, id)
	return ok, nil
}

func (r memCandidates) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.candidates)), nil
}

type memVotes struct{ *memStore }

func (r memVotes) GetByVoterAndConstituency(_ context.Context, voterID uuid.UUID, constituencyID int64) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.votes[voteKey{voterID, constituencyID}]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r memVotes) Insert(_ context.Context, v *domain.Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := voteKey{v.VoterID, v.ConstituencyID}
	if _, ok := r.votes[key]; ok {
		return domain.ErrBallotExists
	}
	v.ID = r.nextID()
	cp := *v
	cp.Candidate = nil
	r.votes[key] = &cp
	return nil
}

func (r memVotes) UpdateCandidate(_ context.Context, voterID uuid.UUID, constituencyID, candidateID int64, at time.Time) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.votes[voteKey{voterID, constituencyID}]
	if !ok {
		return nil, nil
	}
	v.CandidateID = candidateID
	v.CastAt = at
	cp := *v
	return &cp, nil
}

func (r memVotes) CountByCandidate(_ context.Context, constituencyID *int64) (map[int64]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[int64]int64{}
	for _, v := range r.votes {
		if constituencyID == nil || v.ConstituencyID == *constituencyID {
			counts[v.CandidateID]++
		}
	}
	return counts, nil
}

func (r memVotes) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.votes)), nil
}

func (r memVotes) CountDistinctVoters(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	voters := map[uuid.UUID]struct{}{}
	for k := range r.votes {
		voters[k.voter] = struct{}{}
	}
	return int64(len(voters)), nil
}

func (r memVotes) rows() []domain.Vote {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Vote, 0, len(r.votes))
	for _, v := range r.votes {
		out = append(out, *v)
	}
	return out
}

type memTokens struct{ *memStore }

func (r memTokens) StoreRefreshToken(_ context.Context, t *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.New()
	cp := *t
	r.tokens[t.ID] = &cp
	return nil
}

func (r memTokens) GetRefreshTokenByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memTokens) RevokeRefreshToken(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[uuid.MustParse(id)]; ok {
		t.Revoked = true
	}
	return nil
}

func (r memTokens) DeleteExpiredRefreshTokens(_ context.Context, profileID uuid.UUID, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tokens {
		if t.ProfileID == profileID && (t.Revoked || t.ExpiresAt.Before(before)) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

// fixture seeds a small election through the repositories.
type fixture struct {
	store          *memStore
	profiles       memProfiles
	constituencies memConstituencies
	parties        memParties
	candidates     memCandidates
	votes          memVotes
	tokens         memTokens
}

func newFixture() *fixture {
	s := newMemStore()
	return &fixture{
		store:          s,
		profiles:       memProfiles{s},
		constituencies: memConstituencies{s},
		parties:        memParties{s},
		candidates:     memCandidates{s},
		votes:          memVotes{s},
		tokens:         memTokens{s},
	}
}

func (f *fixture) constituency(province string, zone int, open bool) *domain.Constituency {
	c := &domain.Constituency{Province: province, ZoneNumber: zone, IsPollOpen: open}
	if err := f.constituencies.Create(context.Background(), c); err != nil {
		panic(err)
	}
	return c
}

func (f *fixture) party(name string) *domain.Party {
	p := &domain.Party{Name: name, Color: domain.DefaultPartyColor}
	if err := f.parties.Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

func (f *fixture) candidate(first string, number int, party *domain.Party, c *domain.Constituency) *domain.Candidate {
	cand := &domain.Candidate{
		FirstName:       first,
		LastName:        "Test",
		CandidateNumber: number,
		PartyID:         party.ID,
		ConstituencyID:  c.ID,
	}
	if err := f.candidates.Create(context.Background(), cand); err != nil {
		panic(err)
	}
	return cand
}

func (f *fixture) voter(constituency *domain.Constituency) *domain.Profile {
	id := uuid.New()
	p := &domain.Profile{
		Email:      id.String() + "@example.com",
		NationalID: id.String()[:13],
		FullName:   "Voter " + id.String()[:8],
		Role:       domain.RoleVoter,
	}
	if constituency != nil {
		p.ConstituencyID = &constituency.ID
	}
	if err := f.profiles.Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

// ballot writes a vote row directly, bypassing the service checks.
func (f *fixture) ballot(voter *domain.Profile, cand *domain.Candidate) {
	v := &domain.Vote{VoterID: voter.ID, CandidateID: cand.ID, ConstituencyID: cand.ConstituencyID, CastAt: time.Now()}
	if err := f.votes.Insert(context.Background(), v); err != nil {
		panic(err)
	}
}
