package ports

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type ConstituencyRepository interface {
	Create(ctx context.Context, c *domain.Constituency) error
	GetByID(ctx context.Context, id int64) (*domain.Constituency, error)
	GetByProvinceAndZone(ctx context.Context, province string, zone int) (*domain.Constituency, error)
	List(ctx context.Context, page domain.Page, province string) ([]*domain.Constituency, int64, error)
	ListAll(ctx context.Context) ([]*domain.Constituency, error)
	SetPollStatus(ctx context.Context, id int64, open bool) (*domain.Constituency, error)
	SetAllPollStatus(ctx context.Context, open bool) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountClosed(ctx context.Context) (int64, error)
}

type CreateConstituencyInput struct {
	Province   string
	ZoneNumber int
}

type ConstituencyService interface {
	List(ctx context.Context, page domain.Page, province string) (*domain.Paged[*domain.Constituency], error)
	Get(ctx context.Context, id int64) (*domain.Constituency, error)
	Create(ctx context.Context, input CreateConstituencyInput) (*domain.Constituency, error)
	SetPollStatus(ctx context.Context, id int64, open bool) (*domain.Constituency, error)
	OpenAll(ctx context.Context) (int64, error)
	CloseAll(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type PartyRepository interface {
	Create(ctx context.Context, p *domain.Party) error
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
	GetByName(ctx context.Context, name string) (*domain.Party, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Party, int64, error)
	ListAll(ctx context.Context) ([]*domain.Party, error)
	Update(ctx context.Context, p *domain.Party) error
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type CreatePartyInput struct {
	Name    string
	LogoURL string
	Policy  string
	Color   string
}

// UpdatePartyInput leaves nil fields untouched.
type UpdatePartyInput struct {
	Name    *string
	LogoURL *string
	Policy  *string
	Color   *string
}

type PartyService interface {
	List(ctx context.Context, page domain.Page) (*domain.Paged[*domain.Party], error)
	Get(ctx context.Context, id int64) (*domain.Party, error)
	Create(ctx context.Context, input CreatePartyInput) (*domain.Party, error)
	Update(ctx context.Context, id int64, input UpdatePartyInput) (*domain.Party, error)
	Delete(ctx context.Context, id int64) error
}

type CandidateFilter struct {
	ConstituencyID *int64
	PartyID        *int64
}

type CandidateRepository interface {
	Create(ctx context.Context, c *domain.Candidate) error
	GetByID(ctx context.Context, id int64) (*domain.Candidate, error)
	List(ctx context.Context, page domain.Page, filter CandidateFilter) ([]*domain.Candidate, int64, error)
	// ListWithParty returns candidates with their party loaded, ordered by
	// constituency then candidate number. A nil constituencyID means all.
	ListWithParty(ctx context.Context, constituencyID *int64) ([]*domain.Candidate, error)
	Update(ctx context.Context, c *domain.Candidate) error
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type CreateCandidateInput struct {
	FirstName       string
	LastName        string
	CandidateNumber int
	ImageURL        string
	PersonalPolicy  string
	PartyID         int64
	ConstituencyID  int64
	NationalID      string
}

type UpdateCandidateInput struct {
	FirstName       *string
	LastName        *string
	CandidateNumber *int
	ImageURL        *string
	PersonalPolicy  *string
	PartyID         *int64
}

type CandidateService interface {
	List(ctx context.Context, page domain.Page, filter CandidateFilter) (*domain.Paged[*domain.Candidate], error)
	ListByConstituency(ctx context.Context, constituencyID int64) ([]*domain.Candidate, error)
	Get(ctx context.Context, id int64) (*domain.Candidate, error)
	Create(ctx context.Context, input CreateCandidateInput) (*domain.Candidate, error)
	Update(ctx context.Context, id int64, input UpdateCandidateInput) (*domain.Candidate, error)
	Delete(ctx context.Context, id int64) error
}
