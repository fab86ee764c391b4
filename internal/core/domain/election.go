package domain

import "time"

type Constituency struct {
	ID         int64     `json:"id"`
	Province   string    `json:"province"`
	ZoneNumber int       `json:"zoneNumber"`
	IsPollOpen bool      `json:"isPollOpen"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Party struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logoUrl"`
	Policy    string    `json:"policy"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

const DefaultPartyColor = "#3B82F6"

type Candidate struct {
	ID              int64         `json:"id"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	CandidateNumber int           `json:"candidateNumber"`
	ImageURL        string        `json:"imageUrl"`
	PersonalPolicy  string        `json:"personalPolicy"`
	NationalID      string        `json:"nationalId"`
	PartyID         int64         `json:"partyId"`
	ConstituencyID  int64         `json:"constituencyId"`
	Party           *Party        `json:"party,omitempty"`
	Constituency    *Constituency `json:"constituency,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func (c Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}
