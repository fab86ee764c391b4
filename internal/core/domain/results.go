package domain

type CandidateResult struct {
	CandidateID     int64  `json:"candidateId"`
	CandidateName   string `json:"candidateName"`
	CandidateNumber int    `json:"candidateNumber"`
	PartyID         int64  `json:"partyId"`
	PartyName       string `json:"partyName"`
	PartyColor      string `json:"partyColor"`
	VoteCount       int64  `json:"voteCount"`
}

// ConstituencyResult ranks every candidate of a constituency by votes,
// highest first. Candidates with equal counts keep their ballot-number order.
type ConstituencyResult struct {
	ConstituencyID int64             `json:"constituencyId"`
	Province       string            `json:"province"`
	ZoneNumber     int               `json:"zoneNumber"`
	IsPollOpen     bool              `json:"isPollOpen"`
	Candidates     []CandidateResult `json:"candidates"`
	TotalVotes     int64             `json:"totalVotes"`
}

type AllResults struct {
	Constituencies []ConstituencyResult `json:"constituencies"`
	TotalVotes     int64                `json:"totalVotes"`
}

type PartySeats struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
	Color   string `json:"color"`
	Seats   int    `json:"seats"`
}

type DashboardStats struct {
	TotalVotes       int64        `json:"totalVotes"`
	TotalVoters      int64        `json:"totalVoters"`
	Turnout          float64      `json:"turnout"`
	CountingProgress float64      `json:"countingProgress"`
	PartyStats       []PartySeats `json:"partyStats"`
}

type AdminStats struct {
	TotalVoters         int64 `json:"totalVoters"`
	TotalConstituencies int64 `json:"totalConstituencies"`
	TotalOfficers       int64 `json:"totalOfficers"`
	VoterChange         int64 `json:"voterChange"`
}

type ECStats struct {
	TotalParties    int64   `json:"totalParties"`
	TotalCandidates int64   `json:"totalCandidates"`
	VotedCount      int64   `json:"votedCount"`
	VotedPercentage float64 `json:"votedPercentage"`
}
