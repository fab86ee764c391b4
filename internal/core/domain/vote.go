package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a voter's single live ballot in a constituency. It is changed in
// place, never duplicated.
type Vote struct {
	ID             int64      `json:"id"`
	VoterID        uuid.UUID  `json:"voterId"`
	CandidateID    int64      `json:"candidateId"`
	ConstituencyID int64      `json:"constituencyId"`
	CastAt         time.Time  `json:"timestamp"`
	Candidate      *Candidate `json:"candidate,omitempty"`
}

// BallotOutcome tells whether a cast created a new ballot or moved an
// existing one to another candidate.
type BallotOutcome string

const (
	BallotCast    BallotOutcome = "cast"
	BallotChanged BallotOutcome = "changed"
)
