package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleEC    Role = "ec"
	RoleVoter Role = "voter"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEC, RoleVoter:
		return true
	}
	return false
}

type Profile struct {
	ID             uuid.UUID     `json:"id"`
	Email          string        `json:"email"`
	PasswordHash   string        `json:"-"`
	NationalID     string        `json:"nationalId"`
	FullName       string        `json:"fullName"`
	Address        string        `json:"address"`
	Role           Role          `json:"role"`
	ConstituencyID *int64        `json:"constituencyId"`
	Constituency   *Constituency `json:"constituency,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Identity is what a verified access token asserts about its bearer.
type Identity struct {
	ProfileID uuid.UUID
	Email     string
	Role      Role
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is returned by every successful sign-in.
type Session struct {
	AccessToken  string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	Profile      *Profile `json:"user"`
}
