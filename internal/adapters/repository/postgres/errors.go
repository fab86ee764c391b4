package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

const (
	uniqueViolation     = pq.ErrorCode("23505")
	foreignKeyViolation = pq.ErrorCode("23503")
)

// uniqueErrors maps unique constraints to the domain error a violation of
// them means.
var uniqueErrors = map[string]error{
	"votes_voter_constituency_key":     domain.ErrBallotExists,
	"constituencies_province_zone_key": domain.ErrConstituencyExists,
	"profiles_email_key":               domain.ErrEmailTaken,
	"profiles_national_id_key":         domain.ErrNationalIDTaken,
	"parties_name_key":                 domain.ErrPartyExists,
}

// translate turns unique violations into domain errors and passes every other
// error through unchanged.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		if mapped, ok := uniqueErrors[pqErr.Constraint]; ok {
			return mapped
		}
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
