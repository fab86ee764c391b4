package domain

import "errors"

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalidState ErrorKind = "invalid_state"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindInternal     ErrorKind = "internal"
)

// Error is the failure type every service returns. Message is safe to show
// to the caller as-is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error   { return NewError(KindValidation, message) }
func NotFound(message string) *Error     { return NewError(KindNotFound, message) }
func Conflict(message string) *Error     { return NewError(KindConflict, message) }
func InvalidState(message string) *Error { return NewError(KindInvalidState, message) }

// KindOf reports the kind of err, or KindInternal for anything that is not a
// *Error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrConstituencyNotFound       = NotFound("constituency not found")
	ErrConstituencyExists         = Conflict("constituency already exists")
	ErrPollClosed                 = InvalidState("the poll for this constituency is closed")
	ErrCandidateNotFound          = NotFound("candidate not found")
	ErrCandidateNotInConstituency = InvalidState("candidate is not running in your constituency")
	ErrCandidateIsOfficer         = InvalidState("election commission officers cannot run as candidates")
	ErrBallotExists               = Conflict("a ballot already exists for this voter in this constituency")
	ErrNotVoted                   = InvalidState("you have not voted yet")
	ErrNoConstituency             = Validation("you are not registered to a constituency")
	ErrPartyNotFound              = NotFound("party not found")
	ErrPartyExists                = Conflict("a party with this name already exists")
	ErrPartyInUse                 = Conflict("party still has registered candidates")
	ErrProfileNotFound            = NotFound("user not found")
	ErrEmailTaken                 = Conflict("email is already in use")
	ErrNationalIDTaken            = Conflict("national id is already in use")
	ErrInvalidRole                = Validation("invalid role")
	ErrInvalidCredentials         = NewError(KindUnauthorized, "invalid email or password")
	ErrUnauthenticated            = NewError(KindUnauthorized, "please sign in")
	ErrInvalidToken               = NewError(KindUnauthorized, "token is invalid or expired")
	ErrForbidden                  = NewError(KindForbidden, "you do not have access to this resource")
	ErrGoogleSignInDisabled       = Validation("google sign-in is not enabled")
	ErrInternal                   = NewError(KindInternal, "internal server error")
)
