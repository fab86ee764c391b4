package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// VoteHandler serves the voter area. The voter's constituency always comes
// from their profile, never from the request.
type VoteHandler struct {
	service        ports.VoteService
	auth           ports.AuthService
	constituencies ports.ConstituencyService
	candidates     ports.CandidateService
	metrics        *Metrics
	logger         *slog.Logger
}

func NewVoteHandler(
	service ports.VoteService,
	auth ports.AuthService,
	constituencies ports.ConstituencyService,
	candidates ports.CandidateService,
	metrics *Metrics,
	logger *slog.Logger,
) *VoteHandler {
	return &VoteHandler{
		service:        service,
		auth:           auth,
		constituencies: constituencies,
		candidates:     candidates,
		metrics:        metrics,
		logger:         resolveLogger(logger),
	}
}

type voteRequest struct {
	CandidateID int64 `json:"candidateId" validate:"required,min=1"`
}

// voter loads the caller's profile and the constituency they vote in.
func (h *VoteHandler) voter(ctx context.Context) (*domain.Profile, int64, error) {
	identity, ok := identityFrom(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthenticated
	}
	profile, err := h.auth.Profile(ctx, identity.ProfileID.String())
	if err != nil {
		return nil, 0, err
	}
	if profile.ConstituencyID == nil {
		return nil, 0, domain.ErrNoConstituency
	}
	return profile, *profile.ConstituencyID, nil
}

// Constituency godoc
// @Summary      Returns the voter's constituency
// @Tags         voter
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.Constituency}
// @Failure      400  {object}  envelope
// @Router       /voter/constituency [get]
func (h *VoteHandler) Constituency(w http.ResponseWriter, r *http.Request) {
	_, constituencyID, err := h.voter(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	c, err := h.constituencies.Get(r.Context(), constituencyID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, c)
}

// Candidates godoc
// @Summary      Lists the candidates on the voter's ballot
// @Tags         voter
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Candidate}
// @Router       /voter/candidates [get]
func (h *VoteHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	_, constituencyID, err := h.voter(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	candidates, err := h.candidates.ListByConstituency(r.Context(), constituencyID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if candidates == nil {
		candidates = []*domain.Candidate{}
	}
	writeData(w, h.logger, http.StatusOK, candidates)
}

// MyVote godoc
// @Summary      Returns the voter's current ballot
// @Description  data is omitted when the voter has not voted yet.
// @Tags         voter
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.Vote}
// @Router       /voter/my-vote [get]
func (h *VoteHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	profile, constituencyID, err := h.voter(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	vote, err := h.service.MyVote(r.Context(), profile.ID, constituencyID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if vote == nil {
		writeData(w, h.logger, http.StatusOK, nil)
		return
	}
	writeData(w, h.logger, http.StatusOK, vote)
}

// Cast godoc
// @Summary      Casts or changes the voter's ballot
// @Description  Creates the ballot on first call and moves it to the new candidate afterwards. Both answer 201; the message tells them apart.
// @Tags         voter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      voteRequest  true  "candidate"
// @Success      201   {object}  envelope{data=domain.Vote}
// @Failure      400   {object}  envelope
// @Router       /voter/vote [post]
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, domain.Validation("please choose a candidate"))
		return
	}
	profile, constituencyID, err := h.voter(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	vote, outcome, err := h.service.Cast(r.Context(), ports.VoteInput{
		VoterID:        profile.ID,
		CandidateID:    req.CandidateID,
		ConstituencyID: constituencyID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.metrics.ballotRecorded(outcome)

	message := "vote cast"
	if outcome == domain.BallotChanged {
		message = "vote changed"
	}
	writeMessage(w, h.logger, http.StatusCreated, vote, message)
}

// Change godoc
// @Summary      Changes an existing ballot
// @Tags         voter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      voteRequest  true  "candidate"
// @Success      200   {object}  envelope{data=domain.Vote}
// @Failure      400   {object}  envelope
// @Router       /voter/vote [put]
func (h *VoteHandler) Change(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, domain.Validation("please choose a candidate"))
		return
	}
	profile, constituencyID, err := h.voter(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	vote, err := h.service.Change(r.Context(), ports.VoteInput{
		VoterID:        profile.ID,
		CandidateID:    req.CandidateID,
		ConstituencyID: constituencyID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.metrics.ballotRecorded(domain.BallotChanged)
	writeMessage(w, h.logger, http.StatusOK, vote, "vote changed")
}
