package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type CandidateHandler struct {
	service ports.CandidateService
	logger  *slog.Logger
}

func NewCandidateHandler(service ports.CandidateService, logger *slog.Logger) *CandidateHandler {
	return &CandidateHandler{service: service, logger: resolveLogger(logger)}
}

type createCandidateRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	CandidateNumber int    `json:"candidateNumber" validate:"required,min=1"`
	ImageURL        string `json:"imageUrl" validate:"omitempty,url"`
	PersonalPolicy  string `json:"personalPolicy"`
	PartyID         int64  `json:"partyId" validate:"required,min=1"`
	ConstituencyID  int64  `json:"constituencyId" validate:"required,min=1"`
	NationalID      string `json:"nationalId" validate:"required,len=13,numeric"`
}

type updateCandidateRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,min=1"`
	LastName        *string `json:"lastName" validate:"omitempty,min=1"`
	CandidateNumber *int    `json:"candidateNumber" validate:"omitempty,min=1"`
	ImageURL        *string `json:"imageUrl"`
	PersonalPolicy  *string `json:"personalPolicy"`
	PartyID         *int64  `json:"partyId" validate:"omitempty,min=1"`
}

// List godoc
// @Summary      Lists candidates
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Param        page            query     int  false  "page"
// @Param        limit           query     int  false  "page size"
// @Param        constituencyId  query     int  false  "constituency filter"
// @Param        partyId         query     int  false  "party filter"
// @Success      200             {object}  envelope{data=[]domain.Candidate}
// @Router       /ec/candidates [get]
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	constituencyID, err := optionalInt64Query(r, "constituencyId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	partyID, err := optionalInt64Query(r, "partyId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	page, err := h.service.List(r.Context(), parsePage(r), ports.CandidateFilter{
		ConstituencyID: constituencyID,
		PartyID:        partyID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writePage(w, h.logger, page)
}

// Get godoc
// @Summary      Gets a candidate
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "candidate id"
// @Success      200  {object}  envelope{data=domain.Candidate}
// @Failure      404  {object}  envelope
// @Router       /ec/candidates/{id} [get]
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, c)
}

// Create godoc
// @Summary      Registers a candidate
// @Description  Election commission officers cannot be registered as candidates.
// @Tags         ec
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCandidateRequest  true  "candidate"
// @Success      201   {object}  envelope{data=domain.Candidate}
// @Failure      400   {object}  envelope
// @Router       /ec/candidates [post]
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCandidateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.service.Create(r.Context(), ports.CreateCandidateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		CandidateNumber: req.CandidateNumber,
		ImageURL:        req.ImageURL,
		PersonalPolicy:  req.PersonalPolicy,
		PartyID:         req.PartyID,
		ConstituencyID:  req.ConstituencyID,
		NationalID:      req.NationalID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusCreated, c, "candidate registered")
}

// Update godoc
// @Summary      Updates a candidate
// @Tags         ec
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "candidate id"
// @Param        body  body      updateCandidateRequest  true  "changes"
// @Success      200   {object}  envelope{data=domain.Candidate}
// @Router       /ec/candidates/{id} [put]
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req updateCandidateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.service.Update(r.Context(), id, ports.UpdateCandidateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		CandidateNumber: req.CandidateNumber,
		ImageURL:        req.ImageURL,
		PersonalPolicy:  req.PersonalPolicy,
		PartyID:         req.PartyID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusOK, c, "candidate updated")
}

// Delete godoc
// @Summary      Deletes a candidate
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "candidate id"
// @Success      200  {object}  envelope
// @Router       /ec/candidates/{id} [delete]
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusOK, nil, "candidate deleted")
}
