package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type PartyHandler struct {
	service ports.PartyService
	logger  *slog.Logger
}

func NewPartyHandler(service ports.PartyService, logger *slog.Logger) *PartyHandler {
	return &PartyHandler{service: service, logger: resolveLogger(logger)}
}

type createPartyRequest struct {
	Name    string `json:"name" validate:"required"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
	Policy  string `json:"policy"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
}

type updatePartyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	LogoURL *string `json:"logoUrl"`
	Policy  *string `json:"policy"`
	Color   *string `json:"color" validate:"omitempty,hexcolor"`
}

// List godoc
// @Summary      Lists parties
// @Tags         parties
// @Produce      json
// @Param        page   query     int  false  "page"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  envelope{data=[]domain.Party}
// @Router       /public/parties [get]
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), parsePage(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writePage(w, h.logger, page)
}

// Get godoc
// @Summary      Gets a party
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "party id"
// @Success      200  {object}  envelope{data=domain.Party}
// @Failure      404  {object}  envelope
// @Router       /ec/parties/{id} [get]
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, p)
}

// Create godoc
// @Summary      Registers a party
// @Tags         ec
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPartyRequest  true  "party"
// @Success      201   {object}  envelope{data=domain.Party}
// @Failure      400   {object}  envelope
// @Router       /ec/parties [post]
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPartyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	p, err := h.service.Create(r.Context(), ports.CreatePartyInput{
		Name:    req.Name,
		LogoURL: req.LogoURL,
		Policy:  req.Policy,
		Color:   req.Color,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusCreated, p, "party created")
}

// Update godoc
// @Summary      Updates a party
// @Description  Omitted fields are left unchanged.
// @Tags         ec
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "party id"
// @Param        body  body      updatePartyRequest  true  "changes"
// @Success      200   {object}  envelope{data=domain.Party}
// @Router       /ec/parties/{id} [put]
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req updatePartyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	p, err := h.service.Update(r.Context(), id, ports.UpdatePartyInput{
		Name:    req.Name,
		LogoURL: req.LogoURL,
		Policy:  req.Policy,
		Color:   req.Color,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusOK, p, "party updated")
}

// Delete godoc
// @Summary      Deletes a party
// @Description  Fails while candidates still belong to the party.
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "party id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /ec/parties/{id} [delete]
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusOK, nil, "party deleted")
}
