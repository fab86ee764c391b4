package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type ConstituencyHandler struct {
	service ports.ConstituencyService
	metrics *Metrics
	logger  *slog.Logger
}

func NewConstituencyHandler(service ports.ConstituencyService, metrics *Metrics, logger *slog.Logger) *ConstituencyHandler {
	return &ConstituencyHandler{service: service, metrics: metrics, logger: resolveLogger(logger)}
}

type createConstituencyRequest struct {
	Province   string `json:"province" validate:"required"`
	ZoneNumber int    `json:"zoneNumber" validate:"required,min=1"`
}

type pollStatusRequest struct {
	IsPollOpen *bool `json:"isPollOpen" validate:"required"`
}

type bulkPollResponse struct {
	Affected int64 `json:"affected"`
}

// List godoc
// @Summary      Lists constituencies
// @Description  Ordered by province then zone. Served to admins, the EC control panel and the public.
// @Tags         constituencies
// @Produce      json
// @Param        page      query     int     false  "page"
// @Param        limit     query     int     false  "page size"
// @Param        province  query     string  false  "province filter"
// @Success      200       {object}  envelope{data=[]domain.Constituency}
// @Router       /public/constituencies [get]
func (h *ConstituencyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), parsePage(r), r.URL.Query().Get("province"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writePage(w, h.logger, page)
}

// Create godoc
// @Summary      Creates a constituency
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createConstituencyRequest  true  "constituency"
// @Success      201   {object}  envelope{data=domain.Constituency}
// @Failure      400   {object}  envelope
// @Router       /admin/constituencies [post]
func (h *ConstituencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createConstituencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.service.Create(r.Context(), ports.CreateConstituencyInput{
		Province:   req.Province,
		ZoneNumber: req.ZoneNumber,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusCreated, c, "constituency created")
}

// Delete godoc
// @Summary      Deletes a constituency
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "constituency id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /admin/constituencies/{id} [delete]
func (h *ConstituencyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusOK, nil, "constituency deleted")
}

// SetPollStatus godoc
// @Summary      Opens or closes one poll
// @Tags         ec
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "constituency id"
// @Param        body  body      pollStatusRequest  true  "status"
// @Success      200   {object}  envelope{data=domain.Constituency}
// @Router       /ec/control/{id} [patch]
func (h *ConstituencyHandler) SetPollStatus(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	var req pollStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.service.SetPollStatus(r.Context(), id, *req.IsPollOpen)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.metrics.pollStatusChanged(pollAction(*req.IsPollOpen))
	writeData(w, h.logger, http.StatusOK, c)
}

// OpenAll godoc
// @Summary      Opens every poll
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=bulkPollResponse}
// @Router       /ec/control/open-all [post]
func (h *ConstituencyHandler) OpenAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.OpenAll(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.metrics.pollStatusChanged("open_all")
	writeMessage(w, h.logger, http.StatusOK, bulkPollResponse{Affected: n}, "all polls opened")
}

// CloseAll godoc
// @Summary      Closes every poll
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=bulkPollResponse}
// @Router       /ec/control/close-all [post]
func (h *ConstituencyHandler) CloseAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.CloseAll(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.metrics.pollStatusChanged("close_all")
	writeMessage(w, h.logger, http.StatusOK, bulkPollResponse{Affected: n}, "all polls closed")
}

func pollAction(open bool) string {
	if open {
		return "open"
	}
	return "close"
}
