package http

import (
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type StatsHandler struct {
	results ports.ResultService
	stats   ports.StatsService
	logger  *slog.Logger
}

func NewStatsHandler(results ports.ResultService, stats ports.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{results: results, stats: stats, logger: resolveLogger(logger)}
}

// Results godoc
// @Summary      Election results
// @Description  Ranked results for one constituency, or for all of them when constituencyId is omitted. An unknown constituency answers without data.
// @Tags         public
// @Produce      json
// @Param        constituencyId  query     int  false  "constituency id"
// @Success      200             {object}  envelope{data=domain.AllResults}
// @Failure      400             {object}  envelope
// @Router       /public/results [get]
func (h *StatsHandler) Results(w http.ResponseWriter, r *http.Request) {
	constituencyID, err := optionalInt64Query(r, "constituencyId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if constituencyID != nil {
		result, err := h.results.ResultsForConstituency(r.Context(), *constituencyID)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		if result == nil {
			writeData(w, h.logger, http.StatusOK, nil)
			return
		}
		writeData(w, h.logger, http.StatusOK, result)
		return
	}

	all, err := h.results.AllResults(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, all)
}

// Dashboard godoc
// @Summary      Public dashboard
// @Description  Turnout, counting progress and seats per party.
// @Tags         public
// @Produce      json
// @Success      200  {object}  envelope{data=domain.DashboardStats}
// @Router       /public/stats [get]
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.results.DashboardStats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, stats)
}

// Admin godoc
// @Summary      Admin counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.AdminStats}
// @Router       /admin/stats [get]
func (h *StatsHandler) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.AdminStats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, stats)
}

// EC godoc
// @Summary      Election commission counters
// @Tags         ec
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.ECStats}
// @Router       /ec/stats [get]
func (h *StatsHandler) EC(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ECStats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, stats)
}
