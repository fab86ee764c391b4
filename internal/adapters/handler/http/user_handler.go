package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	logger  *slog.Logger
}

func NewUserHandler(service ports.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  resolveLogger(logger),
	}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin ec voter"`
}

type roleResponse struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// List godoc
// @Summary      Lists users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "page"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  envelope{data=[]domain.Profile}
// @Router       /admin/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), parsePage(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writePage(w, h.logger, page)
}

// Get godoc
// @Summary      Gets a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "profile id"
// @Success      200  {object}  envelope{data=domain.Profile}
// @Failure      404  {object}  envelope
// @Router       /admin/users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, user)
}

// GetRole godoc
// @Summary      Gets a user's role
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "profile id"
// @Success      200  {object}  envelope{data=roleResponse}
// @Router       /admin/users/{id}/role [get]
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeData(w, h.logger, http.StatusOK, roleResponse{ID: user.ID.String(), Role: user.Role})
}

// UpdateRole godoc
// @Summary      Changes a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "profile id"
// @Param        body  body      updateRoleRequest  true  "role"
// @Success      200   {object}  envelope{data=domain.Profile}
// @Failure      400   {object}  envelope
// @Router       /admin/users/{id}/role [patch]
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.UpdateRole(r.Context(), chi.URLParam(r, "id"), domain.Role(req.Role))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusOK, user, "role updated")
}

// Delete godoc
// @Summary      Deletes a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "profile id"
// @Success      200  {object}  envelope
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeMessage(w, h.logger, http.StatusOK, nil, "user deleted")
}
