package permission

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/evisarw/visa-management/internal/auth"
	"github.com/evisarw/visa-management/internal/transport"
	"github.com/evisarw/visa-management/pkg/logger"
)

type ServiceAPI interface {
	Grant(userID int64, name string, grantedBy *int64) error
	Revoke(userID int64, name string) error
	ListPermissions(userID int64) ([]string, error)
	ListAll() ([]*Permission, error)
	Create(dto CreatePermissionDTO) (*Permission, error)
	Deactivate(name string) error
	Activate(name string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, perms)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perm, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "name", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, perm)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.Service.Deactivate(name); err != nil {
		h.Logger.Error("Deactivate: service error", "error", err, "permission", name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.Service.Activate(name); err != nil {
		h.Logger.Error("Activate: service error", "error", err, "permission", name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

// ListForUser returns the active permission names held by the user.
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	names, err := h.Service.ListPermissions(userID)
	if err != nil {
		h.Logger.Error("ListForUser: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": names})
}

func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var dto GrantPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.Grant(userID, dto.Name, &actor.ID); err != nil {
		h.Logger.Error("Grant: service error", "error", err, "user_id", userID, "permission", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Grant: permission granted", "user_id", userID, "permission", dto.Name, "granted_by", actor.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		h.WriteError(w, http.StatusBadRequest, "permission name is required")
		return
	}

	if err := h.Service.Revoke(userID, name); err != nil {
		h.Logger.Error("Revoke: service error", "error", err, "user_id", userID, "permission", name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}
