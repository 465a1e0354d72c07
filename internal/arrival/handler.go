package arrival

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/evisarw/visa-management/internal/auth"
	"github.com/evisarw/visa-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(logger *slog.Logger, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Service:     service,
	}
}

func (h *Handler) RecordArrival(w http.ResponseWriter, r *http.Request) {
	var dto RecordArrivalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	record, err := h.Service.RecordArrival(&dto, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) RecordDeparture(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto RecordDepartureDTO
	if r.Body != nil {
		// Departure time defaults to now when the body is empty.
		_ = json.NewDecoder(r.Body).Decode(&dto)
	}

	record, err := h.Service.RecordDeparture(id, &dto, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	record, err := h.Service.GetRecord(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page, pageSize := transport.ParsePagination(r)
	filter := ListRecordsFilter{
		EntryStatus: r.URL.Query().Get("entryStatus"),
		Search:      r.URL.Query().Get("search"),
		Page:        page,
		PageSize:    pageSize,
	}

	records, total, err := h.Service.ListRecords(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.NewPagedResponse(records, page, pageSize, total))
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid arrival record ID")
		return 0, false
	}
	return id, true
}
