package application

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/evisarw/visa-management/internal/auth"
	"github.com/evisarw/visa-management/internal/transport"
)

// DocumentGeneratorAPI renders the printable visa document for an
// approved application.
type DocumentGeneratorAPI interface {
	VisaPDF(app *VisaApplication) ([]byte, error)
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	Documents DocumentGeneratorAPI
}

func NewHandler(logger *slog.Logger, service ServiceAPI, documents DocumentGeneratorAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Service:     service,
		Documents:   documents,
	}
}

// SubmitApplication handles the public visa application form. When the
// caller is authenticated the application is linked to their account.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var dto SubmitApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var userID *int64
	if user, ok := auth.UserFromContext(r.Context()); ok {
		userID = &user.ID
	}

	app, err := h.Service.Submit(&dto, userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, app)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	app, err := h.Service.GetApplication(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	page, pageSize := transport.ParsePagination(r)
	filter := ListApplicationsFilter{
		Status:      r.URL.Query().Get("status"),
		Nationality: r.URL.Query().Get("nationality"),
		Search:      r.URL.Query().Get("search"),
		Page:        page,
		PageSize:    pageSize,
	}

	apps, total, err := h.Service.ListApplications(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.NewPagedResponse(apps, page, pageSize, total))
}

func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto UpdateApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.Service.UpdateApplication(id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	app, err := h.Service.ApproveApplication(id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) RejectApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto RejectApplicationDTO
	if r.Body != nil {
		// Reason is optional; an empty body means the default reason.
		_ = json.NewDecoder(r.Body).Decode(&dto)
	}

	app, err := h.Service.RejectApplication(id, dto.Reason)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteApplication(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// VerifyApplication is the public endpoint behind the document QR code.
func (h *Handler) VerifyApplication(w http.ResponseWriter, r *http.Request) {
	referenceNumber := chi.URLParam(r, "referenceNumber")
	if referenceNumber == "" {
		h.WriteError(w, http.StatusBadRequest, "reference number is required")
		return
	}

	result, err := h.Service.VerifyByReference(referenceNumber)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// DownloadDocument streams the visa PDF for an approved application.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	app, err := h.Service.GetApplication(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	pdf, err := h.Documents.VisaPDF(app)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=visa-%s.pdf", app.ReferenceNumber))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.Logger.Error("failed to write document response", "error", err)
	}
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid application ID")
		return 0, false
	}
	return id, true
}
