package country

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/evisarw/visa-management/internal/transport"
)

type ServiceAPI interface {
	GetActiveCountries() ([]CountryResponse, error)
	GetAll() ([]*Country, error)
	GetByID(id int64) (*Country, error)
	IsValidNationality(name string) bool
	Create(dto UpsertCountryDTO) (*Country, error)
	Update(id int64, dto UpsertCountryDTO) (*Country, error)
	SetActive(id int64, active bool) (*Country, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetCountries is the public endpoint feeding the application form's
// nationality selector; only active countries are listed.
func (h *Handler) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Service.GetActiveCountries()
	if err != nil {
		h.Logger.Error("GetCountries: failed to get countries", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get countries")
		return
	}

	h.WriteJSON(w, http.StatusOK, CountriesResponse{Countries: countries})
}

// GetAllCountries is the admin view including inactive entries.
func (h *Handler) GetAllCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetAllCountries: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get countries")
		return
	}

	h.WriteJSON(w, http.StatusOK, countries)
}

func (h *Handler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var dto UpsertCountryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateCountry: service error", "error", err, "name", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCountry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid country ID")
		return
	}

	var dto UpsertCountryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateCountry: service error", "error", err, "country_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) ActivateCountry(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) DeactivateCountry(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid country ID")
		return
	}

	c, err := h.Service.SetActive(id, active)
	if err != nil {
		h.Logger.Error("setActive: service error", "error", err, "country_id", id, "active", active)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}
