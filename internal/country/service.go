package country

import (
	"log/slog"

	"github.com/evisarw/visa-management/internal"
	countryDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/country"
)

type RepositoryAPI interface {
	GetAll() ([]*countryDatamodel.Country, error)
	GetByID(id int64) (*countryDatamodel.Country, error)
	GetByName(name string) (*countryDatamodel.Country, error)
	GetByISO3(iso3 string) (*countryDatamodel.Country, error)
	Create(country *countryDatamodel.Country) error
	Update(country *countryDatamodel.Country) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetActiveCountries returns the countries shown on the public form. The
// active flag gates visibility without deleting reference data.
func (s *Service) GetActiveCountries() ([]CountryResponse, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get countries from repository", "error", err)
		return nil, err
	}

	var responses []CountryResponse
	for _, m := range models {
		c := FromDataModel(m)
		if c.IsActive {
			responses = append(responses, c.ToResponse())
		}
	}

	return responses, nil
}

func (s *Service) GetAll() ([]*Country, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	countries := make([]*Country, len(models))
	for i, m := range models {
		countries[i] = FromDataModel(m)
	}
	return countries, nil
}

func (s *Service) GetByID(id int64) (*Country, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, internal.ErrCountryNotFound
	}
	return FromDataModel(m), nil
}

// IsValidNationality reports whether the name matches an active country.
func (s *Service) IsValidNationality(name string) bool {
	m, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Warn("error checking nationality", "name", name, "error", err)
		return false
	}
	return m != nil && m.IsActive
}

func (s *Service) Create(dto UpsertCountryDTO) (*Country, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	dto = dto.Normalized()

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, internal.ErrCountryExists
	}
	if existing, err := s.repo.GetByISO3(dto.ISO3); err == nil && existing != nil {
		return nil, internal.ErrCountryExists
	}

	m := &countryDatamodel.Country{
		Name:     dto.Name,
		ISO3:     dto.ISO3,
		ISO2:     dto.ISO2,
		IsActive: true,
	}
	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create country", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("country created", "name", m.Name, "iso3", m.ISO3)
	return FromDataModel(m), nil
}

func (s *Service) Update(id int64, dto UpsertCountryDTO) (*Country, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	dto = dto.Normalized()

	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, internal.ErrCountryNotFound
	}

	m.Name = dto.Name
	m.ISO3 = dto.ISO3
	m.ISO2 = dto.ISO2
	if err := s.repo.Update(m); err != nil {
		return nil, err
	}

	return FromDataModel(m), nil
}

func (s *Service) SetActive(id int64, active bool) (*Country, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, internal.ErrCountryNotFound
	}

	c := FromDataModel(m)
	if active {
		c.Activate()
	} else {
		c.Deactivate()
	}

	if err := s.repo.Update(ToDataModel(c)); err != nil {
		return nil, err
	}

	s.logger.Info("country visibility changed", "country_id", id, "is_active", active)
	return c, nil
}
