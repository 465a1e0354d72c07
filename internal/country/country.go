package country

import (
	"time"

	countryDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/country"
)

type Country struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ISO3      string    `json:"iso3"`
	ISO2      *string   `json:"iso2,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Country) ToResponse() CountryResponse {
	return CountryResponse{
		ID:   c.ID,
		Name: c.Name,
		ISO3: c.ISO3,
		ISO2: c.ISO2,
	}
}

func (c *Country) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

func (c *Country) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

func ToDataModel(c *Country) *countryDatamodel.Country {
	return &countryDatamodel.Country{
		ID:        c.ID,
		Name:      c.Name,
		ISO3:      c.ISO3,
		ISO2:      c.ISO2,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *countryDatamodel.Country) *Country {
	return &Country{
		ID:        c.ID,
		Name:      c.Name,
		ISO3:      c.ISO3,
		ISO2:      c.ISO2,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
