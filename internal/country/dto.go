package country

import (
	"strings"

	"github.com/evisarw/visa-management/internal"
)

// CountryResponse is the public shape shown in the application form's
// nationality selector.
type CountryResponse struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	ISO3 string  `json:"iso3"`
	ISO2 *string `json:"iso2,omitempty"`
}

type CountriesResponse struct {
	Countries []CountryResponse `json:"countries"`
}

type UpsertCountryDTO struct {
	Name string  `json:"name"`
	ISO3 string  `json:"iso3"`
	ISO2 *string `json:"iso2,omitempty"`
}

func (dto UpsertCountryDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.ISO3) != 3 {
		return internal.NewValidationFieldError("iso3", "iso3 must be a 3-letter code", internal.ErrCodeValidationFailed)
	}
	if dto.ISO2 != nil && len(*dto.ISO2) != 2 {
		return internal.NewValidationFieldError("iso2", "iso2 must be a 2-letter code", internal.ErrCodeValidationFailed)
	}
	return nil
}

// Normalized returns a copy with the codes upper-cased.
func (dto UpsertCountryDTO) Normalized() UpsertCountryDTO {
	out := dto
	out.ISO3 = strings.ToUpper(dto.ISO3)
	if dto.ISO2 != nil {
		iso2 := strings.ToUpper(*dto.ISO2)
		out.ISO2 = &iso2
	}
	return out
}
