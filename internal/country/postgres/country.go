package postgres

import (
	"gorm.io/gorm"

	"github.com/evisarw/visa-management/internal/country"
	countryDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/country"
)

type CountryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) country.RepositoryAPI {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) GetAll() ([]*countryDatamodel.Country, error) {
	var countries []*countryDatamodel.Country
	err := r.db.Order("name ASC").Find(&countries).Error
	return countries, err
}

func (r *CountryRepository) GetByID(id int64) (*countryDatamodel.Country, error) {
	var c countryDatamodel.Country
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CountryRepository) GetByName(name string) (*countryDatamodel.Country, error) {
	var c countryDatamodel.Country
	err := r.db.Where("name = ?", name).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CountryRepository) GetByISO3(iso3 string) (*countryDatamodel.Country, error) {
	var c countryDatamodel.Country
	err := r.db.Where("iso3 = ?", iso3).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CountryRepository) Create(c *countryDatamodel.Country) error {
	return r.db.Create(c).Error
}

func (r *CountryRepository) Update(c *countryDatamodel.Country) error {
	return r.db.Save(c).Error
}
