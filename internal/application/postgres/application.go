package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/evisarw/visa-management/internal/application"
	applicationDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/application"
	arrivalDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/arrival"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) application.RepositoryAPI {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(app *applicationDatamodel.VisaApplication) error {
	if err := r.db.Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			return application.ErrDuplicateReference
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetByID(id int64) (*applicationDatamodel.VisaApplication, error) {
	var app applicationDatamodel.VisaApplication
	err := r.db.Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByReference(referenceNumber string) (*applicationDatamodel.VisaApplication, error) {
	var app applicationDatamodel.VisaApplication
	err := r.db.Where("reference_number = ?", referenceNumber).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) Update(app *applicationDatamodel.VisaApplication) error {
	return r.db.Save(app).Error
}

func (r *ApplicationRepository) List(filter application.ListApplicationsFilter) ([]*applicationDatamodel.VisaApplication, int64, error) {
	query := r.db.Model(&applicationDatamodel.VisaApplication{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Nationality != "" {
		query = query.Where("nationality = ?", filter.Nationality)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(passport_number) LIKE ? OR LOWER(reference_number) LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	var apps []*applicationDatamodel.VisaApplication
	err := query.Order("applied_at DESC").Limit(filter.PageSize).Offset(offset).Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// ApproveAndCreateArrival writes the status change and the arrival ledger
// record in one transaction so an approved application always has a record.
func (r *ApplicationRepository) ApproveAndCreateArrival(app *applicationDatamodel.VisaApplication, approvedBy int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(app).Error; err != nil {
			return err
		}
		record := &arrivalDatamodel.ArrivalRecord{
			VisaApplicationID: app.ID,
			EntryStatus:       arrivalDatamodel.EntryStatusPending,
			ApprovedBy:        approvedBy,
		}
		return tx.Create(record).Error
	})
}

// Delete removes the application and its arrival record together. The FK
// cascade covers production postgres; the explicit delete keeps sqlite
// test databases consistent too.
func (r *ApplicationRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("visa_application_id = ?", id).Delete(&arrivalDatamodel.ArrivalRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("visa_application_id = ?", id).Delete(&applicationDatamodel.UserApplication{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&applicationDatamodel.VisaApplication{}).Error
	})
}

func (r *ApplicationRepository) ArrivalDates(applicationID int64) (*time.Time, *time.Time, error) {
	var record arrivalDatamodel.ArrivalRecord
	err := r.db.Where("visa_application_id = ?", applicationID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return record.ActualArrivalDate, record.ActualDepartureDate, nil
}

func (r *ApplicationRepository) LinkUserApplication(userID, applicationID int64) error {
	link := &applicationDatamodel.UserApplication{
		UserID:            userID,
		VisaApplicationID: applicationID,
	}
	return r.db.Create(link).Error
}

// isUniqueViolation matches unique constraint errors from both postgres
// and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
