package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/evisarw/visa-management/internal/application"
	"github.com/evisarw/visa-management/internal/arrival"
	applicationDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/application"
	arrivalDatamodel "github.com/evisarw/visa-management/internal/core/datamodel/arrival"
)

type ArrivalRepository struct {
	db *gorm.DB
}

func NewArrivalRepository(db *gorm.DB) arrival.RepositoryAPI {
	return &ArrivalRepository{db: db}
}

// recordRow is the flat scan target for ledger queries joined with the
// application.
type recordRow struct {
	ID                   int64
	VisaApplicationID    int64
	ReferenceNumber      string
	FirstName            string
	LastName             string
	PassportNumber       string
	Nationality          string
	EntryStatus          string
	ActualArrivalDate    *time.Time
	ActualDepartureDate  *time.Time
	ApprovedBy           int64
	ArrivalProcessedBy   *int64
	DepartureProcessedBy *int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

const recordSelect = `ar.id, ar.visa_application_id, va.reference_number,
	va.first_name, va.last_name, va.passport_number, va.nationality,
	ar.entry_status, ar.actual_arrival_date, ar.actual_departure_date,
	ar.approved_by, ar.arrival_processed_by, ar.departure_processed_by,
	ar.created_at, ar.updated_at`

func (row *recordRow) toDomain() *arrival.ArrivalRecord {
	return &arrival.ArrivalRecord{
		ID:                   row.ID,
		VisaApplicationID:    row.VisaApplicationID,
		ReferenceNumber:      row.ReferenceNumber,
		ApplicantName:        row.FirstName + " " + row.LastName,
		PassportNumber:       row.PassportNumber,
		Nationality:          row.Nationality,
		EntryStatus:          row.EntryStatus,
		ActualArrivalDate:    row.ActualArrivalDate,
		ActualDepartureDate:  row.ActualDepartureDate,
		ApprovedBy:           row.ApprovedBy,
		ArrivalProcessedBy:   row.ArrivalProcessedBy,
		DepartureProcessedBy: row.DepartureProcessedBy,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

func (r *ArrivalRepository) GetByID(id int64) (*arrival.ArrivalRecord, error) {
	var row recordRow
	err := r.db.Table("arrival_records ar").
		Select(recordSelect).
		Joins("JOIN visa_applications va ON va.id = ar.visa_application_id").
		Where("ar.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *ArrivalRepository) GetByApplicationID(applicationID int64) (*arrival.ArrivalRecord, error) {
	var row recordRow
	err := r.db.Table("arrival_records ar").
		Select(recordSelect).
		Joins("JOIN visa_applications va ON va.id = ar.visa_application_id").
		Where("ar.visa_application_id = ?", applicationID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *ArrivalRepository) List(filter arrival.ListRecordsFilter) ([]*arrival.ArrivalRecord, int64, error) {
	query := r.db.Table("arrival_records ar").
		Joins("JOIN visa_applications va ON va.id = ar.visa_application_id")

	if filter.EntryStatus != "" {
		query = query.Where("ar.entry_status = ?", filter.EntryStatus)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(va.reference_number) LIKE ? OR LOWER(va.passport_number) LIKE ? OR LOWER(va.last_name) LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	var rows []recordRow
	err := query.Select(recordSelect).
		Order("ar.updated_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	records := make([]*arrival.ArrivalRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].toDomain()
	}
	return records, total, nil
}

func (r *ArrivalRepository) GetApplicationStatus(applicationID int64) (string, error) {
	var app applicationDatamodel.VisaApplication
	err := r.db.Select("id", "status").Where("id = ?", applicationID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return app.Status, nil
}

// RecordArrival upserts the ledger record for an application and promotes
// a pending application to approved in the same transaction, so a walk-up
// arrival never leaves an approved visa without its record or vice versa.
func (r *ArrivalRepository) RecordArrival(applicationID, officerID int64, arrivedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var app applicationDatamodel.VisaApplication
		if err := tx.Where("id = ?", applicationID).First(&app).Error; err != nil {
			return err
		}

		if app.Status == application.StatusPending {
			now := time.Now()
			app.Status = application.StatusApproved
			app.ProcessedAt = &now
			if err := tx.Save(&app).Error; err != nil {
				return err
			}
		}

		var record arrivalDatamodel.ArrivalRecord
		err := tx.Where("visa_application_id = ?", applicationID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = arrivalDatamodel.ArrivalRecord{
				VisaApplicationID:  applicationID,
				EntryStatus:        arrivalDatamodel.EntryStatusArrived,
				ActualArrivalDate:  &arrivedAt,
				ApprovedBy:         officerID,
				ArrivalProcessedBy: &officerID,
			}
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}

		record.EntryStatus = arrivalDatamodel.EntryStatusArrived
		record.ActualArrivalDate = &arrivedAt
		record.ArrivalProcessedBy = &officerID
		return tx.Save(&record).Error
	})
}

func (r *ArrivalRepository) RecordDeparture(recordID, officerID int64, departedAt time.Time) error {
	return r.db.Model(&arrivalDatamodel.ArrivalRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"entry_status":           arrivalDatamodel.EntryStatusDeparted,
			"actual_departure_date":  departedAt,
			"departure_processed_by": officerID,
		}).Error
}
