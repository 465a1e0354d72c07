package arrival

import "time"

const (
	EntryStatusPending  = "pending"
	EntryStatusArrived  = "arrived"
	EntryStatusDeparted = "departed"
)

// ArrivalRecord is one-to-one with a visa application (unique FK). The
// application FK cascades on delete; the officer FKs restrict to preserve
// the audit trail.
type ArrivalRecord struct {
	ID                   int64      `gorm:"primaryKey"`
	VisaApplicationID    int64      `gorm:"column:visa_application_id;uniqueIndex;not null"`
	EntryStatus          string     `gorm:"column:entry_status;not null;default:pending"`
	ActualArrivalDate    *time.Time `gorm:"column:actual_arrival_date"`
	ActualDepartureDate  *time.Time `gorm:"column:actual_departure_date"`
	ApprovedBy           int64      `gorm:"column:approved_by;not null"`
	ArrivalProcessedBy   *int64     `gorm:"column:arrival_processed_by"`
	DepartureProcessedBy *int64     `gorm:"column:departure_processed_by"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (ArrivalRecord) TableName() string {
	return "arrival_records"
}
