package application

import "time"

type VisaApplication struct {
	ID                    int64      `gorm:"primaryKey"`
	ReferenceNumber       string     `gorm:"column:reference_number;uniqueIndex;not null"`
	FirstName             string     `gorm:"column:first_name;not null"`
	LastName              string     `gorm:"column:last_name;not null"`
	Email                 string     `gorm:"column:email;not null"`
	PassportNumber        string     `gorm:"column:passport_number;not null"`
	Nationality           string     `gorm:"column:nationality;not null"`
	PurposeOfVisit        string     `gorm:"column:purpose_of_visit"`
	Status                string     `gorm:"column:status;not null;default:pending"`
	RejectionReason       *string    `gorm:"column:rejection_reason"`
	ArrivalDate           time.Time  `gorm:"column:arrival_date;not null"`
	ExpectedDepartureDate time.Time  `gorm:"column:expected_departure_date;not null"`
	AppliedAt             time.Time  `gorm:"column:applied_at"`
	ProcessedAt           *time.Time `gorm:"column:processed_at"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (VisaApplication) TableName() string {
	return "visa_applications"
}

// UserApplication links a registered user to applications they submitted.
// Anonymous submissions have no row here.
type UserApplication struct {
	ID                int64     `gorm:"primaryKey"`
	UserID            int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_application"`
	VisaApplicationID int64     `gorm:"column:visa_application_id;not null;uniqueIndex:idx_user_application"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserApplication) TableName() string {
	return "user_applications"
}
