package country

import "time"

type Country struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	ISO3      string    `gorm:"column:iso3;uniqueIndex;not null;size:3"`
	ISO2      *string   `gorm:"column:iso2;size:2"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Country) TableName() string {
	return "countries"
}
