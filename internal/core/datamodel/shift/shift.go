package shift

import "time"

// Shift is the persistence model. UserID is the occupant reference; NULL
// means the shift is open. A partial unique index on user_id (see
// migrations) guarantees a user occupies at most one shift.
type Shift struct {
	ID                 int64     `gorm:"primaryKey"`
	CompanyID          int64     `gorm:"column:company_id;not null"`
	Date               string    `gorm:"column:date;not null"`
	Hour               string    `gorm:"column:hour;not null"`
	Position           string    `gorm:"column:position;not null"`
	ServiceDescription string    `gorm:"column:service_description;not null"`
	Payment            string    `gorm:"column:payment;not null"`
	Requirements       *string   `gorm:"column:requirements"`
	Benefits           *string   `gorm:"column:benefits"`
	UserID             *int64    `gorm:"column:user_id"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Shift) TableName() string {
	return "shifts"
}

// ShiftWithCompany is the read model for listing and detail queries where
// the company reference data is joined in.
type ShiftWithCompany struct {
	Shift           `gorm:"embedded"`
	CompanyName     string `gorm:"column:company_name"`
	CompanyLocation string `gorm:"column:company_location"`
}
