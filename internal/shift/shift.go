package shift

import (
	"errors"
	"time"

	shiftDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/shift"
)

// Shift is the domain entity. UserID is the occupant; nil means the shift
// is open for applications.
type Shift struct {
	ID                 int64     `json:"id"`
	CompanyID          int64     `json:"company_id"`
	Date               string    `json:"date"`
	Hour               string    `json:"hour"`
	Position           string    `json:"position"`
	ServiceDescription string    `json:"service_description"`
	Payment            string    `json:"payment"`
	Requirements       *string   `json:"requirements,omitempty"`
	Benefits           *string   `json:"benefits,omitempty"`
	UserID             *int64    `json:"user_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// ShiftWithCompany carries the joined company reference data for listings
// and the detail view.
type ShiftWithCompany struct {
	Shift
	CompanyName     string `json:"company_name"`
	CompanyLocation string `json:"company_location"`
}

func (s *Shift) IsAssigned() bool {
	return s.UserID != nil
}

func (s *Shift) IsAssignedTo(userID int64) bool {
	return s.UserID != nil && *s.UserID == userID
}

// Domain errors. All are recoverable, user-facing assignment failures.
var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrShiftUnavailable = errors.New("shift is not available")
	ErrAlreadyAssigned  = errors.New("user already has an assigned shift")
	ErrNotOwner         = errors.New("user does not own this shift")

	// ErrConflict is returned by the store when a conditional update
	// matched no rows. The service translates it after re-reading state;
	// it never reaches handlers.
	ErrConflict = errors.New("conditional update affected no rows")
)

func FromDataModel(s *shiftDatamodel.Shift) *Shift {
	return &Shift{
		ID:                 s.ID,
		CompanyID:          s.CompanyID,
		Date:               s.Date,
		Hour:               s.Hour,
		Position:           s.Position,
		ServiceDescription: s.ServiceDescription,
		Payment:            s.Payment,
		Requirements:       s.Requirements,
		Benefits:           s.Benefits,
		UserID:             s.UserID,
		CreatedAt:          s.CreatedAt,
	}
}

func FromDataModelSlice(shifts []*shiftDatamodel.Shift) []*Shift {
	result := make([]*Shift, len(shifts))
	for i, s := range shifts {
		result[i] = FromDataModel(s)
	}
	return result
}

func FromDataModelWithCompany(s *shiftDatamodel.ShiftWithCompany) *ShiftWithCompany {
	return &ShiftWithCompany{
		Shift:           *FromDataModel(&s.Shift),
		CompanyName:     s.CompanyName,
		CompanyLocation: s.CompanyLocation,
	}
}

func FromDataModelWithCompanySlice(shifts []*shiftDatamodel.ShiftWithCompany) []*ShiftWithCompany {
	result := make([]*ShiftWithCompany, len(shifts))
	for i, s := range shifts {
		result[i] = FromDataModelWithCompany(s)
	}
	return result
}
