package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	shiftDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/shift"
	"github.com/widyatama/shift-management/internal/shift"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, shiftID int64) (*shiftDatamodel.Shift, error) {
	var row shiftDatamodel.Shift
	err := r.db.WithContext(ctx).
		Where("id = ?", shiftID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) GetByIDWithCompany(ctx context.Context, shiftID int64) (*shiftDatamodel.ShiftWithCompany, error) {
	var row shiftDatamodel.ShiftWithCompany
	err := r.db.WithContext(ctx).
		Table("shifts").
		Select("shifts.*, companies.name AS company_name, companies.location AS company_location").
		Joins("JOIN companies ON companies.id = shifts.company_id").
		Where("shifts.id = ?", shiftID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListAvailable(ctx context.Context, date string) ([]*shiftDatamodel.ShiftWithCompany, error) {
	query := r.db.WithContext(ctx).
		Table("shifts").
		Select("shifts.*, companies.name AS company_name, companies.location AS company_location").
		Joins("JOIN companies ON companies.id = shifts.company_id").
		Where("shifts.user_id IS NULL")

	if date != "" {
		query = query.Where("shifts.date = ?", date)
	}

	var rows []*shiftDatamodel.ShiftWithCompany
	if err := query.Order("shifts.date ASC, shifts.hour ASC, shifts.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) ListByOccupant(ctx context.Context, userID int64) ([]*shiftDatamodel.Shift, error) {
	var rows []*shiftDatamodel.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, hour ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Assign sets the occupant only when the shift is still open. The unique
// occupancy index on shifts.user_id guards the one-shift-per-user rule even
// when two applications race; TranslateError must be enabled on the gorm
// connection for the duplicate-key mapping below.
func (r *Repository) Assign(ctx context.Context, shiftID, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&shiftDatamodel.Shift{}).
		Where("id = ? AND user_id IS NULL", shiftID).
		Update("user_id", userID)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return shift.ErrAlreadyAssigned
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shift.ErrConflict
	}
	return nil
}

// Release clears the occupant only while the given user still holds the
// shift.
func (r *Repository) Release(ctx context.Context, shiftID, userID int64) error {
	res := r.db.WithContext(ctx).
		Model(&shiftDatamodel.Shift{}).
		Where("id = ? AND user_id = ?", shiftID, userID).
		Update("user_id", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shift.ErrConflict
	}
	return nil
}
