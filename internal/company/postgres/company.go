package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/widyatama/shift-management/internal/company"
	companyDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/company"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, companyID int64) (*companyDatamodel.Company, error) {
	var row companyDatamodel.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", companyID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*companyDatamodel.Company, error) {
	var row companyDatamodel.Company
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *Repository) List(ctx context.Context) ([]*companyDatamodel.Company, error) {
	var rows []*companyDatamodel.Company
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Create(ctx context.Context, c *companyDatamodel.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}
