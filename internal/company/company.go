package company

import (
	"context"
	"errors"
	"time"

	companyDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/company"
)

// Company is employer reference data joined into shift listings.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrCompanyNotFound = errors.New("company not found")

type RepositoryAPI interface {
	GetByID(ctx context.Context, companyID int64) (*companyDatamodel.Company, error)
	GetByName(ctx context.Context, name string) (*companyDatamodel.Company, error)
	List(ctx context.Context) ([]*companyDatamodel.Company, error)
	Create(ctx context.Context, c *companyDatamodel.Company) error
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:        c.ID,
		Name:      c.Name,
		Location:  c.Location,
		CreatedAt: c.CreatedAt,
	}
}
