package user

import (
	"context"
	"errors"
	"time"

	userDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/user"
)

// Profile is the public view of a user. The password hash never leaves the
// persistence layer.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrUserNotFound = errors.New("user not found")

type ServiceAPI interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
}

type RepositoryAPI interface {
	GetByID(ctx context.Context, userID int64) (*userDatamodel.User, error)
}

func FromDataModel(u *userDatamodel.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
