package shift

import (
	"context"
	"errors"
	"log/slog"

	shiftDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/shift"
	"github.com/widyatama/shift-management/internal/core/events"
)

type ServiceAPI interface {
	ListAvailable(ctx context.Context, date string) ([]DayGroup, error)
	GetShift(ctx context.Context, shiftID int64) (*ShiftWithCompany, error)
	ListUserShifts(ctx context.Context, userID int64) ([]*Shift, error)
	Apply(ctx context.Context, shiftID, userID int64) (*Shift, error)
	Withdraw(ctx context.Context, shiftID, userID int64) (*Shift, error)
}

// RepositoryAPI is the storage contract. Assign and Release are conditional
// writes: they must only take effect when the occupancy precondition still
// holds, and return ErrConflict when it no longer does.
type RepositoryAPI interface {
	GetByID(ctx context.Context, shiftID int64) (*shiftDatamodel.Shift, error)
	GetByIDWithCompany(ctx context.Context, shiftID int64) (*shiftDatamodel.ShiftWithCompany, error)
	ListAvailable(ctx context.Context, date string) ([]*shiftDatamodel.ShiftWithCompany, error)
	ListByOccupant(ctx context.Context, userID int64) ([]*shiftDatamodel.Shift, error)
	Assign(ctx context.Context, shiftID, userID int64) error
	Release(ctx context.Context, shiftID, userID int64) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// ListAvailable returns open shifts grouped by date. An empty date lists all
// upcoming days; a concrete date narrows the listing to that day.
func (s *Service) ListAvailable(ctx context.Context, date string) ([]DayGroup, error) {
	rows, err := s.repo.ListAvailable(ctx, date)
	if err != nil {
		s.logger.Error("failed to list available shifts", "date", date, "error", err)
		return nil, err
	}
	return GroupByDate(FromDataModelWithCompanySlice(rows)), nil
}

func (s *Service) GetShift(ctx context.Context, shiftID int64) (*ShiftWithCompany, error) {
	row, err := s.repo.GetByIDWithCompany(ctx, shiftID)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("failed to get shift", "shift_id", shiftID, "error", err)
		return nil, err
	}
	return FromDataModelWithCompany(row), nil
}

func (s *Service) ListUserShifts(ctx context.Context, userID int64) ([]*Shift, error) {
	rows, err := s.repo.ListByOccupant(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list user shifts", "user_id", userID, "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// Apply assigns an open shift to the user. A user holds at most one shift
// at a time; the database enforces this with a unique occupancy index, and
// the assignment itself is a compare-and-set so concurrent applicants for
// the same shift cannot both win.
func (s *Service) Apply(ctx context.Context, shiftID, userID int64) (*Shift, error) {
	held, err := s.repo.ListByOccupant(ctx, userID)
	if err != nil {
		s.logger.Error("failed to check current assignment", "user_id", userID, "error", err)
		return nil, err
	}
	if len(held) > 0 {
		return nil, ErrAlreadyAssigned
	}

	target, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return nil, ErrShiftUnavailable
		}
		s.logger.Error("failed to load shift", "shift_id", shiftID, "error", err)
		return nil, err
	}
	if target.UserID != nil {
		return nil, ErrShiftUnavailable
	}

	if err := s.repo.Assign(ctx, shiftID, userID); err != nil {
		switch {
		case errors.Is(err, ErrAlreadyAssigned):
			// Unique occupancy index fired: the user won another shift
			// between the pre-check and the write.
			return nil, ErrAlreadyAssigned
		case errors.Is(err, ErrConflict):
			return nil, s.resolveApplyConflict(ctx, shiftID, userID)
		default:
			s.logger.Error("failed to assign shift", "shift_id", shiftID, "user_id", userID, "error", err)
			return nil, err
		}
	}

	assigned, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		s.logger.Error("failed to reload assigned shift", "shift_id", shiftID, "error", err)
		return nil, err
	}

	s.eventBus.Publish(ctx, events.NewShiftAssignedEvent(shiftID, userID))
	s.logger.Info("shift assigned", "shift_id", shiftID, "user_id", userID)

	return FromDataModel(assigned), nil
}

// resolveApplyConflict re-reads the shift after a lost compare-and-set to
// report what actually happened.
func (s *Service) resolveApplyConflict(ctx context.Context, shiftID, userID int64) error {
	current, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return ErrShiftUnavailable
		}
		return err
	}
	if current.UserID != nil && *current.UserID == userID {
		// A duplicate request from the same user already won.
		return ErrAlreadyAssigned
	}
	return ErrShiftUnavailable
}

// Withdraw releases a shift the user currently holds. The release is
// conditional on ownership, so a stale withdraw cannot evict a later
// occupant.
func (s *Service) Withdraw(ctx context.Context, shiftID, userID int64) (*Shift, error) {
	target, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, ErrShiftNotFound) {
			return nil, ErrNotOwner
		}
		s.logger.Error("failed to load shift", "shift_id", shiftID, "error", err)
		return nil, err
	}
	if target.UserID == nil || *target.UserID != userID {
		return nil, ErrNotOwner
	}

	if err := s.repo.Release(ctx, shiftID, userID); err != nil {
		if errors.Is(err, ErrConflict) {
			// Ownership changed between the read and the write.
			return nil, ErrNotOwner
		}
		s.logger.Error("failed to release shift", "shift_id", shiftID, "user_id", userID, "error", err)
		return nil, err
	}

	released, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		s.logger.Error("failed to reload released shift", "shift_id", shiftID, "error", err)
		return nil, err
	}

	s.eventBus.Publish(ctx, events.NewShiftReleasedEvent(shiftID, userID))
	s.logger.Info("shift released", "shift_id", shiftID, "user_id", userID)

	return FromDataModel(released), nil
}
