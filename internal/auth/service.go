package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/widyatama/shift-management/internal"
	userDatamodel "github.com/widyatama/shift-management/internal/core/datamodel/user"
	"github.com/widyatama/shift-management/internal/core/events"
)

// Service is the authentication service: registration, login and session
// resolution.
type Service struct {
	repo       RepositoryAPI
	sessions   SessionStore
	bus        *events.EventBus
	bcryptCost int
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, sessions SessionStore, bus *events.EventBus, bcryptCost int, sessionTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		sessions:   sessions,
		bus:        bus,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register validates the input, checks username availability, hashes the
// password and persists the new user. Duplicate usernames surface as a
// field-scoped validation error, whether caught by the pre-check or by the
// unique constraint when two registrations race.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, dto.Username); err == nil {
		return nil, internal.NewValidationFieldError("username", "Username already taken", internal.ErrCodeUsernameTaken)
	} else if !errors.Is(err, ErrUserNotFound) {
		s.logger.Error("register: username lookup failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("register: password hashing failed", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	record := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, internal.NewValidationFieldError("username", "Username already taken", internal.ErrCodeUsernameTaken)
		}
		s.logger.Error("register: create user failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", record.ID, "username", record.Username)
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewUserRegisteredEvent(record.ID, record.Username))
	}

	return FromDataModel(record), nil
}

// Login authenticates the credentials and creates a server-side session.
// The second return value is the opaque session token for the cookie.
// Unknown username and wrong password are deliberately indistinguishable.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	record, err := s.repo.GetByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		s.logger.Error("login: username lookup failed", "error", err)
		return nil, "", internal.NewInternalError("failed to log in", err)
	}

	if err := VerifyPassword(record.PasswordHash, dto.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateSessionToken()
	if err != nil {
		s.logger.Error("login: token generation failed", "error", err)
		return nil, "", internal.NewInternalError("failed to log in", err)
	}

	session := &Session{
		Token:     token,
		UserID:    record.ID,
		Username:  record.Username,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		s.logger.Error("login: session save failed", "error", err, "user_id", record.ID)
		return nil, "", internal.NewInternalError("failed to log in", err)
	}

	s.logger.Info("login successful", "user_id", record.ID, "username", record.Username)
	return FromDataModel(record), token, nil
}

// Logout invalidates the session server-side. A missing session is not an
// error: logging out twice is fine.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
		s.logger.Error("logout: session delete failed", "error", err)
		return internal.NewInternalError("failed to log out", err)
	}
	return nil
}

// ResolveSession maps a session token to the current user. Absence of a
// session is a normal outcome reported as ErrNoSession, never a panic or an
// internal error.
func (s *Service) ResolveSession(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrNoSession
		}
		s.logger.Error("resolve session: store lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to resolve session", err)
	}

	record, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrNoSession
		}
		s.logger.Error("resolve session: user lookup failed", "error", err, "user_id", session.UserID)
		return nil, internal.NewInternalError("failed to resolve session", err)
	}

	return FromDataModel(record), nil
}
