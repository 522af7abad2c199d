package auth

import (
	"regexp"

	"github.com/widyatama/shift-management/internal"
)

// usernamePattern: letters first, then letters, dash or underscore.
var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z\-_]*$`)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 3
)

// RegisterDTO is the transport shape for registration requests.
type RegisterDTO struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginDTO is the transport shape for login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks all registration rules and returns a field-scoped
// validation error listing every failure at once.
func (d RegisterDTO) Validate() error {
	var errs internal.ValidationErrors

	validateUsername(d.Username, &errs)

	if len(d.Password) < passwordMinLen {
		errs.Add("password", "Password must be at least 3 characters", internal.ErrCodeInvalidPassword)
	}
	if d.Password != d.ConfirmPassword {
		errs.Add("confirm_password", "Passwords don't match", internal.ErrCodePasswordMismatch)
	}

	if errs.HasErrors() {
		return internal.NewValidationErrors(errs)
	}
	return nil
}

func (d LoginDTO) Validate() error {
	var errs internal.ValidationErrors

	validateUsername(d.Username, &errs)

	if len(d.Password) < passwordMinLen {
		errs.Add("password", "Password must be at least 3 characters", internal.ErrCodeInvalidPassword)
	}

	if errs.HasErrors() {
		return internal.NewValidationErrors(errs)
	}
	return nil
}

func validateUsername(username string, errs *internal.ValidationErrors) {
	if len(username) < usernameMinLen {
		errs.Add("username", "Username must be at least 3 characters", internal.ErrCodeInvalidUsername)
		return
	}
	if len(username) > usernameMaxLen {
		errs.Add("username", "Username must be at most 30 characters", internal.ErrCodeInvalidUsername)
		return
	}
	if !usernamePattern.MatchString(username) {
		errs.Add("username", "Only letters, dash or underscore allowed", internal.ErrCodeInvalidUsername)
	}
}
