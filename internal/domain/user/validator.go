package user

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"healthwatch/internal/domain/validation"
)

const (
	MaxNameLen     = 100
	MinPasswordLen = 6
	// bcrypt ignores everything past 72 bytes
	MaxPasswordLen = 72
)

// Validator - интерфейс для валидации пользовательских данных
type Validator interface {
	ValidateRegister(name, email, password string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type PasswordValidator struct {
	minLen int
}

// NewPasswordValidator создает новый валидатор
func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{minLen: MinPasswordLen}
}

// ValidateRegister валидирует данные для регистрации
func (v *PasswordValidator) ValidateRegister(name, email, password string) error {
	var errs validation.Error

	name = strings.TrimSpace(name)
	errs.Required("name", name)
	if utf8.RuneCountInString(name) > MaxNameLen {
		errs.Add("name", "must be at most %d characters", MaxNameLen)
	}

	v.checkEmail(&errs, email)
	v.checkPassword(&errs, password)

	return errs.Err()
}

func (v *PasswordValidator) ValidateEmail(email string) error {
	var errs validation.Error
	v.checkEmail(&errs, email)
	return errs.Err()
}

func (v *PasswordValidator) ValidatePassword(password string) error {
	var errs validation.Error
	v.checkPassword(&errs, password)
	return errs.Err()
}

func (v *PasswordValidator) checkEmail(errs *validation.Error, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "is required")
		return
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.Add("email", "must be a valid email address")
	}
}

func (v *PasswordValidator) checkPassword(errs *validation.Error, password string) {
	switch {
	case password == "":
		errs.Add("password", "is required")
	case utf8.RuneCountInString(password) < v.minLen:
		errs.Add("password", "must be at least %d characters", v.minLen)
	case len(password) > MaxPasswordLen:
		errs.Add("password", "must be at most %d bytes", MaxPasswordLen)
	}
}

// NormalizeEmail is the identity key used for lookups and uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
