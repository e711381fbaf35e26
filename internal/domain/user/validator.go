package user

import (
	"fmt"
	"unicode"
)

const (
	MinLoginLen    = 3
	MaxLoginLen    = 32
	MinPasswordLen = 8
)

// Validator - проверка учетных данных при регистрации и входе.
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
	ValidatePassword(password string) error
}

type passwordRule struct {
	enabled bool
	check   func(r rune) bool
	message string
}

type PasswordValidator struct {
	requireSpecialChar bool
	requireDigit       bool
	requireUpper       bool
	requireLower       bool
}

func NewPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		requireSpecialChar: true,
		requireDigit:       true,
		requireUpper:       true,
		requireLower:       true,
	}
}

func (v *PasswordValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return fmt.Errorf("login validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

func (v *PasswordValidator) ValidateLogin(login string) error {
	n := len([]rune(login))
	if n < MinLoginLen {
		return fmt.Errorf("login must be at least %d characters", MinLoginLen)
	}
	if n > MaxLoginLen {
		return fmt.Errorf("login must be at most %d characters", MaxLoginLen)
	}

	for _, r := range login {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return fmt.Errorf("login can only contain letters, digits, '_', '-', '.'")
		}
	}

	return nil
}

func (v *PasswordValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}

	rules := []passwordRule{
		{v.requireLower, unicode.IsLower, "password must contain at least one lowercase letter"},
		{v.requireUpper, unicode.IsUpper, "password must contain at least one uppercase letter"},
		{v.requireDigit, unicode.IsDigit, "password must contain at least one digit"},
		{v.requireSpecialChar, isSpecial, "password must contain at least one special character"},
	}

	for _, rule := range rules {
		if rule.enabled && !containsRune(password, rule.check) {
			return fmt.Errorf("%s", rule.message)
		}
	}

	return nil
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func containsRune(s string, check func(r rune) bool) bool {
	for _, r := range s {
		if check(r) {
			return true
		}
	}
	return false
}
