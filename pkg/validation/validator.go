package validation

import (
	"regexp"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// emailRegex is the storage-contract email format; stricter than the
// validator's built-in "email" tag, so it is registered as a custom rule.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator instance with the domain rules
// registered:
//   - user_email: email address format
//   - user_password: min length 8, at least one upper, one lower, one digit
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("user_email", func(fl validator.FieldLevel) bool {
			return emailRegex.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("user_password", func(fl validator.FieldLevel) bool {
			return PasswordOK(fl.Field().String())
		})
	})
	return validate
}

// EmailOK reports whether raw is a well-formed email address.
func EmailOK(raw string) bool {
	return Validator().Var(raw, "required,user_email") == nil
}

// PasswordOK reports whether raw satisfies the password strength policy.
func PasswordOK(raw string) bool {
	if utf8.RuneCountInString(raw) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
