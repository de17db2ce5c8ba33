package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	apperrors "storerating/internal/errors"
	"storerating/internal/model"
)

const (
	NameMin     = 20
	NameMax     = 60
	PasswordMin = 8
	PasswordMax = 16

	// PasswordSymbols are the characters that satisfy the symbol requirement.
	PasswordSymbols = "!@#$%^&*"
)

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

// IsEmail reports whether s is an acceptable account or store email.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPassword reports whether s meets the complexity policy: 8-16 characters,
// at least one uppercase letter and at least one of PasswordSymbols.
func IsPassword(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < PasswordMin || n > PasswordMax {
		return false
	}
	var upper, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return upper && symbol
}

// New returns a validator with the custom useremail, password and role tags
// registered. Field names in errors come from json tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("useremail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
	return v
}

// Struct validates s and converts the first failure into a ValidationError.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate turns validator output into a client-facing ValidationError.
func Translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return apperrors.NewValidationError(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "useremail":
		return "Invalid email"
	case "password":
		return fmt.Sprintf("Password must be %d-%d chars, include uppercase and a special char (%s)", PasswordMin, PasswordMax, PasswordSymbols)
	case "role":
		return "Role must be admin, user, or owner"
	case "min", "max", "len":
		if field == "name" {
			return fmt.Sprintf("Name must be %d-%d characters", NameMin, NameMax)
		}
		if fe.Tag() == "max" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

// CustomValidator adapts the validator to echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator returns an echo validator backed by New.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return Struct(cv.validator, i)
}
