// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"strings"

	"phone_tools_backend/platform/phone"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator with the phone specific rules registered:
//
//	region  - an ISO 3166 region known to the dialing plan tables
//	langtag - a well-formed BCP 47 language tag
//
// Both accept the empty string so they combine with omitempty-style optional fields.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("region", validateRegion)
	_ = v.RegisterValidation("langtag", validateLangTag)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field any, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func validateRegion(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || phone.IsSupportedRegion(value)
}

func validateLangTag(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := language.Parse(value)
	return err == nil
}
