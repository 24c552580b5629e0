// Package phone provides phone number utilities on top of the libphonenumber
// metadata shipped with github.com/nyaruka/phonenumbers: parsing, validation,
// formatting, extraction from free text and location lookups.
// This is part of the platform layer and contains no business logic.
//
// Every function is stateless. Boolean and list returning functions swallow
// parse failures and return false or an empty list; Format and Locate fold a
// parse failure into their normal return value.
package phone

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"phone_tools_backend/platform/apperr"

	"github.com/nyaruka/phonenumbers"
)

const (
	// DefaultRegion is used when a caller passes no region.
	DefaultRegion = "CN"
	// DefaultLang is used when a caller passes no language.
	DefaultLang = "en"
)

var (
	// ErrInvalidNumberFormat is wrapped by every parse failure.
	ErrInvalidNumberFormat = errors.New("invalid number format")
)

var (
	anyLetter       = regexp.MustCompile(`\pL`)
	telScheme       = regexp.MustCompile(`(?i)^\s*tel:`)
	extensionSuffix = regexp.MustCompile(`(?i)[\s,;]*(?:ext\.?|extension|x|#)\s*\d{1,7}#?\s*$`)
)

// Parse parses raw using region as the fallback for numbers written without
// a country prefix. The returned error is an *apperr.Error of kind Validation
// carrying the library's message; it matches both ErrInvalidNumberFormat and
// the library error under errors.Is.
//
// Letters are treated as masking characters ("1381234xxxx") and rejected,
// rather than being mapped to keypad digits. A tel: prefix and a trailing
// extension ("x123", "ext. 45") are still accepted.
func Parse(raw, region string) (*phonenumbers.PhoneNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if hasMaskLetters(trimmed) {
		return nil, parseError(phonenumbers.ErrNotANumber)
	}
	num, err := phonenumbers.Parse(trimmed, NormalizeRegion(region))
	if err != nil {
		return nil, parseError(err)
	}
	return num, nil
}

func parseError(libErr error) error {
	return apperr.Wrap(apperr.KindValidation, libErr.Error(), fmt.Errorf("%w: %w", ErrInvalidNumberFormat, libErr)).
		WithOp("phone.Parse")
}

func hasMaskLetters(s string) bool {
	s = telScheme.ReplaceAllString(s, "")
	s = extensionSuffix.ReplaceAllString(s, "")
	return anyLetter.MatchString(s)
}

// NormalizeRegion upper-cases region and substitutes DefaultRegion when empty.
func NormalizeRegion(region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return DefaultRegion
	}
	return region
}

// IsSupportedRegion reports whether region is a territory known to the dialing plan tables.
func IsSupportedRegion(region string) bool {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return false
	}
	return phonenumbers.GetCountryCodeForRegion(region) != 0
}
