package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// InvalidMarker is returned by Format when the input cannot be parsed.
const InvalidMarker = "invalid"

// FormatKind selects one of the canonical renderings.
type FormatKind int

const (
	E164 FormatKind = iota
	International
	National
	RFC3966
)

var formatNames = map[FormatKind]string{
	E164:          "e164",
	International: "international",
	National:      "national",
	RFC3966:       "rfc3966",
}

func (k FormatKind) String() string {
	if name, ok := formatNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FormatKind(%d)", int(k))
}

// ParseFormat maps a case-insensitive name (e164, international, national,
// rfc3966) to a FormatKind. An empty name selects E164.
func ParseFormat(name string) (FormatKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return E164, nil
	}
	for kind, candidate := range formatNames {
		if candidate == name {
			return kind, nil
		}
	}
	return E164, fmt.Errorf("unknown format %q", name)
}

func (k FormatKind) libraryFormat() phonenumbers.PhoneNumberFormat {
	switch k {
	case International:
		return phonenumbers.INTERNATIONAL
	case National:
		return phonenumbers.NATIONAL
	case RFC3966:
		return phonenumbers.RFC3966
	default:
		return phonenumbers.E164
	}
}

// Format renders raw in the requested format, or InvalidMarker when raw does not parse.
func Format(raw, region string, kind FormatKind) string {
	num, err := Parse(raw, region)
	if err != nil {
		return InvalidMarker
	}
	return FormatParsed(num, kind)
}

// FormatParsed renders an already parsed number.
func FormatParsed(num *phonenumbers.PhoneNumber, kind FormatKind) string {
	return phonenumbers.Format(num, kind.libraryFormat())
}
