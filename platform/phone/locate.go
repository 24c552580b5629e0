package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
)

// Location is the geographic and network information known for a number.
type Location struct {
	E164        string     `json:"e164"`
	RegionCode  string     `json:"regionCode"`
	Country     string     `json:"country"`
	Description string     `json:"location"`
	Carrier     string     `json:"carrier"`
	Type        NumberType `json:"type"`
	Timezones   []string   `json:"timezones"`
}

// Describe gathers country, location, carrier, type and timezones for a
// parsed number. Names are localized to lang where the data has them and
// fall back to English otherwise.
func Describe(num *phonenumbers.PhoneNumber, lang string) Location {
	tag, _ := labels.resolve(lang)
	dataLang := libraryLang(tag)

	loc := Location{
		E164:       phonenumbers.Format(num, phonenumbers.E164),
		RegionCode: phonenumbers.GetRegionCodeForNumber(num),
		Type:       TypeOf(num),
		Timezones:  []string{},
	}

	if r, err := language.ParseRegion(loc.RegionCode); err == nil {
		loc.Country = countryName(r, tag)
	}

	loc.Description = lookupLocalized(dataLang, func(l string) (string, error) {
		return phonenumbers.GetGeocodingForNumber(num, l)
	})
	if loc.Description == "" {
		loc.Description = loc.Country
	}

	loc.Carrier = lookupLocalized(dataLang, func(l string) (string, error) {
		return phonenumbers.GetCarrierForNumber(num, l)
	})

	if zones, err := phonenumbers.GetTimezonesForNumber(num); err == nil && zones != nil {
		loc.Timezones = zones
	}

	return loc
}

// Lookup parses raw and describes it. Only parse failures are errors: a
// number that parses but is not dialable under its plan is still described,
// typically with an unknown type and carrier.
func Lookup(raw, region, lang string) (Location, error) {
	num, err := Parse(raw, region)
	if err != nil {
		return Location{}, err
	}
	return Describe(num, lang), nil
}

// Locate returns the localized location mapping for raw, or the single-key
// error mapping when raw does not parse.
func Locate(raw, region, lang string) map[string]string {
	loc, err := Lookup(raw, region, lang)
	if err != nil {
		return ErrorMapping(lang)
	}
	return loc.Render(lang)
}

// Render converts the location into a mapping whose keys and values are
// localized through the label table for lang.
func (l Location) Render(lang string) map[string]string {
	set := Labels(lang)

	carrier := l.Carrier
	if carrier == "" {
		carrier = set.Unknown
		if l.Type == TypeFixedLine && l.RegionCode == "CN" && set.FixedLineCarrier != "" {
			carrier = set.FixedLineCarrier
		}
	}

	return map[string]string{
		set.Keys.Country:  l.Country,
		set.Keys.Region:   l.RegionCode,
		set.Keys.Location: l.Description,
		set.Keys.Carrier:  carrier,
		set.Keys.Type:     set.TypeLabel(l.Type),
	}
}

// ErrorMapping returns the localized {"error": "invalid number"} mapping.
func ErrorMapping(lang string) map[string]string {
	set := Labels(lang)
	return map[string]string{set.Keys.Error: set.Invalid}
}

// IsErrorMapping reports whether m is the error mapping for lang.
func IsErrorMapping(m map[string]string, lang string) bool {
	set := Labels(lang)
	if len(m) != 1 {
		return false
	}
	return m[set.Keys.Error] == set.Invalid
}

// libraryLang converts a tag into the two-letter code the carrier and
// geocoding tables are keyed by.
func libraryLang(tag language.Tag) string {
	base, conf := tag.Base()
	if conf == language.No {
		return DefaultLang
	}
	return strings.ToLower(base.String())
}

func lookupLocalized(lang string, fetch func(lang string) (string, error)) string {
	if value, err := fetch(lang); err == nil && value != "" {
		return value
	}
	if lang == "en" {
		return ""
	}
	if value, err := fetch("en"); err == nil {
		return value
	}
	return ""
}
