package phone

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CountryName returns the display name of an ISO 3166 region code in lang,
// falling back to English, or "" for codes x/text does not know.
func CountryName(region, lang string) string {
	r, err := language.ParseRegion(strings.TrimSpace(region))
	if err != nil {
		return ""
	}
	tag, _ := labels.resolve(lang)
	return countryName(r, tag)
}

func countryName(r language.Region, tag language.Tag) string {
	if namer := display.Regions(tag); namer != nil {
		if name := namer.Name(r); name != "" {
			return name
		}
	}
	return display.Regions(language.English).Name(r)
}
