package phone

import "github.com/nyaruka/phonenumbers"

// Validate reports whether raw is a live, dialable number. Parse failures yield false.
func Validate(raw, region string) bool {
	num, err := Parse(raw, region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// BatchValidate applies Validate to every item independently and keys the
// outcome by the original string. Duplicate inputs collapse to one entry.
func BatchValidate(raws []string, region string) map[string]bool {
	results := make(map[string]bool, len(raws))
	for _, raw := range raws {
		if _, seen := results[raw]; seen {
			continue
		}
		results[raw] = Validate(raw, region)
	}
	return results
}
