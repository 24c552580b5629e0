package phone

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
)

// candidatePattern matches runs that start with an optional plus sign or an
// opening bracket, then a digit, and continue through digits and the usual
// punctuation people put between digit groups. Full-width forms are accepted.
var candidatePattern = regexp.MustCompile(`(?:[+＋]\s?)?[(（]?[0-9０-９](?:[0-9０-９()（）\-‐–—.\s/\x{00A0}]*[0-9０-９])?`)

var groupSeparator = regexp.MustCompile(`[\s/]+`)

// maxGroups bounds the sub-candidate search for a single run of digit groups.
const maxGroups = 12

// Extract finds the valid phone numbers embedded in text and returns them in
// E.164 form, one entry per match in order of appearance. A number mentioned
// twice is returned twice. It never returns nil.
func Extract(text, region string) (numbers []string) {
	numbers = make([]string, 0)
	defer func() {
		if recover() != nil {
			numbers = make([]string, 0)
		}
	}()

	region = NormalizeRegion(region)

	for _, loc := range candidatePattern.FindAllStringIndex(text, -1) {
		if !isBoundary(text, loc[0], loc[1]) {
			continue
		}
		candidate := text[loc[0]:loc[1]]
		if e164, ok := matchCandidate(candidate, region); ok {
			numbers = append(numbers, e164)
			continue
		}
		numbers = append(numbers, matchGroups(candidate, region)...)
	}

	return numbers
}

// isBoundary rejects candidates glued to letters or digits on either side,
// e.g. "abc13812345678" or "+861381234xxxx".
func isBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func matchCandidate(candidate, region string) (string, bool) {
	num, err := Parse(candidate, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// matchGroups splits a run like "13812345678 13912345678" on whitespace and
// slashes and takes, from each position, the longest run of groups that forms
// a valid number.
func matchGroups(candidate, region string) []string {
	groups := groupSeparator.Split(strings.TrimSpace(candidate), -1)
	if len(groups) < 2 || len(groups) > maxGroups {
		return nil
	}

	var found []string
	for i := 0; i < len(groups); {
		matched := false
		for j := len(groups); j > i; j-- {
			if j-i == len(groups) {
				continue // the whole run was already tried
			}
			if e164, ok := matchCandidate(strings.Join(groups[i:j], " "), region); ok {
				found = append(found, e164)
				i = j
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return found
}
