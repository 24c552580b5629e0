package phone

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		region string
		want   []string
	}{
		{"international in prose", "call me at +14155552671 please", "", []string{"+14155552671"}},
		{"national with default region", "sdfsdfwer 15872324322 dfsdf", "CN", []string{"+8615872324322"}},
		{"grouped digits", "office: 138 1234 5678, thanks", "CN", []string{"+8613812345678"}},
		{"us punctuation", "Reach us at (650) 253-0000.", "US", []string{"+16502530000"}},
		{"two numbers in order", "first +8613912345678 then +14155552671", "", []string{"+8613912345678", "+14155552671"}},
		{"repeated mention", "13812345678 or again 13812345678", "CN", []string{"+8613812345678", "+8613812345678"}},
		{"space separated run", "13812345678 13912345678", "CN", []string{"+8613812345678", "+8613912345678"}},
		{"glued to letters", "abc13812345678def", "CN", []string{}},
		{"masked digits", "+861381234xxxx", "CN", []string{}},
		{"too short", "room 1024 floor 3", "CN", []string{}},
		{"no digits", "nothing to see here", "", []string{}},
		{"empty", "", "", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.text, tc.region)
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected numbers (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractResultsValidate(t *testing.T) {
	text := "Sales 13812345678, support +14155552671 / +442070313000, fax 010-1234"
	for _, e164 := range Extract(text, "CN") {
		if !strings.HasPrefix(e164, "+") {
			t.Fatalf("expected E.164 output, got %q", e164)
		}
		if !Validate(e164, "") {
			t.Fatalf("extracted %q does not validate", e164)
		}
	}
}

func TestExtractHandlesHostileInput(t *testing.T) {
	text := strings.Repeat("+(-) 9/", 2000) + "\x00\xff"
	if got := Extract(text, "CN"); got == nil {
		t.Fatal("expected non-nil slice")
	}
}
