package phone

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabelsResolveLanguage(t *testing.T) {
	cases := map[string]string{
		"":        "error",
		"en":      "error",
		"en-GB":   "error",
		"zh":      "错误",
		"zh_TW":   "错误",
		"zh-Hans": "错误",
		"fr":      "error",
		"!!":      "error",
	}
	for lang, wantKey := range cases {
		if got := Labels(lang).Keys.Error; got != wantKey {
			t.Fatalf("%q: expected error key %q, got %q", lang, wantKey, got)
		}
	}
}

func TestSupportedLanguages(t *testing.T) {
	if diff := cmp.Diff([]string{"en", "zh"}, SupportedLanguages()); diff != "" {
		t.Fatalf("unexpected languages (-want +got):\n%s", diff)
	}
}

func TestEveryTypeHasLabel(t *testing.T) {
	types := []NumberType{
		TypeFixedLine, TypeMobile, TypeFixedLineOrMobile, TypeTollFree, TypePremiumRate, TypeSharedCost,
		TypeVOIP, TypePersonalNumber, TypePager, TypeUAN, TypeVoicemail, TypeUnknown,
	}
	for _, lang := range SupportedLanguages() {
		set := Labels(lang)
		for _, typ := range types {
			if set.Types[typ] == "" {
				t.Fatalf("%s: missing label for %s", lang, typ)
			}
		}
	}
}

func TestTypeLabelFallsBackToUnknown(t *testing.T) {
	if got := Labels("en").TypeLabel(NumberType("satellite")); got != "Unknown type" {
		t.Fatalf("expected Unknown type, got %q", got)
	}
}

func TestLoadLabelsRejectsIncompleteTable(t *testing.T) {
	data := []byte("languages: [en]\nsets:\n  en:\n    keys:\n      error: error\n")
	if _, err := loadLabels(data); err == nil {
		t.Fatal("expected missing invalid label to fail")
	}
	if _, err := loadLabels([]byte("languages: []\n")); err == nil {
		t.Fatal("expected empty language list to fail")
	}
}

func TestCountryName(t *testing.T) {
	cases := []struct {
		region, lang, want string
	}{
		{"CN", "en", "China"},
		{"cn", "zh", "中国"},
		{"US", "", "United States"},
		{"CN", "ja", "China"},
		{"CN", "zh_TW", "中国"},
		{"??", "en", ""},
	}
	for _, tc := range cases {
		if got := CountryName(tc.region, tc.lang); got != tc.want {
			t.Fatalf("CountryName(%q, %q): expected %q, got %q", tc.region, tc.lang, tc.want, got)
		}
	}
}
