package phone

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLocateInvalidInputReturnsErrorMapping(t *testing.T) {
	for _, raw := range []string{"not-a-number", "", "+861381234xxxx", "1381234xxxx"} {
		got := Locate(raw, "CN", "en")
		if diff := cmp.Diff(map[string]string{"error": "invalid number"}, got); diff != "" {
			t.Fatalf("%q: unexpected mapping (-want +got):\n%s", raw, diff)
		}
		if !IsErrorMapping(got, "en") {
			t.Fatalf("%q: expected IsErrorMapping to agree", raw)
		}
	}
}

func TestLocateErrorMappingIsLocalized(t *testing.T) {
	got := Locate("not-a-number", "", "zh")
	if diff := cmp.Diff(map[string]string{"错误": "无效号码"}, got); diff != "" {
		t.Fatalf("unexpected mapping (-want +got):\n%s", diff)
	}
}

func TestLocateChinaMobile(t *testing.T) {
	got := Locate("+8613812345678", "", "en")

	if IsErrorMapping(got, "en") {
		t.Fatal("expected a location, got the error mapping")
	}
	if got["country"] != "China" {
		t.Fatalf("expected country China, got %q", got["country"])
	}
	if got["region"] != "CN" {
		t.Fatalf("expected region CN, got %q", got["region"])
	}
	if got["type"] != "Mobile" {
		t.Fatalf("expected type Mobile, got %q", got["type"])
	}
	if got["location"] == "" || got["carrier"] == "" {
		t.Fatalf("expected location and carrier to be filled, got %#v", got)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 keys, got %#v", got)
	}
}

func TestLocateChineseLabels(t *testing.T) {
	got := Locate("13812345678", "CN", "zh")

	if got["国家"] != "中国" {
		t.Fatalf("expected 中国, got %q", got["国家"])
	}
	if got["类型"] != "移动电话" {
		t.Fatalf("expected 移动电话, got %q", got["类型"])
	}
	if got["地区代码"] != "CN" {
		t.Fatalf("expected CN, got %q", got["地区代码"])
	}
}

func TestLookupReturnsStructuredLocation(t *testing.T) {
	loc, err := Lookup("+16502530000", "", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.E164 != "+16502530000" || loc.RegionCode != "US" {
		t.Fatalf("unexpected location %#v", loc)
	}
	if loc.Country != "United States" {
		t.Fatalf("expected United States, got %q", loc.Country)
	}
	if loc.Timezones == nil {
		t.Fatal("expected non-nil timezones")
	}
}

func TestLookupUnparseableNumber(t *testing.T) {
	_, err := Lookup("not-a-number", "CN", "en")
	if !errors.Is(err, ErrInvalidNumberFormat) {
		t.Fatalf("expected ErrInvalidNumberFormat, got %v", err)
	}
}

func TestLocateDescribesParseableShortNumbers(t *testing.T) {
	for _, raw := range []string{"1-234-5678", "1381234"} {
		got := Locate(raw, "CN", "en")
		if IsErrorMapping(got, "en") {
			t.Fatalf("%q: expected a location mapping, got %v", raw, got)
		}
		if got["country"] != "China" || got["region"] != "CN" {
			t.Fatalf("%q: expected China/CN, got %v", raw, got)
		}
		if len(got) != 5 {
			t.Fatalf("%q: expected 5 keys, got %v", raw, got)
		}
	}

	zh := Locate("1-234-5678", "CN", "zh")
	if zh["国家"] != "中国" {
		t.Fatalf("expected localized country, got %v", zh)
	}
}

func TestLocateUnsupportedLanguageKeepsOneLanguage(t *testing.T) {
	got := Locate("+8613812345678", "", "ja")
	if got["country"] != "China" {
		t.Fatalf("expected English country name under English keys, got %v", got)
	}
	if got["type"] != "Mobile" {
		t.Fatalf("expected English type label, got %v", got)
	}
}

func TestRenderUnknownCarrier(t *testing.T) {
	loc := Location{Country: "United States", RegionCode: "US", Description: "California", Type: TypeFixedLine}

	got := loc.Render("en")
	want := map[string]string{
		"country":  "United States",
		"region":   "US",
		"location": "California",
		"carrier":  "unknown",
		"type":     "Fixed line",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected mapping (-want +got):\n%s", diff)
	}
}

func TestRenderInfersChineseFixedLineCarrier(t *testing.T) {
	loc := Location{Country: "中国", RegionCode: "CN", Description: "北京市", Type: TypeFixedLine}

	if got := loc.Render("zh")["运营商"]; got != "电信(固定电话一般推断)" {
		t.Fatalf("expected inferred fixed line carrier, got %q", got)
	}

	loc.Type = TypeMobile
	if got := loc.Render("zh")["运营商"]; got != "未知" {
		t.Fatalf("expected unknown carrier for mobile, got %q", got)
	}
}
