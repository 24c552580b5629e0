package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCmd(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	t.Setenv("PHONE_DEFAULT_REGION", "CN")
	t.Setenv("PHONE_DEFAULT_LANG", "en")
	t.Setenv("REDIS_URL", "")

	regionFlag, langFlag, formatFlag, jsonFlag = "", "", "e164", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("expected %v to succeed, got %v", args, err)
	}
	return out.String()
}

func TestValidateCommand(t *testing.T) {
	out := runCmd(t, "", "validate", "13812345678", "12345")
	if !strings.Contains(out, "13812345678\ttrue\t+8613812345678") {
		t.Fatalf("expected valid line, got %q", out)
	}
	if !strings.Contains(out, "12345\tfalse") {
		t.Fatalf("expected invalid line, got %q", out)
	}
}

func TestFormatCommand(t *testing.T) {
	out := runCmd(t, "", "format", "--format", "rfc3966", "13812345678")
	if !strings.Contains(out, "tel:+86") {
		t.Fatalf("expected rfc3966 rendering, got %q", out)
	}
}

func TestExtractCommandReadsStdin(t *testing.T) {
	out := runCmd(t, "first +8613912345678 then +14155552671", "extract")
	want := "+8613912345678\n+14155552671\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestBatchCommandSkipsBlankLines(t *testing.T) {
	out := runCmd(t, "13812345678\n\n12345\n", "batch")
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected two result lines, got %q", out)
	}
}

func TestLocateCommandJSON(t *testing.T) {
	out := runCmd(t, "", "--json", "locate", "+8613812345678")
	if !strings.Contains(out, `"country":"China"`) {
		t.Fatalf("expected country in json, got %q", out)
	}
}
