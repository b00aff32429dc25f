package output

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONIndented(t *testing.T) {
	var b strings.Builder
	if err := JSON(&b, map[string]string{"key": "PROJ-42"}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	got := b.String()
	if !strings.Contains(got, "\n  \"key\": \"PROJ-42\"\n") {
		t.Errorf("JSON output not indented: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("JSON output should end with newline: %q", got)
	}
}

func TestCompactSingleLine(t *testing.T) {
	var b strings.Builder
	if err := Compact(&b, map[string]any{"key": "PROJ-42", "labels": []string{"a", "b"}}); err != nil {
		t.Fatalf("Compact() error: %v", err)
	}
	got := strings.TrimSuffix(b.String(), "\n")
	if strings.Contains(got, "\n") {
		t.Errorf("Compact output spans multiple lines: %q", got)
	}
}

func TestJSONError(t *testing.T) {
	var b strings.Builder
	JSONError(&b, "NOT_FOUND", "issue not found: PROJ-999", map[string]any{"status": 404})

	var resp ErrorResponse
	if err := json.Unmarshal([]byte(b.String()), &resp); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	if resp.Code != "NOT_FOUND" {
		t.Errorf("Code = %q, want NOT_FOUND", resp.Code)
	}
	if resp.Error != "issue not found: PROJ-999" {
		t.Errorf("Error = %q", resp.Error)
	}
	if resp.Details["status"] != float64(404) {
		t.Errorf("Details[status] = %v, want 404", resp.Details["status"])
	}
}

func TestJSONErrorOmitsEmptyDetails(t *testing.T) {
	var b strings.Builder
	JSONError(&b, "MISSING_KEY", "no key", nil)
	if strings.Contains(b.String(), "details") {
		t.Errorf("empty details should be omitted: %q", b.String())
	}
}

func TestMessagef(t *testing.T) {
	var b strings.Builder
	Messagef(&b, "Installed %d skill(s).", 2)
	if b.String() != "Installed 2 skill(s).\n" {
		t.Errorf("Messagef = %q", b.String())
	}
}
