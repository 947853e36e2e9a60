package format

import (
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != JSON {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if m, err := ParseMode("table"); err != nil || m != Table {
		t.Errorf("ParseMode(table) = %v, %v", m, err)
	}
	if _, err := ParseMode("csv"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRecords_Table(t *testing.T) {
	records := []map[string]any{
		{"id": float64(1), "name": "Azure Interior", "country_id": []any{float64(233), "United States"}},
		{"id": float64(2), "name": "Deco Addict", "email": "deco@example.com"},
	}
	out, err := Records(Table, records)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	for _, want := range []string{"ID", "NAME", "Azure Interior", "Deco Addict", "United States", "deco@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	// id column leads
	if strings.Index(out, "ID") > strings.Index(out, "NAME") {
		t.Errorf("id column should come first:\n%s", out)
	}
}

func TestRecords_JSON(t *testing.T) {
	records := []map[string]any{{"id": float64(5), "name": "Test"}}
	out, err := Records(JSON, records)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if !strings.Contains(out, `"name": "Test"`) {
		t.Errorf("json output: %s", out)
	}
}

func TestPairs(t *testing.T) {
	out, err := Pairs(Table, []string{"code", "name"}, [][]string{{"en_US", "English (US)"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "en_US") || !strings.Contains(out, "English (US)") {
		t.Errorf("pairs output:\n%s", out)
	}
}

func TestList(t *testing.T) {
	out, err := List(Table, "database", []string{"production", "staging"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "production") || !strings.Contains(out, "staging") {
		t.Errorf("list output:\n%s", out)
	}

	jsonOut, err := List(JSON, "database", []string{"production"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(jsonOut, `"production"`) {
		t.Errorf("json list output: %s", jsonOut)
	}
}
