package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/proteinpal/internal/tracker"
)

func sampleDays() []tracker.DayRecord {
	return []tracker.DayRecord{
		{
			Date: "2026-03-09",
			Goal: 160,
			Entries: []tracker.ProteinEntry{
				{ID: "a", Name: "Eggs", Protein: 18, Category: tracker.MealBreakfast, Timestamp: 1772020800000},
				{ID: "b", Name: "Chicken Bowl", Protein: 45, Category: tracker.MealLunch, Timestamp: 1772038800000},
			},
			WaterOz: 24,
		},
		{Date: "2026-03-10", Goal: 160, WaterOz: 8},
	}
}

// ============================================================
// JSON round trip
// ============================================================

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	days := sampleDays()

	if err := ToJSON(days, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d days", len(got))
	}
	if got[0].Date != "2026-03-09" || len(got[0].Entries) != 2 {
		t.Fatalf("first day came back wrong: %+v", got[0])
	}
	if got[0].Entries[0].ID != "a" || got[0].Entries[1].Protein != 45 {
		t.Fatalf("entries came back wrong: %+v", got[0].Entries)
	}
	if got[1].WaterOz != 8 {
		t.Fatalf("water lost: %+v", got[1])
	}
}

func TestFromJSONRejectsGarbage(t *testing.T) {
	_, err := FromJSON([]byte("{not an array"))
	if err == nil || err.Error() != "invalid JSON file" {
		t.Fatalf("got %v", err)
	}
}

func TestFromJSONRejectsOversizedPayload(t *testing.T) {
	big := make([]byte, maxImportBytes+1)
	if _, err := FromJSON(big); err == nil {
		t.Fatal("oversized payload should be rejected")
	}
}

func TestFromJSONRejectsNoValidRecords(t *testing.T) {
	// Valid JSON, but every record fails validation.
	_, err := FromJSON([]byte(`[{"date":"nope","goal":0,"entries":[]}]`))
	if err == nil || err.Error() != "no valid day records found in file" {
		t.Fatalf("got %v", err)
	}
}

func TestFromJSONFiltersAndSorts(t *testing.T) {
	raw := `[
		{"date":"2026-03-09","goal":160,"entries":[
			{"id":"late","name":"Dinner","protein":40,"timestamp":2000},
			{"id":"","name":"ghost","protein":10,"timestamp":1500},
			{"id":"early","name":"Eggs","protein":18,"timestamp":1000}
		]},
		{"date":"bad-key","goal":160,"entries":[]}
	]`
	got, err := FromJSON([]byte(raw))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("invalid day should be dropped, got %d", len(got))
	}
	entries := got[0].Entries
	if len(entries) != 2 {
		t.Fatalf("invalid entry should be dropped, got %d", len(entries))
	}
	if entries[0].ID != "early" || entries[1].ID != "late" {
		t.Fatalf("entries should sort by timestamp: %+v", entries)
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSVRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ToCSV(sampleDays(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	// Header, two entry rows, one empty-day row.
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	wantHeader := "Date,Goal,Water (oz),Entry Name,Protein (g),Category,Time"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Fatalf("header = %q", got)
	}

	first := rows[1]
	if first[0] != "2026-03-09" || first[1] != "160" || first[3] != "Eggs" || first[4] != "18" || first[5] != "breakfast" {
		t.Fatalf("first entry row: %v", first)
	}
	if !strings.HasSuffix(first[6], "Z") {
		t.Fatalf("times should be RFC3339 UTC: %q", first[6])
	}

	// Water rides only on a day's first row.
	if first[2] != "24" {
		t.Fatalf("first row water = %q", first[2])
	}
	if rows[2][2] != "" {
		t.Fatalf("second row should leave water blank: %v", rows[2])
	}

	// Empty days still export, carrying goal and water.
	empty := rows[3]
	if empty[0] != "2026-03-10" || empty[2] != "8" || empty[3] != "" {
		t.Fatalf("empty-day row: %v", empty)
	}
}
