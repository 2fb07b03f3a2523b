// Package export writes day records to JSON/CSV files and reads JSON back.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sadopc/proteinpal/internal/tracker"
)

const (
	maxImportBytes = 5 * 1024 * 1024
	maxImportDays  = 3650 // ~10 years
)

// ToJSON writes all day records to path as an indented JSON array. The same
// format round-trips through FromJSON.
func ToJSON(days []tracker.DayRecord, path string) error {
	data, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON parses an exported JSON array back into day records, dropping
// records and entries that fail validation. Errors only on unusable input:
// oversized payloads, non-array JSON, or zero valid records.
func FromJSON(data []byte) ([]tracker.DayRecord, error) {
	if len(data) > maxImportBytes {
		return nil, errors.New("file too large (max 5 MB)")
	}

	var days []tracker.DayRecord
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, errors.New("invalid JSON file")
	}
	if len(days) > maxImportDays {
		return nil, fmt.Errorf("too many records (max %d)", maxImportDays)
	}

	var valid []tracker.DayRecord
	for _, day := range days {
		if !tracker.ValidDayRecord(day) {
			continue
		}
		kept := day.Entries[:0]
		for _, e := range day.Entries {
			if tracker.ValidEntry(e) {
				kept = append(kept, e)
			}
		}
		day.Entries = kept
		day.SortEntries()
		valid = append(valid, day)
	}

	if len(valid) == 0 {
		return nil, errors.New("no valid day records found in file")
	}
	return valid, nil
}
