package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/proteinpal/internal/tracker"
)

// ToCSV writes all day records to path, one row per entry. Days without
// entries still get a row so goals and water carry through.
func ToCSV(days []tracker.DayRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Date", "Goal", "Water (oz)", "Entry Name", "Protein (g)", "Category", "Time"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, day := range days {
		if len(day.Entries) == 0 {
			row := []string{day.Date, fmt.Sprintf("%d", day.Goal), fmt.Sprintf("%d", day.WaterOz), "", "", "", ""}
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}

		for i, e := range day.Entries {
			// Water is a per-day figure; only the first row carries it.
			water := ""
			if i == 0 {
				water = fmt.Sprintf("%d", day.WaterOz)
			}
			row := []string{
				day.Date,
				fmt.Sprintf("%d", day.Goal),
				water,
				e.Name,
				fmt.Sprintf("%d", e.Protein),
				string(e.Category),
				time.UnixMilli(e.Timestamp).UTC().Format(time.RFC3339),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}
