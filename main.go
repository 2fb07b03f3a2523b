package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/proteinpal/internal/export"
	"github.com/sadopc/proteinpal/internal/store"
	"github.com/sadopc/proteinpal/internal/tracker"
	"github.com/sadopc/proteinpal/internal/tui"
)

func main() {
	importPath := flag.String("import", "", "import day records from a JSON export and exit")
	flag.Parse()

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if *importPath != "" {
		if err := runImport(s, *importPath); err != nil {
			fmt.Fprintf(os.Stderr, "import error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	clock := tracker.SystemClock{}

	// Settle yesterday's outcome before the UI reads the streak.
	streak := s.Streak().ReconcileOnLoad(clock, func(dateKey string) bool {
		return tracker.IsDaySuccessful(s.Day(dateKey))
	})
	s.SaveStreak(streak)

	app := tui.NewApp(s, clock)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runImport(s *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	days, err := export.FromJSON(data)
	if err != nil {
		return err
	}

	for _, day := range days {
		if !s.SaveDay(day) {
			return fmt.Errorf("could not save day %s", day.Date)
		}
	}

	fmt.Printf("imported %d day records\n", len(days))
	return nil
}
