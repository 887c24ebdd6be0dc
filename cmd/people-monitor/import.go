package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"people-monitor-go/internal/app"
	"people-monitor-go/internal/config"
	"people-monitor-go/internal/domain/importer"
	"people-monitor-go/internal/sheet"

	"github.com/spf13/cobra"
)

type importFlags struct {
	eventID string
	ownerID string
	file    string
}

type importSummary struct {
	AcceptedCount int            `json:"accepted_count"`
	TotalRows     int            `json:"total_rows"`
	Errors        []string       `json:"errors"`
	People        []importPerson `json:"people"`
}

type importPerson struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Contact string   `json:"contact"`
	Tags    []string `json:"tags"`
}

func summarize(result importer.Result) importSummary {
	summary := importSummary{
		AcceptedCount: result.AcceptedCount(),
		TotalRows:     result.Total,
		Errors:        result.Errors,
		People:        make([]importPerson, 0, len(result.People)),
	}
	if summary.Errors == nil {
		summary.Errors = []string{}
	}
	for _, person := range result.People {
		summary.People = append(summary.People, importPerson{
			ID:      person.ID,
			Name:    person.Name,
			Contact: person.Contact,
			Tags:    person.Tags,
		})
	}
	return summary
}

func writeSummary(w io.Writer, result importer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summarize(result))
}

var errImportMemoryStore = errors.New("import needs a persistent store: store.driver memory starts empty on every run")

// checkImportStore rejects stores that cannot hold the target event between runs.
func checkImportStore(cfg config.StoreConfig) error {
	if cfg.Driver == config.DriverMemory {
		return errImportMemoryStore
	}
	return nil
}

func importCommand() *cobra.Command {
	flags := importFlags{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a roster spreadsheet into an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := commonRun(cmd)
			if err != nil {
				return err
			}
			if err := checkImportStore(cfg.Store); err != nil {
				return err
			}

			file, err := os.Open(flags.file)
			if err != nil {
				return fmt.Errorf("open %s: %w", flags.file, err)
			}
			defer file.Close()

			parsed, err := sheet.Parse(filepath.Base(flags.file), file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", flags.file, err)
			}

			application, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			result, err := application.Importer().ImportSheet(cmd.Context(), flags.ownerID, flags.eventID, parsed)
			if err != nil {
				return err
			}

			log.Info("import: done", "event_id", flags.eventID, "accepted", result.AcceptedCount(), "rejected", len(result.Errors))
			return writeSummary(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&flags.eventID, "event", "", "event id to append people to")
	cmd.Flags().StringVar(&flags.ownerID, "owner", "", "owner id of the event")
	cmd.Flags().StringVar(&flags.file, "file", "", "path to a .xlsx, .xlsm or .csv roster")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
