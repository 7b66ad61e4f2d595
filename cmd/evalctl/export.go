package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all users, lecturers and evaluations",
	Long: `Export the users, lecturers and evaluations of the configured storage
backend as a single JSON or YAML document. The document can be used to move
data between the json and postgres backends.

Example:
  evalctl export
  evalctl export --output yaml --file backup.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		file, _ := cmd.Flags().GetString("file")

		var w io.Writer = os.Stdout
		if file != "" {
			f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
				os.Exit(1)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		err := withStores(func(ctx context.Context, stores server.Stores, cfg *config.EvalConfig) error {
			return runExport(ctx, w, stores, cfg.StorageBackend.String(), output, time.Now())
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "json", "Output format (json or yaml)")
	exportCmd.Flags().StringP("file", "f", "", "Write to this file instead of stdout")
}

// exportDocument is the archive written by the export command
type exportDocument struct {
	ExportedAt  time.Time          `json:"exported_at" yaml:"exported_at"`
	Backend     string             `json:"backend" yaml:"backend"`
	Users       []store.User       `json:"users" yaml:"users"`
	Lecturers   []store.Lecturer   `json:"lecturers" yaml:"lecturers"`
	Evaluations []store.Evaluation `json:"evaluations" yaml:"evaluations"`
}

func runExport(ctx context.Context, w io.Writer, stores server.Stores, backend, output string, now time.Time) error {
	if output != "json" && output != "yaml" {
		return fmt.Errorf("unknown output format %q", output)
	}

	users, err := stores.Users.ListUsers(ctx, store.Page{})
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	lecturers, err := stores.Lecturers.ListLecturers(ctx, store.Page{})
	if err != nil {
		return fmt.Errorf("failed to list lecturers: %w", err)
	}
	evaluations, err := stores.Evaluations.ListEvaluations(ctx, store.EvaluationFilter{})
	if err != nil {
		return fmt.Errorf("failed to list evaluations: %w", err)
	}

	doc := exportDocument{
		ExportedAt:  now.UTC(),
		Backend:     backend,
		Users:       nonNil(users),
		Lecturers:   nonNil(lecturers),
		Evaluations: nonNil(evaluations),
	}

	if output == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
