package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// lecturerCmd represents the lecturer command
var lecturerCmd = &cobra.Command{
	Use:   "lecturer",
	Short: "Manage lecturers",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'lecturer' requires a subcommand (add, list, summary)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var lecturerAddCmd = &cobra.Command{
	Use:   "add <name> <department>",
	Short: "Add a lecturer directly in the configured storage",
	Long: `Add a lecturer directly in the configured storage backend, bypassing
the HTTP API and its admin token check.

Example:
  evalctl lecturer add "Dr. Turing" "Computer Science"`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := withStores(func(ctx context.Context, stores server.Stores, _ *config.EvalConfig) error {
			return addLecturer(ctx, os.Stdout, stores.Lecturers, args[0], args[1])
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add lecturer: %v\n", err)
			os.Exit(1)
		}
	},
}

var lecturerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lecturers",
	Run: func(cmd *cobra.Command, args []string) {
		err := withStores(func(ctx context.Context, stores server.Stores, _ *config.EvalConfig) error {
			return listLecturers(ctx, os.Stdout, stores.Lecturers)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list lecturers: %v\n", err)
			os.Exit(1)
		}
	},
}

var lecturerSummaryCmd = &cobra.Command{
	Use:   "summary <id>",
	Short: "Show the rating summary of a lecturer",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withStores(func(ctx context.Context, stores server.Stores, _ *config.EvalConfig) error {
			if _, err := stores.Lecturers.GetLecturer(ctx, args[0]); err != nil {
				return err
			}
			summary, err := stores.Evaluations.SummarizeLecturer(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d evaluation(s), average %.2f\n", summary.LecturerID, summary.Count, summary.Average)
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to summarize lecturer: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lecturerCmd)
	lecturerCmd.AddCommand(lecturerAddCmd)
	lecturerCmd.AddCommand(lecturerListCmd)
	lecturerCmd.AddCommand(lecturerSummaryCmd)
}

func newTable(header ...interface{}) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Separator = "  "
	table.AddRow(header...)
	return table
}

func printTable(w io.Writer, table *uitable.Table) error {
	_, err := fmt.Fprintln(w, table)
	return err
}

func addLecturer(ctx context.Context, w io.Writer, lecturers store.LecturersStore, name, department string) error {
	name = strings.TrimSpace(name)
	department = strings.TrimSpace(department)
	if name == "" || department == "" {
		return errors.New("name and department must not be empty")
	}

	lecturer, err := lecturers.AddLecturer(ctx, name, department)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Added %s with ID %s\n", lecturer.Name, lecturer.ID)
	return err
}

func listLecturers(ctx context.Context, w io.Writer, lecturers store.LecturersStore) error {
	all, err := lecturers.ListLecturers(ctx, store.Page{})
	if err != nil {
		return err
	}
	table := newTable("ID", "NAME", "DEPARTMENT")
	for _, l := range all {
		table.AddRow(l.ID, l.Name, l.Department)
	}
	return printTable(w, table)
}
