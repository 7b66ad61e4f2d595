package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// evaluationCmd represents the evaluation command
var evaluationCmd = &cobra.Command{
	Use:   "evaluation",
	Short: "Inspect submitted evaluations",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'evaluation' requires a subcommand (list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var evaluationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List submitted evaluations",
	Long: `List submitted evaluations in submission order.

Example:
  evalctl evaluation list
  evalctl evaluation list --lecturer L0001
  evalctl evaluation list --user 0002`,
	Run: func(cmd *cobra.Command, args []string) {
		lecturerID, _ := cmd.Flags().GetString("lecturer")
		userIndex, _ := cmd.Flags().GetString("user")

		filter := store.EvaluationFilter{LecturerID: lecturerID, UserIndex: userIndex}
		err := withStores(func(ctx context.Context, stores server.Stores, _ *config.EvalConfig) error {
			return listEvaluations(ctx, os.Stdout, stores.Evaluations, filter)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list evaluations: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evaluationCmd)
	evaluationCmd.AddCommand(evaluationListCmd)
	evaluationListCmd.Flags().String("lecturer", "", "Only evaluations of this lecturer ID")
	evaluationListCmd.Flags().String("user", "", "Only evaluations by this user index")
}

func listEvaluations(ctx context.Context, w io.Writer, evaluations store.EvaluationsStore, filter store.EvaluationFilter) error {
	all, err := evaluations.ListEvaluations(ctx, filter)
	if err != nil {
		return err
	}
	table := newTable("USER", "LECTURER", "RATING", "COMMENTS")
	for _, e := range all {
		comments := "-"
		if e.Comments != nil {
			comments = *e.Comments
		}
		table.AddRow(e.UserIndex, e.LecturerID, e.Rating, comments)
	}
	return printTable(w, table)
}
