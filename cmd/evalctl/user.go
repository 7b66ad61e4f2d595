package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/model"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registered users",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (register, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Register a user directly in the configured storage",
	Long: `Register a user directly in the configured storage backend, bypassing
the HTTP API. The user receives the next free index.

Example:
  evalctl user register "Ada Lovelace" ada@example.edu`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := withStores(func(ctx context.Context, stores server.Stores, _ *config.EvalConfig) error {
			return registerUser(ctx, os.Stdout, stores.Users, args[0], args[1])
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register user: %v\n", err)
			os.Exit(1)
		}
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Run: func(cmd *cobra.Command, args []string) {
		err := withStores(func(ctx context.Context, stores server.Stores, _ *config.EvalConfig) error {
			users, err := stores.Users.ListUsers(ctx, store.Page{})
			if err != nil {
				return err
			}
			table := newTable("INDEX", "NAME", "EMAIL")
			for _, u := range users {
				table.AddRow(u.Index, u.Name, u.Email)
			}
			return printTable(os.Stdout, table)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userListCmd)
}

func registerUser(ctx context.Context, w io.Writer, users store.UsersStore, name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name must not be empty")
	}
	email, err := model.NormalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := users.RegisterUser(ctx, name, email)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Registered %s with index %s\n", user.Name, user.Index)
	return err
}
