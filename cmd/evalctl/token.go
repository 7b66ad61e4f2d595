package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/middleware"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage admin tokens",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand (issue)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue an admin token for lecturer management",
	Long: `Issue an HS256 admin token signed with admin_token_secret. The token
authorizes POST /lecturers when sent as "Authorization: Bearer <token>".

Example:
  evalctl token issue --subject registrar --ttl 24h`,
	Run: func(cmd *cobra.Command, args []string) {
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := issueToken(os.Stdout, cfg.AdminTokenSecret, subject, ttl, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenIssueCmd.Flags().StringP("subject", "s", "admin", "Token subject")
	tokenIssueCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
}

func issueToken(w io.Writer, secret, subject string, ttl time.Duration, now time.Time) error {
	if secret == "" {
		return errors.New("admin_token_secret is not configured (set EVAL_ADMIN_TOKEN_SECRET)")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	token, err := middleware.IssueAdminToken(secret, subject, ttl, now)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
