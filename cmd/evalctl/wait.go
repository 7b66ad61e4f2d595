package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the API server to be ready",
	Long: `Wait for the API server to be ready by polling the status endpoint.

This command will repeatedly check /status until it reports ok or the
maximum number of retries is reached. A server whose storage is unreachable
answers 503 and is not considered ready.

Example:
  evalctl wait
  evalctl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		url := fmt.Sprintf("http://localhost:%d/status", port)
		fmt.Println("Waiting for the API server to be ready...")
		if err := waitForServer(url, retries, time.Second); err != nil {
			fmt.Println()
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Println("API server is ready")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(url string, retries int, interval time.Duration) error {
	if retries < 1 {
		return fmt.Errorf("retries must be at least 1")
	}
	client := &http.Client{Timeout: 2 * time.Second}

	check := func() error {
		resp, err := client.Get(url)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status endpoint returned %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(retries-1))
	err := backoff.RetryNotify(check, policy, func(error, time.Duration) {
		fmt.Print(".")
	})
	if err != nil {
		return fmt.Errorf("not ready after %d attempts: %w", retries, err)
	}
	return nil
}
