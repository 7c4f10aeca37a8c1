package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mixit-kr/gateway/internal/client"
)

var (
	gatewayURL string = "http://localhost:8989"
	output     string = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "mixit",
	Short: "Mixit CLI - browse combinations and notifications from the terminal",
	Long: `Mixit CLI provides command-line access to the Mixit gateway.
Log in, browse the feed, search combinations, react to posts, and
follow notifications in real time.`,
}

func newClient() (*client.Client, error) {
	return client.New(gatewayURL)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", gatewayURL, "Gateway server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
