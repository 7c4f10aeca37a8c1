package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mixit-kr/gateway/internal/client"
)

// loggedInClient builds a client and, when MIXIT_ID is set, logs in first.
// The session cookie lives in the process's jar, so authenticated commands
// log in per invocation.
func loggedInClient(ctx context.Context) (*client.Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	if id := os.Getenv("MIXIT_ID"); id != "" {
		if err := c.Login(ctx, id, os.Getenv("MIXIT_PASSWORD")); err != nil {
			return nil, fmt.Errorf("login failed: %w", err)
		}
	}
	return c, nil
}

var loginCmd = &cobra.Command{
	Use:   "login <id>",
	Short: "Verify credentials against the gateway",
	Long: `Check that an id/password pair authenticates. The password is read
from the MIXIT_PASSWORD environment variable.

Examples:
  MIXIT_PASSWORD=secret mixit login testuser`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		if err := c.Login(cmd.Context(), args[0], os.Getenv("MIXIT_PASSWORD")); err != nil {
			return err
		}
		fmt.Println("Logged in as", args[0])
		return nil
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the combination feed",
	Long: `Fetch the home feed, following pagination.

Examples:
  mixit feed
  mixit feed --pages 3 --size 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		pages, _ := cmd.Flags().GetInt("pages")

		c, err := loggedInClient(cmd.Context())
		if err != nil {
			return err
		}
		res, err := c.FeedAll(cmd.Context(), size, pages)
		if err != nil {
			return err
		}
		return printItems(res)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search combinations by keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		pages, _ := cmd.Flags().GetInt("pages")

		c, err := loggedInClient(cmd.Context())
		if err != nil {
			return err
		}
		res, err := c.SearchAll(cmd.Context(), args[0], size, pages)
		if err != nil {
			return err
		}
		return printItems(res)
	},
}

func printItems(res *client.InfiniteResult) error {
	items, err := res.Items()
	if err != nil {
		return err
	}
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, item := range items {
		var post struct {
			ID       int64  `json:"id"`
			Title    string `json:"title"`
			Category string `json:"category"`
		}
		if err := json.Unmarshal(item, &post); err != nil {
			continue
		}
		fmt.Printf("%8d  [%s]  %s\n", post.ID, post.Category, post.Title)
	}
	if res.HasMore() {
		fmt.Printf("... more available (next page %d)\n", *res.NextPage)
	}
	return nil
}

func init() {
	feedCmd.Flags().IntP("size", "s", 20, "Page size")
	feedCmd.Flags().IntP("pages", "p", 1, "Number of pages to fetch (0 = all)")
	searchCmd.Flags().IntP("size", "s", 20, "Page size")
	searchCmd.Flags().IntP("pages", "p", 1, "Number of pages to fetch (0 = all)")
}
