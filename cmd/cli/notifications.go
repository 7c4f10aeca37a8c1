package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mixit-kr/gateway/internal/client"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications or watch the live stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")

		c, err := loggedInClient(cmd.Context())
		if err != nil {
			return err
		}
		page, err := c.Notifications(cmd.Context(), 0, size)
		if err != nil {
			return err
		}
		if output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		}
		var items []json.RawMessage
		if len(page.Content) > 0 {
			if err := json.Unmarshal(page.Content, &items); err != nil {
				return err
			}
		}
		for _, item := range items {
			var n struct {
				ID      string `json:"id"`
				Message string `json:"message"`
				Read    bool   `json:"read"`
			}
			if err := json.Unmarshal(item, &n); err != nil {
				continue
			}
			marker := "•"
			if n.Read {
				marker = " "
			}
			fmt.Printf("%s %s  %s\n", marker, n.ID, n.Message)
		}
		return nil
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream notifications as they arrive (Ctrl-C to stop)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loggedInClient(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Watching for notifications...")
		return c.Watch(cmd.Context(), func(ev client.Event) {
			if ev.Type == "error" {
				fmt.Fprintln(os.Stderr, "stream error:", ev.Data)
				return
			}
			if n, ok := ev.Notification(); ok {
				fmt.Printf("%s  %s\n", n.ID, n.Message)
				return
			}
			fmt.Println(ev.Data)
		})
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loggedInClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := c.MarkRead(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Marked read:", args[0])
		return nil
	},
}

func init() {
	notificationsCmd.Flags().IntP("size", "s", 20, "Page size")
	notificationsCmd.AddCommand(notificationsWatchCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
}
