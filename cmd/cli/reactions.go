package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle a like on a post",
	Long: `Like a post, or remove the like with --undo. Requires MIXIT_ID and
MIXIT_PASSWORD in the environment.

Examples:
  mixit like 42
  mixit like 42 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")
		return flipReaction(cmd, args[0], undo, "like")
	},
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark <post-id>",
	Short: "Toggle a bookmark on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")
		return flipReaction(cmd, args[0], undo, "bookmark")
	},
}

func flipReaction(cmd *cobra.Command, rawID string, undo bool, kind string) error {
	postID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid post id %q", rawID)
	}

	c, err := loggedInClient(cmd.Context())
	if err != nil {
		return err
	}

	// The toggle starts from the state being undone, so Flip lands on the
	// requested target.
	switch kind {
	case "like":
		t := c.LikeToggle(postID, undo)
		if err := t.Flip(cmd.Context()); err != nil {
			return err
		}
	case "bookmark":
		t := c.BookmarkToggle(postID, undo)
		if err := t.Flip(cmd.Context()); err != nil {
			return err
		}
	}

	action := kind + "d"
	if undo {
		action = "un" + action
	}
	fmt.Printf("Post %d %s\n", postID, action)
	return nil
}

func init() {
	likeCmd.Flags().Bool("undo", false, "Remove the like instead")
	bookmarkCmd.Flags().Bool("undo", false, "Remove the bookmark instead")
}
