package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwell-cms/inkwell-go/internal/model"
)

func init() {
	commentsCmd.AddCommand(commentsListCmd, commentsAddCmd, commentsReplyCmd, commentsEditCmd, commentsRmCmd)
	rootCmd.AddCommand(commentsCmd)
}

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and write article comments",
}

// renderTree prints the comment tree with two-space indentation per
// nesting level.
func renderTree(nodes []*model.CommentNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		author := n.AuthorUsername
		if author == "" {
			author = "?"
		}
		fmt.Printf("%s#%d %s: %s\n", indent, n.ID, author, n.Content)
		renderTree(n.Replies, depth+1)
	}
}

var commentsListCmd = &cobra.Command{
	Use:   "list [article-id]",
	Short: "Show an article's comment tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		nodes, err := c.Articles.Comments(cmd.Context(), id)
		if err != nil {
			return friendly(err)
		}
		if len(nodes) == 0 {
			fmt.Println("no comments")
			return nil
		}
		renderTree(nodes, 0)
		return nil
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add [article-id] [content]",
	Short: "Post a top-level comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		sec := c.Comments.Section(id)
		if err := sec.Load(cmd.Context()); err != nil {
			return friendly(err)
		}
		node, err := sec.Add(cmd.Context(), args[1])
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("posted #%d\n", node.ID)
		return nil
	},
}

var commentsReplyCmd = &cobra.Command{
	Use:   "reply [article-id] [comment-id] [content]",
	Short: "Reply to a comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		articleID, err := parseID(args[0])
		if err != nil {
			return err
		}
		parentID, err := parseID(args[1])
		if err != nil {
			return err
		}
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		sec := c.Comments.Section(articleID)
		if err := sec.Load(cmd.Context()); err != nil {
			return friendly(err)
		}
		node, err := sec.Reply(cmd.Context(), parentID, args[2])
		if err != nil {
			return friendly(err)
		}
		fmt.Printf("posted #%d\n", node.ID)
		return nil
	},
}

var commentsEditCmd = &cobra.Command{
	Use:   "edit [comment-id] [content]",
	Short: "Edit a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		if _, err := c.Comments.Update(cmd.Context(), id, args[1]); err != nil {
			return friendly(err)
		}
		fmt.Println("updated")
		return nil
	},
}

var commentsRmCmd = &cobra.Command{
	Use:   "rm [comment-id]",
	Short: "Delete a comment and its replies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		if err := c.Comments.Delete(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Println("deleted")
		return nil
	},
}
