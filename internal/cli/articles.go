package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkwell-cms/inkwell-go/internal/client"
	"github.com/inkwell-cms/inkwell-go/internal/model"
)

var (
	flagPage     int
	flagPageSize int
	flagSearch   string
	flagTag      string
	flagStatus   string

	flagTitle   string
	flagContent string
	flagTags    []string
)

func init() {
	articlesListCmd.Flags().IntVar(&flagPage, "page", 0, "page number")
	articlesListCmd.Flags().IntVar(&flagPageSize, "page-size", 0, "results per page")
	articlesListCmd.Flags().StringVar(&flagSearch, "search", "", "full text search")
	articlesListCmd.Flags().StringVar(&flagTag, "tag", "", "filter by tag")
	articlesListCmd.Flags().StringVar(&flagStatus, "status", "", "filter by status (draft|published|archived)")

	for _, c := range []*cobra.Command{articlesCreateCmd, articlesUpdateCmd} {
		c.Flags().StringVar(&flagTitle, "title", "", "article title")
		c.Flags().StringVar(&flagContent, "content", "", "article body")
		c.Flags().StringSliceVar(&flagTags, "tags", nil, "article tags")
		c.Flags().StringVar(&flagStatus, "status", "", "article status")
	}
	_ = articlesCreateCmd.MarkFlagRequired("title")

	articlesCmd.AddCommand(articlesListCmd, articlesGetCmd, articlesCreateCmd, articlesUpdateCmd, articlesDeleteCmd)
	rootCmd.AddCommand(articlesCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Browse and manage articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		out, err := c.Articles.List(cmd.Context(), client.ListParams{
			Page:     flagPage,
			PageSize: flagPageSize,
			Search:   flagSearch,
			Tag:      flagTag,
			Status:   model.ArticleStatus(flagStatus),
		})
		if err != nil {
			return friendly(err)
		}
		printJSON(out)
		return nil
	},
}

var articlesGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one article",
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

		out, err := c.Articles.Get(cmd.Context(), id)
		if err != nil {
			return friendly(err)
		}
		printJSON(out)
		return nil
	},
}

var articlesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an article",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newAPIClient()
		if err != nil {
			return err
		}
		defer closer()

		out, err := c.Articles.Create(cmd.Context(), client.ArticleInput{
			Title:   flagTitle,
			Content: flagContent,
			Tags:    flagTags,
			Status:  model.ArticleStatus(flagStatus),
		})
		if err != nil {
			return friendly(err)
		}
		printJSON(out)
		return nil
	},
}

var articlesUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an article (only set flags change)",
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

		fields := map[string]any{}
		if cmd.Flags().Changed("title") {
			fields["title"] = flagTitle
		}
		if cmd.Flags().Changed("content") {
			fields["content"] = flagContent
		}
		if cmd.Flags().Changed("tags") {
			fields["tags"] = flagTags
		}
		if cmd.Flags().Changed("status") {
			fields["status"] = flagStatus
		}
		if len(fields) == 0 {
			return fmt.Errorf("nothing to update")
		}

		out, err := c.Articles.Patch(cmd.Context(), id, fields)
		if err != nil {
			return friendly(err)
		}
		printJSON(out)
		return nil
	},
}

var articlesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an article",
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

		if err := c.Articles.Delete(cmd.Context(), id); err != nil {
			return friendly(err)
		}
		fmt.Println("deleted")
		return nil
	},
}
