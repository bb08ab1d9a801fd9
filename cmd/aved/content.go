package main

import (
	"fmt"
	"time"

	"github.com/aved-sa/aved-web/internal/api/sanitization"
	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/content"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Read static site content",
}

var contentGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print a static page",
	Long: `Print the title and text of a static page in the selected language.

Example:
  aved content get --type about --lang ar
  aved content get --type privacyPolicy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeFlag, _ := cmd.Flags().GetString("type")
		t, err := content.ParseType(typeFlag)
		if err != nil {
			return err
		}
		locale, err := localeFlag(cmd)
		if err != nil {
			return err
		}
		client, err := newBackendClient(cmd)
		if err != nil {
			return err
		}

		service := content.NewService(client, cache.NewMemoryStore(), 0, nil)

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Fetching content..."
		s.Start()
		page, err := service.Page(cmd.Context(), t, locale)
		s.Stop()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if page.Title != "" {
			fmt.Fprintf(out, "%s\n\n", page.Title)
		}
		fmt.Fprintln(out, sanitization.StripHTML(string(page.Body)))
		if page.ImageURL != "" {
			fmt.Fprintf(out, "\nImage: %s\n", page.ImageURL)
		}
		return nil
	},
}

func init() {
	contentGetCmd.Flags().String("type", string(content.About), "Content type: about, privacyPolicy or termsCondition")
	contentCmd.AddCommand(contentGetCmd)
}
