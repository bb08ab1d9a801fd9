package main

import (
	"fmt"

	"github.com/aved-sa/aved-web/internal/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show the CLI version. With --server, also show the version a running
site reports on its health endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := version.GetBuildInfo()
		fmt.Fprintf(out, "aved %s\n", version.Info())
		fmt.Fprintf(out, "Go: %s, Platform: %s\n", info.GoVersion, info.Platform)

		serverURL, _ := cmd.Flags().GetString("server")
		if serverURL == "" {
			return nil
		}

		server, err := version.FetchServerInfo(cmd.Context(), serverURL)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Server: %s (status %s, cache %s)\n", server.Version, server.Status, server.Cache)
		if version.IsUpdateAvailable(info.Version, server.Version) {
			fmt.Fprintln(out, "The server runs a newer build than this CLI.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().String("server", "", "Site URL to compare against, e.g. https://aved-sa.com")
}
