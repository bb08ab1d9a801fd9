package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/config"
	"github.com/aved-sa/aved-web/internal/i18n"
	"github.com/aved-sa/aved-web/internal/logging"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger(verbose bool) {
	logConfig := logging.DefaultConfig("~/.aved/cli.log")
	logConfig.Level = logging.LevelWarn
	if verbose {
		logConfig.Level = logging.LevelDebug
	}
	logging.Configure(logConfig)
	logger = logging.GetLogger()
}

var rootCmd = &cobra.Command{
	Use:   "aved",
	Short: "AVED CLI - operate the AVED website backend",
	Long: `aved talks to the content API behind the AVED website: it prints the
localized static pages and sends contact inquiries through the same workflow
as the site's contact form.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		initLogger(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "Backend API base URL (defaults to BACKEND_BASE_URL)")
	rootCmd.PersistentFlags().String("lang", string(i18n.Default), "Language of the output (en or ar)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(versionCmd)
}

// newBackendClient builds a client from the environment and the --backend flag
func newBackendClient(cmd *cobra.Command) (*backend.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	baseURL := cfg.BackendBaseURL
	if flag, _ := cmd.Flags().GetString("backend"); flag != "" {
		baseURL = flag
	}
	return backend.NewClient(baseURL, cfg.BackendTimeout, backend.WithLogger(logger)), nil
}

// localeFlag resolves --lang
func localeFlag(cmd *cobra.Command) (i18n.Locale, error) {
	value, _ := cmd.Flags().GetString("lang")
	locale, ok := i18n.Parse(value)
	if !ok {
		return i18n.Default, fmt.Errorf("unsupported language %q (use en or ar)", value)
	}
	return locale, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
