package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/roseyco/agency-portal/internal/pkg/config"
	"github.com/roseyco/agency-portal/pkg/logger"
)

const serviceName = "agency-portal"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "portal",
	Short:         "Rosey Co agency portal",
	Long:          "Serves the agency portal: session login, role-gated workspaces and their navigation.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.LoadFrom(cmd.Context(), envconfig.OsLookuper())
		if err != nil {
			return err
		}
		cfg = loaded

		logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.Env == "development",
			Service: serviceName,
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(accountCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
