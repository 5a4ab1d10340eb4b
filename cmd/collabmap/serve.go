package main

import (
	"github.com/spf13/cobra"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/internal/app"
	"github.com/xpsychometrics/collabmap/internal/controller"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve maps and data over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunServer(cmd.Context(), app.GetEnvConfig(), db.GetEnvConfig(), controller.GetEnvConfig())
	},
}
