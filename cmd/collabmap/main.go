// Command collabmap serves, renders and publishes the collaboration map.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/internal/app"
	"github.com/xpsychometrics/collabmap/internal/controller"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "collabmap",
	Short: "Collaboration map of the Minneapolis group",
	Long: `collabmap draws the research collaborations of one home institution as
a force layout or as a projected world map.

Configuration is read from the environment, optionally seeded by a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// a missing .env is fine, the environment may be set already
		_ = godotenv.Load(envFile)
		app.SetupLogging(app.GetEnvConfig())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables")
}

// newController builds a controller on the configured dataset source.
func newController() (*controller.Controller, error) {
	backend, err := app.OpenDB(db.GetEnvConfig())
	if err != nil {
		return nil, err
	}
	return controller.NewController(backend, controller.NewLayouter(), controller.GetEnvConfig()), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Msgf("%v", err)
		stop()
		os.Exit(1)
	}
}
