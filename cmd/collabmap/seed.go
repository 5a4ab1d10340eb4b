package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/db/postgres"
	"github.com/xpsychometrics/collabmap/db/static"
	"github.com/xpsychometrics/collabmap/db/yamlfile"
	"github.com/xpsychometrics/collabmap/graph/model"
)

var seedFile string

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML dataset to load (default: built-in dataset)")
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the postgres dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var (
			ds  *model.Dataset
			err error
		)
		if seedFile == "" {
			ds = static.Dataset()
		} else if ds, err = yamlfile.New(seedFile).Dataset(ctx); err != nil {
			return err
		}
		pg, err := postgres.NewPostgresDB(db.GetEnvConfig())
		if err != nil {
			return err
		}
		defer pg.Close()
		var seeder db.Seeder = pg
		if err := seeder.Seed(ctx, ds); err != nil {
			return err
		}
		log.Ctx(ctx).Info().Msgf("seeded %d collaborations", len(ds.Collaborations))
		return nil
	},
}
