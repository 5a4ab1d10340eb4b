// stress-test fills postgres with a synthetic dataset of many collaborations
// and reports how long layout and label placement take on it.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/db/postgres"
	"github.com/xpsychometrics/collabmap/db/static"
	"github.com/xpsychometrics/collabmap/graph"
	"github.com/xpsychometrics/collabmap/graph/model"
	"github.com/xpsychometrics/collabmap/layout"
	"github.com/xpsychometrics/collabmap/scene"
)

var countries = []string{model.HomeCountry, "China Mainland", "Turkey", "Germany", "Brazil", "Kenya", "Japan"}

// generate returns a valid dataset with n collaborations around the built-in
// center.
func generate(n int, rnd *rand.Rand) *model.Dataset {
	ds := &model.Dataset{Center: static.Dataset().Center}
	for i := 0; i < n; i++ {
		ds.Collaborations = append(ds.Collaborations, model.CollaborationRecord{
			Institution: fmt.Sprintf("Institute %04d", i),
			Country:     countries[rnd.Intn(len(countries))],
			City:        fmt.Sprintf("City %d", i%50),
			Weight:      1 + rnd.Intn(10),
			Location:    model.GeoPoint{Lat: rnd.Float64()*140 - 60, Lng: rnd.Float64()*360 - 180},
		})
	}
	return ds
}

type report struct {
	Records          int
	LayoutIterations int
	Layout           time.Duration
	Labels           time.Duration
	LabelFallbacks   int
}

func measure(ctx context.Context, ds *model.Dataset) report {
	r := report{Records: len(ds.Collaborations)}
	g := graph.BuildForceGraph(ds.Center, ds.Collaborations, graph.BuildConfig{Width: 1200, Height: 500})
	_, stats := layout.NewForceSimulation(graph.SimulationConfig()).ComputeLayout(ctx, g.Nodes, g.Edges)
	r.LayoutIterations, r.Layout = stats.Iterations, stats.TotalTime
	start := time.Now()
	sc := scene.NewStaticScene(scene.StaticConfig{Variant: scene.VariantGeo})
	r.LabelFallbacks = sc.Layout(ds).Fallbacks
	r.Labels = time.Since(start)
	return r
}

var (
	records int
	seed    int64
	seedDB  bool
)

var rootCmd = &cobra.Command{
	Use:   "stress-test",
	Short: "Measure layout on a large synthetic dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		ds := generate(records, rand.New(rand.NewSource(seed)))
		if err := db.Validate(ds); err != nil {
			return err
		}
		if seedDB {
			pg, err := postgres.NewPostgresDB(db.GetEnvConfig())
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := pg.Seed(ctx, ds); err != nil {
				return err
			}
			log.Ctx(ctx).Info().Msgf("seeded %d collaborations", len(ds.Collaborations))
		}
		log.Ctx(ctx).Info().Msgf("%+v", measure(ctx, ds))
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVarP(&records, "records", "n", 1000, "number of collaborations")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	rootCmd.Flags().BoolVar(&seedDB, "db", false, "also replace the postgres dataset")
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := rootCmd.ExecuteContext(logger.WithContext(context.Background())); err != nil {
		logger.Fatal().Msgf("%v", err)
	}
}
