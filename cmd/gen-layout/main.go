/*
 * gen-layout runs the force simulation on the dataset received on stdin
 * (YAML or JSON) and prints the settled node positions as JSON
 */
package main

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xpsychometrics/collabmap/db/yamlfile"
	"github.com/xpsychometrics/collabmap/graph"
	"github.com/xpsychometrics/collabmap/layout"
)

type position struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fixed bool    `json:"fixed,omitempty"`
}

type output struct {
	Nodes      []position `json:"nodes"`
	Iterations int        `json:"iterations"`
}

func genLayout(ctx context.Context, in io.Reader, out io.Writer) error {
	ds, err := yamlfile.Decode(in)
	if err != nil {
		return err
	}
	g := graph.BuildForceGraph(ds.Center, ds.Collaborations, graph.BuildConfig{Width: 1200, Height: 500})
	fs := layout.NewForceSimulation(graph.SimulationConfig())
	_, stats := fs.ComputeLayout(ctx, g.Nodes, g.Edges)
	log.Ctx(ctx).Info().Msgf("Stats: %#v", stats)
	res := output{Iterations: stats.Iterations}
	for _, node := range g.Nodes {
		if math.IsNaN(node.Pos.X()) || math.IsNaN(node.Pos.Y()) {
			log.Ctx(ctx).Warn().Msgf("node '%s' has no position", node.Name)
			continue
		}
		res.Nodes = append(res.Nodes, position{Name: node.Name, X: node.Pos.X(), Y: node.Pos.Y(), Fixed: node.Fixed})
	}
	return json.NewEncoder(out).Encode(&res)
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := genLayout(logger.WithContext(context.Background()), os.Stdin, os.Stdout); err != nil {
		logger.Fatal().Msgf("%v", err)
	}
}
