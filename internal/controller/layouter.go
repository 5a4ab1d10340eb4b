package controller

import (
	"context"
	"sync"

	"github.com/quartercastle/vector"
	"github.com/rs/zerolog/log"
	"github.com/xpsychometrics/collabmap/graph"
	"github.com/xpsychometrics/collabmap/layout"
)

// Layouter precomputes converged node positions for the force graph, so that
// served assets show a settled layout instead of the initial circle.
//
//go:generate mockgen -destination layout_mock.go -package controller . Layouter
type Layouter interface {
	// GetNodePositions assigns positions from a past run. It is a quick call
	// and returns false if some node of g was not part of that run.
	GetNodePositions(context.Context, *graph.ForceGraph) bool
	// Reload runs the simulation until it idles or ctx is done.
	Reload(context.Context, *graph.ForceGraph) layout.Stats
}

func NewLayouter() Layouter {
	return NewForceSimulationLayouter()
}

// ForceSimulationLayouter implements Layouter and keeps the positions of the
// last complete run by node name.
type ForceSimulationLayouter struct {
	config    layout.ForceSimulationConfig
	mu        sync.RWMutex
	positions map[string]vector.Vector
}

func NewForceSimulationLayouter() *ForceSimulationLayouter {
	return &ForceSimulationLayouter{config: graph.SimulationConfig()}
}

func (l *ForceSimulationLayouter) GetNodePositions(ctx context.Context, g *graph.ForceGraph) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.positions == nil {
		return false
	}
	for _, node := range g.Nodes {
		if _, exists := l.positions[node.Name]; !exists {
			log.Ctx(ctx).Debug().Msgf("no cached position for node '%s'", node.Name)
			return false
		}
	}
	for _, node := range g.Nodes {
		pos := l.positions[node.Name]
		node.Pos = vector.Vector{pos.X(), pos.Y()}
	}
	return true
}

func (l *ForceSimulationLayouter) Reload(ctx context.Context, g *graph.ForceGraph) layout.Stats {
	fs := layout.NewForceSimulation(l.config)
	_, stats := fs.ComputeLayout(ctx, g.Nodes, g.Edges)
	if !stats.Converged {
		log.Ctx(ctx).Warn().Msgf("layout stopped after %d iterations: %v", stats.Iterations, ctx.Err())
		return stats
	}
	positions := make(map[string]vector.Vector, len(g.Nodes))
	for _, node := range g.Nodes {
		positions[node.Name] = vector.Vector{node.Pos.X(), node.Pos.Y()}
	}
	l.mu.Lock()
	l.positions = positions
	l.mu.Unlock()
	return stats
}
