package controller

import (
	"context"
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
	"github.com/xpsychometrics/collabmap/db/static"
	"github.com/xpsychometrics/collabmap/graph"
)

func smallGraph(n int) *graph.ForceGraph {
	ds := static.Dataset()
	return graph.BuildForceGraph(ds.Center, ds.Collaborations[:n], graph.BuildConfig{Width: 1200, Height: 500})
}

func TestForceSimulationLayouter_GetNodePositions_beforeReload(t *testing.T) {
	l := NewForceSimulationLayouter()
	assert.False(t, l.GetNodePositions(context.Background(), smallGraph(2)))
}

func TestForceSimulationLayouter_GetNodePositions_simple(t *testing.T) {
	l := NewForceSimulationLayouter()
	l.positions = map[string]vector.Vector{
		"Minneapolis":                {0, 0},
		"Jiangxi_Normal_University":  {1, 2},
		"Zhejiang_Normal_University": {3, 4},
	}
	g := smallGraph(2)
	assert := assert.New(t)
	assert.True(l.GetNodePositions(context.Background(), g))
	assert.Equal(vector.Vector{1, 2}, g.Nodes[1].Pos)
	assert.Equal(vector.Vector{3, 4}, g.Nodes[2].Pos)
}

func TestForceSimulationLayouter_GetNodePositions_missingNode(t *testing.T) {
	l := NewForceSimulationLayouter()
	l.positions = map[string]vector.Vector{"Minneapolis": {0, 0}, "Jiangxi_Normal_University": {1, 2}}
	g := smallGraph(2)
	before := vector.Vector{g.Nodes[1].Pos.X(), g.Nodes[1].Pos.Y()}
	assert := assert.New(t)
	assert.False(l.GetNodePositions(context.Background(), g))
	assert.Equal(before, g.Nodes[1].Pos, "nothing assigned on a miss")
}

func TestForceSimulationLayouter_Reload(t *testing.T) {
	l := NewForceSimulationLayouter()
	g := smallGraph(5)
	stats := l.Reload(context.Background(), g)
	assert := assert.New(t)
	assert.Greater(stats.Iterations, 250)
	assert.Len(l.positions, 6)
	assert.Equal(vector.Vector{0, 0}, l.positions["Minneapolis"], "the center stays pinned")

	again := smallGraph(5)
	assert.True(l.GetNodePositions(context.Background(), again))
	for i := range g.Nodes {
		assert.Equal(g.Nodes[i].Pos, again.Nodes[i].Pos)
	}
}

func TestForceSimulationLayouter_Reload_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewForceSimulationLayouter()
	stats := l.Reload(ctx, smallGraph(3))
	assert := assert.New(t)
	assert.Equal(0, stats.Iterations)
	assert.False(stats.Converged)
	assert.False(l.GetNodePositions(context.Background(), smallGraph(3)), "unsettled positions are not cached")
}

func TestForceSimulationLayouter_Reload_canceledKeepsPreviousRun(t *testing.T) {
	l := NewForceSimulationLayouter()
	stats := l.Reload(context.Background(), smallGraph(3))
	assert := assert.New(t)
	assert.True(stats.Converged)
	settled := smallGraph(3)
	assert.True(l.GetNodePositions(context.Background(), settled))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Reload(ctx, smallGraph(3))
	again := smallGraph(3)
	assert.True(l.GetNodePositions(context.Background(), again))
	for i := range settled.Nodes {
		assert.Equal(settled.Nodes[i].Pos, again.Nodes[i].Pos)
	}
}
