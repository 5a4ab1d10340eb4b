package layout

import (
	"context"
	"math/rand"
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
)

func deterministic() float64 { return 0.75 }

func distance(a, b *Node) float64 {
	return a.Pos.Sub(b.Pos).Magnitude()
}

func TestForceSimulation(t *testing.T) {
	for _, test := range []struct {
		Name       string
		Config     ForceSimulationConfig
		Nodes      []*Node
		Edges      []*Edge
		Assertions func(t *testing.T, nodes []*Node)
	}{
		{
			Name:  "push 2 unconnected nodes apart",
			Nodes: []*Node{{Name: "A", Pos: vector.Vector{-1, -1}}, {Name: "B", Pos: vector.Vector{1, 1}}},
			Edges: []*Edge{},
			Assertions: func(t *testing.T, nodes []*Node) {
				assert := assert.New(t)
				assert.Less(nodes[0].Pos.X(), -1.0)
				assert.Less(nodes[0].Pos.Y(), -1.0)
				assert.Greater(nodes[1].Pos.X(), 1.0)
				assert.Greater(nodes[1].Pos.Y(), 1.0)
			},
			Config: ForceSimulationConfig{RandomFloat: deterministic, ChargeStrength: -30, Centering: true},
		},
		{
			Name:  "pull 2 nodes towards the link rest length",
			Nodes: []*Node{{Name: "A", Pos: vector.Vector{-100, 0}}, {Name: "B", Pos: vector.Vector{100, 0}}},
			Edges: []*Edge{{Source: 0, Target: 1}},
			Assertions: func(t *testing.T, nodes []*Node) {
				assert := assert.New(t)
				assert.InDelta(50.0, distance(nodes[0], nodes[1]), 10.0)
				// the centering force keeps them around the origin
				assert.InDelta(0.0, nodes[0].Pos.X()+nodes[1].Pos.X(), 1e-6)
			},
			Config: ForceSimulationConfig{
				RandomFloat:    deterministic,
				ChargeStrength: -1e-6,
				LinkDistance:   func(*Edge) float64 { return 50 },
				Centering:      true,
			},
		},
		{
			Name:  "collision separates overlapping nodes",
			Nodes: []*Node{{Name: "A", Pos: vector.Vector{-5, 0}}, {Name: "B", Pos: vector.Vector{5, 0}}},
			Edges: []*Edge{},
			Assertions: func(t *testing.T, nodes []*Node) {
				assert.Greater(t, distance(nodes[0], nodes[1]), 70.0)
			},
			Config: ForceSimulationConfig{RandomFloat: deterministic, ChargeStrength: -1e-6, CollideRadius: 40},
		},
		{
			Name: "fixed node keeps its position",
			Nodes: []*Node{
				{Name: "center", Fixed: true, Pos: vector.Vector{0, 0}},
				{Name: "A", Pos: vector.Vector{10, 0}},
				{Name: "B", Pos: vector.Vector{0, 10}},
			},
			Edges: []*Edge{{Source: 0, Target: 1, Value: 1}, {Source: 0, Target: 2, Value: 9}},
			Assertions: func(t *testing.T, nodes []*Node) {
				assert := assert.New(t)
				assert.Equal(vector.Vector{0, 0}, nodes[0].Pos)
				assert.Greater(distance(nodes[0], nodes[2]), distance(nodes[0], nodes[1]), "heavier edge rests farther out")
			},
			Config: ForceSimulationConfig{
				RandomFloat:    deterministic,
				ChargeStrength: -400,
				LinkDistance:   func(e *Edge) float64 { return 100 + e.Value*10 },
				CollideRadius:  40,
				Centering:      true,
			},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			fs := NewForceSimulation(test.Config)
			nodes, stats := fs.ComputeLayout(context.Background(), test.Nodes, test.Edges)
			assert.Greater(t, stats.Iterations, 0)
			assert.False(t, fs.Running())
			test.Assertions(t, nodes)
		})
	}
}

func TestForceSimulation_cooling(t *testing.T) {
	fs := NewForceSimulation(ForceSimulationConfig{RandomFloat: deterministic})
	g := NewGraph([]*Node{{}, {}}, []*Edge{}, fs)
	ticks := 0
	for g.Tick() {
		ticks++
	}
	assert := assert.New(t)
	assert.InDelta(300, ticks, 2, "default decay cools down in ~300 ticks")
	assert.Less(fs.Alpha(), fs.Config().AlphaMin)
	assert.False(fs.Running())
	assert.False(g.Tick(), "idle simulation does not tick")

	fs.Restart(0.3)
	assert.True(fs.Running())
	assert.True(g.Tick())
	assert.Less(fs.Alpha(), 0.3)
}

func TestForceSimulation_alphaTargetKeepsRunning(t *testing.T) {
	fs := NewForceSimulation(ForceSimulationConfig{RandomFloat: deterministic})
	g := NewGraph([]*Node{{}, {}}, []*Edge{}, fs)
	fs.SetAlphaTarget(0.3)
	for i := 0; i < 1000; i++ {
		assert.True(t, g.Tick())
	}
	assert.InDelta(t, 0.3, fs.Alpha(), 1e-3)
	fs.SetAlphaTarget(0)
	ticks := 0
	for g.Tick() {
		ticks++
	}
	assert.Greater(t, ticks, 0)
	assert.False(t, fs.Running())
}

func TestForceSimulation_ComputeLayout_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := NewForceSimulation(ForceSimulationConfig{})
	_, stats := fs.ComputeLayout(ctx, []*Node{{}, {}}, []*Edge{{Source: 0, Target: 1}})
	assert.Equal(t, 0, stats.Iterations)
	assert.False(t, stats.Converged)
	assert.True(t, fs.Running())
}

func TestForceSimulation_ComputeLayout_converges(t *testing.T) {
	fs := NewForceSimulation(ForceSimulationConfig{RandomFloat: deterministic})
	_, stats := fs.ComputeLayout(context.Background(), []*Node{{}, {}}, []*Edge{{Source: 0, Target: 1}})
	assert.True(t, stats.Converged)
	assert.Greater(t, stats.Iterations, 0)
	assert.False(t, fs.Running())
}

func TestForceSimulation_ApplyConfig_defaults(t *testing.T) {
	fs := NewForceSimulation(ForceSimulationConfig{})
	conf := fs.Config()
	assert := assert.New(t)
	assert.Equal(DefaultForceSimulationConfig.AlphaDecay, conf.AlphaDecay)
	assert.Equal(DefaultForceSimulationConfig.ChargeStrength, conf.ChargeStrength)
	assert.Equal(DefaultLinkDistance, conf.LinkDistance(&Edge{}))
	assert.Equal(1.0, fs.Alpha())
	assert.Equal(0.0, fs.AlphaTarget())
}

func BenchmarkForceSimulation(b *testing.B) {
	for n := 10; n < b.N; n += 10 {
		fs := NewForceSimulation(DefaultForceSimulationConfig)
		nodes := []*Node{{Fixed: true, Pos: vector.Vector{0, 0}}}
		edges := []*Edge{}
		for i := 1; i < n; i++ {
			nodes = append(nodes, &Node{})
			edges = append(edges, &Edge{Source: 0, Target: i, Value: float64(rand.Intn(10) + 1)})
		}
		b.StartTimer()
		fs.ComputeLayout(context.Background(), nodes, edges)
		b.StopTimer()
	}
}
