package layout

import (
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
)

func TestQuadTree_Insert(t *testing.T) {
	fs := NewForceSimulation(ForceSimulationConfig{})
	qt := NewQuadTree(&QuadTreeConfig{CapacityOfEachBlock: 2}, fs, Rect{X: 0, Y: 0, Width: 10.0, Height: 10.0})
	p11, p22 := &Node{Pos: vector.Vector{1.0, 1.0}}, &Node{Pos: vector.Vector{2.0, 2.0}}
	assert := assert.New(t)
	assert.True(qt.Insert(p11))
	assert.True(qt.Insert(p22))
	assert.Equal([]*Node{p11, p22}, qt.Nodes)
	for i := 0; i < 4; i++ {
		assert.Nil(qt.Children[i], "children should not exist, below CapacityOfEachBlock")
	}
	p33 := &Node{Pos: vector.Vector{3.0, 3.0}}
	assert.True(qt.Insert(p33))
	assert.Nil(qt.Nodes, "nodes move into the children on subdivision")
	assert.NotNil(qt.Children[0])
	assert.Nil(qt.Children[0].Nodes, "top left was full as well and got subdivided")
	assert.Equal([]*Node{p11, p22}, qt.Children[0].Children[0].Nodes)
	assert.Equal([]*Node{p33}, qt.Children[0].Children[3].Nodes)
	assert.False(qt.Insert(&Node{Pos: vector.Vector{11, 11}}), "outside the region")
}

func TestQuadTree_Insert_sameSpot(t *testing.T) {
	fs := NewForceSimulation(ForceSimulationConfig{})
	qt := NewQuadTree(&QuadTreeConfig{CapacityOfEachBlock: 1, MaxDepth: 5}, fs, Rect{X: 0, Y: 0, Width: 8, Height: 8})
	for i := 0; i < 10; i++ {
		assert.True(t, qt.Insert(&Node{Pos: vector.Vector{1, 1}}))
	}
	qt.CalculateMasses()
	assert.Equal(t, 10, qt.Count)
	assert.InDelta(t, 1.0, qt.Center.X(), 1e-12)
	assert.InDelta(t, 1.0, qt.Center.Y(), 1e-12)
}

func TestQuadTree_CalculateMasses(t *testing.T) {
	rect := Rect{X: 0.0, Y: 0.0, Width: 10.0, Height: 10.0}
	fs := NewForceSimulation(ForceSimulationConfig{Theta: 0.5})
	qt := NewQuadTree(&QuadTreeConfig{CapacityOfEachBlock: 2}, fs, rect)
	graph := NewGraph(
		[]*Node{
			{Name: "A", Pos: vector.Vector{2.5, 2.5}},
			{Name: "B", Pos: vector.Vector{7.5, 2.5}},
			{Name: "C", Pos: vector.Vector{2.5, 7.5}},
		},
		[]*Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}},
		fs,
	)
	for _, n := range graph.Nodes {
		qt.Insert(n)
	}
	qt.CalculateMasses()
	assert := assert.New(t)
	assert.Equal(3, qt.Count)
	assert.InDelta(3*DefaultForceSimulationConfig.ChargeStrength, qt.TotalCharge, 1e-9)
	assert.InDelta(12.5/3, qt.Center.X(), 1e-9)
	assert.InDelta(12.5/3, qt.Center.Y(), 1e-9)
	assert.Equal(vector.Vector{2.5, 2.5}, qt.Children[0].Center)
	assert.Equal(vector.Vector{7.5, 2.5}, qt.Children[1].Center)
	assert.Equal(vector.Vector{2.5, 7.5}, qt.Children[2].Center)
	assert.Equal(0, qt.Children[3].Count, "all 3 nodes already in first 3 buckets")
}

func TestQuadTree_CalculateForce_matchesNaive(t *testing.T) {
	positions := []vector.Vector{{1, 1}, {2, 8}, {9, 3}, {4, 4}, {7, 7}, {5, 1}, {8, 9}}
	newNodes := func() []*Node {
		nodes := []*Node{}
		for _, p := range positions {
			nodes = append(nodes, &Node{Pos: vector.Vector{p.X(), p.Y()}})
		}
		return nodes
	}
	// with a tiny theta no cell is ever aggregated
	fs := NewForceSimulation(ForceSimulationConfig{Theta: 1e-9})
	exact := NewGraph(newNodes(), []*Edge{}, fs)
	exact.repulsionBarnesHut(NewQuadTree(&QuadTreeConfig{CapacityOfEachBlock: 1}, fs, Rect{}))
	naive := NewGraph(newNodes(), []*Edge{}, fs)
	naive.repulsionNaive()
	assert := assert.New(t)
	for i := range positions {
		assert.InDelta(naive.Nodes[i].vel.X(), exact.Nodes[i].vel.X(), 1e-9)
		assert.InDelta(naive.Nodes[i].vel.Y(), exact.Nodes[i].vel.Y(), 1e-9)
	}
}
