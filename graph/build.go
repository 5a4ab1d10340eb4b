// Package graph turns a collaboration dataset into the node-link graph of the
// force variant.
package graph

import (
	"math"
	"math/rand"

	"github.com/quartercastle/vector"
	"github.com/xpsychometrics/collabmap/graph/model"
	"github.com/xpsychometrics/collabmap/layout"
)

// CenterIndex is the node index of the center entity.
const CenterIndex = 0

const (
	ChargeStrength = -400.0
	CollideRadius  = 40.0
	// RestartAlpha is the temperature interactions restart the simulation at.
	RestartAlpha = 0.3
)

type BuildConfig struct {
	Width  float64
	Height float64
	// RandomFloat returns values in [0, 1), defaults to math/rand.
	RandomFloat func() float64
}

// ForceGraph keeps the dataset next to the layout graph built from it: node
// i+1 and edge i belong to Records[i].
type ForceGraph struct {
	Center  model.CenterEntity
	Records []model.CollaborationRecord
	Nodes   []*layout.Node
	Edges   []*layout.Edge
}

// LinkDistance is the rest length of a link. Heavier collaborations rest
// farther out.
func LinkDistance(weight float64) float64 {
	return 100 + weight*10
}

// BuildForceGraph creates the center node pinned at the origin and one node
// and one edge per record. Collaborator nodes start on a randomized circle
// around the center.
func BuildForceGraph(center model.CenterEntity, records []model.CollaborationRecord, conf BuildConfig) *ForceGraph {
	random := conf.RandomFloat
	if random == nil {
		random = rand.Float64
	}
	g := &ForceGraph{
		Center:  center,
		Records: records,
		Nodes:   make([]*layout.Node, 0, len(records)+1),
		Edges:   make([]*layout.Edge, 0, len(records)),
	}
	g.Nodes = append(g.Nodes, &layout.Node{Name: center.ID, Fixed: true, Pos: vector.Vector{0, 0}})
	for i, record := range records {
		angle := random() * 2 * math.Pi
		radius := math.Min(conf.Width, conf.Height)*0.25 + random()*50
		g.Nodes = append(g.Nodes, &layout.Node{
			Name: record.ID(),
			Pos:  vector.Vector{math.Cos(angle) * radius, math.Sin(angle) * radius},
		})
		g.Edges = append(g.Edges, &layout.Edge{Source: CenterIndex, Target: i + 1, Value: float64(record.Weight)})
	}
	return g
}

// SimulationConfig is the force setup of the collaboration graph.
func SimulationConfig() layout.ForceSimulationConfig {
	conf := layout.DefaultForceSimulationConfig
	conf.LinkDistance = func(e *layout.Edge) float64 { return LinkDistance(e.Value) }
	conf.ChargeStrength = ChargeStrength
	conf.CollideRadius = CollideRadius
	conf.Centering = true
	return conf
}

// Layout wires the nodes into a simulation, ready to be ticked.
func (g *ForceGraph) Layout(fs *layout.ForceSimulation) *layout.Graph {
	return layout.NewGraph(g.Nodes, g.Edges, fs)
}

// Record returns the record of node i, false for the center.
func (g *ForceGraph) Record(i int) (model.CollaborationRecord, bool) {
	if i <= CenterIndex || i > len(g.Records) {
		return model.CollaborationRecord{}, false
	}
	return g.Records[i-1], true
}

func (g *ForceGraph) Category(i int) model.Category {
	if r, ok := g.Record(i); ok {
		return r.Category()
	}
	return model.CategoryCenter
}

// NodeIndex finds a node by id, -1 if there is none.
func (g *ForceGraph) NodeIndex(id string) int {
	for i, node := range g.Nodes {
		if node.Name == id {
			return i
		}
	}
	return -1
}

// Connected reports whether nodes i and j share an edge, or are the same.
func (g *ForceGraph) Connected(i, j int) bool {
	if i == j {
		return true
	}
	for _, e := range g.Edges {
		if (e.Source == i && e.Target == j) || (e.Source == j && e.Target == i) {
			return true
		}
	}
	return false
}

// Institution and country of node i, as shown in tooltips.
func (g *ForceGraph) Institution(i int) (string, string) {
	if r, ok := g.Record(i); ok {
		return r.Institution, r.Country
	}
	return g.Center.Institution, g.Center.Country
}
