// adapted from https://github.com/jwhandley/graphyz/blob/main/g.go
package layout

import (
	"math"

	"github.com/quartercastle/vector"
	"golang.org/x/exp/constraints"
)

// Body is anything that exerts a charge: a node or an aggregated quadtree cell.
type Body interface {
	charge() float64
	position() vector.Vector
}

type Graph struct {
	Nodes           []*Node `json:"nodes"`
	Edges           []*Edge `json:"edges"`
	forceSimulation *ForceSimulation
	qt              *QuadTree
}

type Node struct {
	Name string `json:"name"`
	// Fixed nodes never leave their pin.
	Fixed    bool          `json:"fixed,omitempty"`
	Pos      vector.Vector `json:"pos,omitempty"`
	degree   float64
	strength float64
	isPinned bool
	pin      vector.Vector
	vel      vector.Vector
}

type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

func clone(v vector.Vector) vector.Vector {
	return vector.Vector{v.X(), v.Y()}
}

func (node *Node) Velocity() vector.Vector {
	return node.vel
}

func (node *Node) IsPinned() bool {
	return node.isPinned
}

func min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func NewGraph(nodes []*Node, edges []*Edge, forceSimulation *ForceSimulation) *Graph {
	graph := Graph{
		Nodes:           nodes,
		Edges:           edges,
		forceSimulation: forceSimulation,
		qt:              NewQuadTree(&QUADTREE_DEFAULT_CONFIG, forceSimulation, Rect{}),
	}
	for _, node := range graph.Nodes {
		node.degree = 0
	}
	for _, edge := range graph.Edges {
		if edge.Value == 0.0 {
			edge.Value = 1.0
		}
		graph.Nodes[edge.Source].degree += 1
		graph.Nodes[edge.Target].degree += 1
	}
	graph.resetPosition()
	for _, node := range graph.Nodes {
		node.strength = forceSimulation.conf.ChargeStrength
		if len(node.vel) == 0 {
			node.vel = vector.Vector{0, 0}
		}
		if node.Fixed && !node.isPinned {
			node.isPinned = true
			node.pin = clone(node.Pos)
		}
	}
	return &graph
}

// resetPosition places nodes without a position on a phyllotaxis spiral
// around the simulation center.
func (g *Graph) resetPosition() {
	var initialRadius float64 = 10.0
	initialAngle := float64(math.Pi) * (3 - math.Sqrt(5))
	center := g.forceSimulation.conf.Center
	for i, node := range g.Nodes {
		if len(node.Pos) != 0 {
			continue
		}
		radius := initialRadius * float64(math.Sqrt(0.5+float64(i)))
		angle := float64(i) * initialAngle
		node.Pos = vector.Vector{
			radius*float64(math.Cos(angle)) + center.X(),
			radius*float64(math.Sin(angle)) + center.Y(),
		}
	}
}

// Tick advances the simulation by one step. It returns false without doing
// anything when the simulation is idle.
func (g *Graph) Tick() bool {
	fs := g.forceSimulation
	if fs.stopped {
		return false
	}
	fs.cool()
	g.ApplyForce()
	g.updatePositions()
	if fs.alpha < fs.conf.AlphaMin {
		fs.stopped = true
	}
	return true
}

func (g *Graph) Simulation() *ForceSimulation {
	return g.forceSimulation
}

func (g *Graph) ApplyForce() {
	g.attractionByEdgesForce()
	if g.forceSimulation.conf.NaiveRepulsion {
		g.repulsionNaive()
	} else {
		g.repulsionBarnesHut(g.qt)
	}
	if g.forceSimulation.conf.Centering {
		g.centerForce()
	}
	if g.forceSimulation.conf.CollideRadius > 0 {
		g.collisionForce()
	}
}

func clamp[T constraints.Ordered](in, lo, hi T) T {
	if in > hi {
		return hi
	} else if in < lo {
		return lo
	}
	return in
}

func (g *Graph) updatePositions() {
	keep := 1 - g.forceSimulation.conf.VelocityDecay
	for _, node := range g.Nodes {
		if node.isPinned {
			node.Pos = clone(node.pin)
			node.vel = vector.Vector{0, 0}
			continue
		}
		vector.In(node.vel).Scale(keep)
		vector.In(node.Pos).Add(node.vel)
	}
}

// Pin holds node i at pos until Unpin is called.
func (g *Graph) Pin(i int, pos vector.Vector) {
	node := g.Nodes[i]
	node.isPinned = true
	node.pin = clone(pos)
}

// Unpin releases node i, unless it is Fixed.
func (g *Graph) Unpin(i int) {
	node := g.Nodes[i]
	if node.Fixed {
		return
	}
	node.isPinned = false
	node.pin = nil
}

// Impulse adds dv to the velocity of node i.
func (g *Graph) Impulse(i int, dv vector.Vector) {
	vector.In(g.Nodes[i].vel).Add(dv)
}

func (g *Graph) attractionByEdgesForce() {
	for _, edge := range g.Edges {
		from := g.Nodes[edge.Source]
		to := g.Nodes[edge.Target]
		strength := 1 / min(from.degree, to.degree)
		bias := from.degree / (from.degree + to.degree)
		force := g.forceSimulation.calculateAttractionForce(from, to, g.forceSimulation.conf.LinkDistance(edge), strength)
		vector.In(to.vel).Sub(force.Scale(bias))
		vector.In(from.vel).Add(force.Scale(1 - bias))
	}
}

func (g *Graph) repulsionBarnesHut(qt *QuadTree) {
	qt.Reset(boundsOf(g.Nodes))
	for _, node := range g.Nodes {
		qt.Insert(node)
	}
	qt.CalculateMasses()
	for _, node := range g.Nodes {
		force := qt.CalculateForce(node, g.forceSimulation.conf.Theta)
		vector.In(node.vel).Add(force)
	}
}

func (g *Graph) repulsionNaive() {
	for i, node := range g.Nodes {
		for j, other := range g.Nodes {
			if i == j {
				continue
			}
			vector.In(node.vel).Add(g.forceSimulation.calculateRepulsionForce(node, other))
		}
	}
}

// centerForce shifts all nodes so that their mean lands on the center.
func (g *Graph) centerForce() {
	if len(g.Nodes) == 0 {
		return
	}
	mean := vector.Vector{0, 0}
	for _, node := range g.Nodes {
		vector.In(mean).Add(node.Pos)
	}
	shift := mean.Scale(1 / float64(len(g.Nodes))).Sub(g.forceSimulation.conf.Center)
	for _, node := range g.Nodes {
		vector.In(node.Pos).Sub(shift)
	}
}

// collisionForce pushes apart nodes closer than twice the collide radius,
// looking one tick ahead.
func (g *Graph) collisionForce() {
	fs := g.forceSimulation
	r := fs.conf.CollideRadius
	for i, node := range g.Nodes {
		xi := node.Pos.X() + node.vel.X()
		yi := node.Pos.Y() + node.vel.Y()
		for _, other := range g.Nodes[i+1:] {
			dx := xi - other.Pos.X() - other.vel.X()
			dy := yi - other.Pos.Y() - other.vel.Y()
			l := dx*dx + dy*dy
			if l >= 4*r*r {
				continue
			}
			if dx == 0 {
				dx = fs.jiggle()
				l += dx * dx
			}
			if dy == 0 {
				dy = fs.jiggle()
				l += dy * dy
			}
			l = math.Sqrt(l)
			l = (2*r - l) / l * fs.conf.CollideStrength
			// equal radii split the correction in half
			push := vector.Vector{dx * l * 0.5, dy * l * 0.5}
			vector.In(node.vel).Add(push)
			vector.In(other.vel).Sub(push)
		}
	}
}

// boundsOf returns a square enclosing all node positions.
func boundsOf(nodes []*Node) Rect {
	if len(nodes) == 0 {
		return Rect{Width: 1, Height: 1}
	}
	minX, minY := math.Inf(+1), math.Inf(+1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, node := range nodes {
		minX = math.Min(minX, node.Pos.X())
		minY = math.Min(minY, node.Pos.Y())
		maxX = math.Max(maxX, node.Pos.X())
		maxY = math.Max(maxY, node.Pos.Y())
	}
	size := math.Max(maxX-minX, maxY-minY)
	size = clamp(size, 1, math.Inf(+1)) + 1
	return Rect{X: minX - 0.5, Y: minY - 0.5, Width: size, Height: size}
}

func (node *Node) charge() float64 {
	return node.strength
}

func (node *Node) position() vector.Vector {
	return node.Pos
}
