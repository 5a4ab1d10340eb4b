// adapted from https://github.com/jwhandley/graphyz/blob/main/quadtree.go
package layout

import (
	"github.com/quartercastle/vector"
)

type QuadTreeConfig struct {
	CapacityOfEachBlock int
	// MaxDepth stops subdividing, so that many nodes on the exact same spot
	// end up in one oversized leaf instead of recursing forever.
	MaxDepth int
}

var QUADTREE_DEFAULT_CONFIG = QuadTreeConfig{CapacityOfEachBlock: 4, MaxDepth: 32}

type QuadTree struct {
	Center          vector.Vector
	TotalCharge     float64
	Count           int
	Region          Rect
	Nodes           []*Node
	Children        [4]*QuadTree
	config          *QuadTreeConfig
	forceSimulation *ForceSimulation
}

type Rect struct {
	X, Y, Width, Height float64
}

func (r *Rect) Contains(pos vector.Vector) bool {
	contains := pos.X() >= r.X && pos.X() <= r.X+r.Width && pos.Y() >= r.Y && pos.Y() <= r.Y+r.Height
	return contains
}

func (r Rect) Center() vector.Vector {
	return vector.Vector{r.X + r.Width/2, r.Y + r.Height/2}
}

func NewQuadTree(config *QuadTreeConfig, forceSimulation *ForceSimulation, boundary Rect) *QuadTree {
	if config == nil {
		config = &QUADTREE_DEFAULT_CONFIG
	}
	conf := *config
	if conf.CapacityOfEachBlock == 0 {
		conf.CapacityOfEachBlock = QUADTREE_DEFAULT_CONFIG.CapacityOfEachBlock
	}
	if conf.MaxDepth == 0 {
		conf.MaxDepth = QUADTREE_DEFAULT_CONFIG.MaxDepth
	}
	qt := new(QuadTree)
	qt.config = &conf
	qt.forceSimulation = forceSimulation
	qt.Reset(boundary)
	return qt
}

// Reset empties the tree and moves it onto a new boundary.
func (qt *QuadTree) Reset(boundary Rect) {
	qt.Region = boundary
	qt.Nodes = make([]*Node, 0, qt.config.CapacityOfEachBlock)
	qt.Children = [4]*QuadTree{nil, nil, nil, nil}
	qt.Center = vector.Vector{0, 0}
	qt.TotalCharge = 0
	qt.Count = 0
}

func (qt *QuadTree) Insert(node *Node) bool {
	return qt.insert(node, 0)
}

func (qt *QuadTree) insert(node *Node, depth int) bool {
	if !qt.Region.Contains(node.Pos) {
		return false
	}
	if qt.Children[0] == nil {
		if len(qt.Nodes) < qt.config.CapacityOfEachBlock || depth >= qt.config.MaxDepth {
			qt.Nodes = append(qt.Nodes, node)
			return true
		}
		qt.subdivide(depth)
	}
	for _, child := range qt.Children {
		if child.insert(node, depth+1) {
			return true
		}
	}
	return false
}

func (qt *QuadTree) subdivide(depth int) {
	midX := qt.Region.X + qt.Region.Width/2
	midY := qt.Region.Y + qt.Region.Height/2

	halfWidth := (qt.Region.Width) / 2
	halfHeight := (qt.Region.Height) / 2

	qt.Children[0] = NewQuadTree(qt.config, qt.forceSimulation, Rect{X: qt.Region.X, Y: qt.Region.Y, Width: halfWidth, Height: halfHeight}) // Top Left
	qt.Children[1] = NewQuadTree(qt.config, qt.forceSimulation, Rect{X: midX, Y: qt.Region.Y, Width: halfWidth, Height: halfHeight})        // Top right
	qt.Children[2] = NewQuadTree(qt.config, qt.forceSimulation, Rect{X: qt.Region.X, Y: midY, Width: halfWidth, Height: halfHeight})        // Bottom Left
	qt.Children[3] = NewQuadTree(qt.config, qt.forceSimulation, Rect{X: midX, Y: midY, Width: halfWidth, Height: halfHeight})               // Bottom Right

	for _, node := range qt.Nodes {
		for _, child := range qt.Children {
			if child.insert(node, depth+1) {
				break
			}
		}
	}
	qt.Nodes = nil
}

// CalculateMasses aggregates charge and center of every cell, bottom up.
func (qt *QuadTree) CalculateMasses() {
	sum := vector.Vector{0, 0}
	if qt.Children[0] == nil {
		for _, node := range qt.Nodes {
			qt.TotalCharge += node.charge()
			qt.Count++
			vector.In(sum).Add(node.Pos)
		}
	} else {
		for _, child := range qt.Children {
			child.CalculateMasses()
			qt.TotalCharge += child.TotalCharge
			qt.Count += child.Count
			vector.In(sum).Add(child.Center.Scale(float64(child.Count)))
		}
	}
	if qt.Count > 0 {
		qt.Center = sum.Scale(1 / float64(qt.Count))
	}
}

// CalculateForce calculates the charge force acting on a node. Cells that
// look small from the node, i.e. width/distance < theta, act as one body.
func (qt *QuadTree) CalculateForce(node *Node, theta float64) vector.Vector {
	totalForce := vector.Vector{0, 0}
	if qt.Count == 0 {
		return totalForce
	}
	if qt.Children[0] == nil {
		for _, other := range qt.Nodes {
			if node == other {
				continue
			}
			vector.In(totalForce).Add(qt.forceSimulation.calculateRepulsionForce(node, other))
		}
		return totalForce
	}
	d := node.Pos.Sub(qt.Center).Magnitude()
	s := qt.Region.Width
	if d > 0 && (s/d) < theta {
		return qt.forceSimulation.calculateRepulsionForce(node, qt)
	}
	for _, child := range qt.Children {
		vector.In(totalForce).Add(child.CalculateForce(node, theta))
	}
	return totalForce
}

// charge() is used to compute repulsion between a node and a whole cell
func (qt *QuadTree) charge() float64 {
	return qt.TotalCharge
}

func (qt *QuadTree) position() vector.Vector {
	return qt.Center
}
