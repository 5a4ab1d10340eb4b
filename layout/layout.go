// adapted from https://github.com/jwhandley/graphyz/blob/main/main.go
package layout

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/quartercastle/vector"
)

type ForceSimulationConfig struct {
	// Center is the point the centering force keeps the mean node position on.
	Center vector.Vector
	// initial temperature of simulation
	AlphaInit float64
	// the simulation idles once alpha drops below AlphaMin
	AlphaMin float64
	// fraction of the distance to AlphaTarget covered per tick
	AlphaDecay float64
	// target temperature of simulation
	AlphaTarget float64
	// VelocityDecay is the fraction of velocity lost per tick, i.e. friction.
	VelocityDecay float64
	// LinkDistance returns the rest length of an edge. Defaults to a
	// constant DefaultLinkDistance.
	LinkDistance func(*Edge) float64
	// ChargeStrength is applied between every pair of nodes, negative values
	// repel.
	ChargeStrength float64
	// Theta is the Barnes-Hut accuracy, see
	// https://en.wikipedia.org/wiki/Barnes%E2%80%93Hut_simulation#Calculating_the_force_acting_on_a_body
	Theta float64
	// DistanceMin bounds the charge force for nodes very close together.
	DistanceMin float64
	// CollideRadius is the minimum separation radius of every node.
	CollideRadius   float64
	CollideStrength float64
	// Centering enables the force shifting the layout onto Center.
	Centering bool
	// NaiveRepulsion computes the charge force pairwise instead of through
	// the quadtree.
	NaiveRepulsion bool
	RandomFloat    func() float64
}

const DefaultLinkDistance = 30.0

var DefaultForceSimulationConfig = ForceSimulationConfig{
	Center:          vector.Vector{0, 0},
	AlphaInit:       1.0,
	AlphaMin:        0.001,
	AlphaDecay:      1 - math.Pow(0.001, 1.0/300),
	AlphaTarget:     0.0,
	VelocityDecay:   0.4,
	ChargeStrength:  -30,
	Theta:           0.9,
	DistanceMin:     1,
	CollideRadius:   0,
	CollideStrength: 1,
	Centering:       true,
}

// ForceSimulation holds the configuration and the temperature of a force
// based graph embedding procedure.
type ForceSimulation struct {
	conf        ForceSimulationConfig
	alpha       float64
	alphaTarget float64
	stopped     bool
}

func NewForceSimulation(conf ForceSimulationConfig) *ForceSimulation {
	fs := &ForceSimulation{}
	fs.ApplyConfig(conf)
	return fs
}

func (fs *ForceSimulation) ApplyConfig(conf ForceSimulationConfig) {
	if len(conf.Center) == 0 {
		conf.Center = vector.Vector{0, 0}
	}
	if conf.AlphaInit == 0.0 {
		conf.AlphaInit = DefaultForceSimulationConfig.AlphaInit
	}
	if conf.AlphaMin == 0.0 {
		conf.AlphaMin = DefaultForceSimulationConfig.AlphaMin
	}
	if conf.AlphaDecay == 0.0 {
		conf.AlphaDecay = DefaultForceSimulationConfig.AlphaDecay
	}
	if conf.VelocityDecay == 0.0 {
		conf.VelocityDecay = DefaultForceSimulationConfig.VelocityDecay
	}
	if conf.LinkDistance == nil {
		conf.LinkDistance = func(*Edge) float64 { return DefaultLinkDistance }
	}
	if conf.ChargeStrength == 0.0 {
		conf.ChargeStrength = DefaultForceSimulationConfig.ChargeStrength
	}
	if conf.Theta == 0.0 {
		conf.Theta = DefaultForceSimulationConfig.Theta
	}
	if conf.DistanceMin == 0.0 {
		conf.DistanceMin = DefaultForceSimulationConfig.DistanceMin
	}
	if conf.CollideStrength == 0.0 {
		conf.CollideStrength = DefaultForceSimulationConfig.CollideStrength
	}
	if conf.RandomFloat == nil {
		conf.RandomFloat = func() float64 { return rand.Float64() }
	}
	fs.conf = conf
	fs.alpha = conf.AlphaInit
	fs.alphaTarget = conf.AlphaTarget
	fs.stopped = false
}

func (fs *ForceSimulation) Config() ForceSimulationConfig {
	return fs.conf
}

func (fs *ForceSimulation) Alpha() float64 {
	return fs.alpha
}

func (fs *ForceSimulation) AlphaTarget() float64 {
	return fs.alphaTarget
}

// Restart sets the temperature and resumes an idle simulation.
func (fs *ForceSimulation) Restart(alpha float64) {
	fs.alpha = alpha
	fs.stopped = false
}

// SetAlphaTarget changes the temperature the simulation converges to and
// resumes it. A target above AlphaMin keeps the simulation running.
func (fs *ForceSimulation) SetAlphaTarget(target float64) {
	fs.alphaTarget = target
	fs.stopped = false
}

// Running is false once the simulation cooled down below AlphaMin.
func (fs *ForceSimulation) Running() bool {
	return !fs.stopped
}

// cool moves alpha one step towards the target.
func (fs *ForceSimulation) cool() {
	fs.alpha += (fs.alphaTarget - fs.alpha) * fs.conf.AlphaDecay
}

// jiggle returns a tiny random offset, used to separate coincident nodes.
func (fs *ForceSimulation) jiggle() float64 {
	return (fs.conf.RandomFloat() - 0.5) * 1e-6
}

type Stats struct {
	Iterations int
	TotalTime  time.Duration
	// Converged is false when ctx ended the run before the simulation idled.
	Converged bool
}

// ComputeLayout ticks the simulation until it idles or ctx is done.
func (fs *ForceSimulation) ComputeLayout(ctx context.Context, nodes []*Node, edges []*Edge) ([]*Node, Stats) {
	graph := NewGraph(nodes, edges, fs)
	startTime := time.Now()
	stats := Stats{}
simulation:
	for {
		select {
		case <-ctx.Done():
			break simulation
		default:
			// continue looping
		}
		if !graph.Tick() {
			stats.Converged = true
			break
		}
		stats.Iterations += 1
	}
	stats.TotalTime = time.Since(startTime)
	return graph.Nodes, stats
}

// calculateRepulsionForce returns the velocity change of node caused by the
// charge of b, which is either another node or an aggregated quadtree cell.
func (fs *ForceSimulation) calculateRepulsionForce(node *Node, b Body) vector.Vector {
	dx := b.position().X() - node.Pos.X()
	dy := b.position().Y() - node.Pos.Y()
	if dx == 0 {
		dx = fs.jiggle()
	}
	if dy == 0 {
		dy = fs.jiggle()
	}
	l := dx*dx + dy*dy
	dmin2 := fs.conf.DistanceMin * fs.conf.DistanceMin
	if l < dmin2 {
		l = math.Sqrt(dmin2 * l)
	}
	w := b.charge() * fs.alpha / l
	return vector.Vector{dx * w, dy * w}
}

// calculateAttractionForce returns the correction along an edge, to be split
// between both ends according to bias.
//
// similar to d3-force, see
// https://github.com/d3/d3-force/blob/main/src/link.js
func (fs *ForceSimulation) calculateAttractionForce(from *Node, to *Node, distance, strength float64) vector.Vector {
	dx := to.Pos.X() + to.vel.X() - from.Pos.X() - from.vel.X()
	dy := to.Pos.Y() + to.vel.Y() - from.Pos.Y() - from.vel.Y()
	if dx == 0 {
		dx = fs.jiggle()
	}
	if dy == 0 {
		dy = fs.jiggle()
	}
	l := math.Sqrt(dx*dx + dy*dy)
	l = (l - distance) / l * fs.alpha * strength
	return vector.Vector{dx * l, dy * l}
}
