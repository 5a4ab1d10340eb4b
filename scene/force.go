package scene

import (
	"math"

	"github.com/quartercastle/vector"
	"github.com/xpsychometrics/collabmap/draw"
	"github.com/xpsychometrics/collabmap/graph"
	"github.com/xpsychometrics/collabmap/layout"
	"github.com/xpsychometrics/collabmap/style"
)

const (
	// RepelDistance is the radius around the pointer that pushes nodes away.
	RepelDistance = 80.0
	RepelStrength = 5.0
	// DragAlphaTarget keeps the simulation warm while a node is dragged.
	DragAlphaTarget = 0.3

	dimmed               = "0.2"
	linkOpacity          = "0.6"
	maxInstitutionLength = 30
)

const (
	forceRootID   = "force"
	forceLinksID  = "force-links"
	forceNodesID  = "force-nodes"
	forceLabelsID = "force-labels"
)

type ForceConfig struct {
	Width  float64
	Height float64
}

// ForceScene draws the force-directed graph, centered on the surface.
type ForceScene struct {
	conf ForceConfig
}

func NewForceScene(conf ForceConfig) *ForceScene {
	return &ForceScene{conf: conf}
}

// ForceState is owned by whoever dispatches the events. Node positions live
// in Layout and only change through Tick, Pin, Unpin and Impulse.
type ForceState struct {
	Graph  *graph.ForceGraph
	Layout *layout.Graph
	// Hovered and Dragged are node indices, -1 for none.
	Hovered int
	Dragged int
}

func NewForceState(g *graph.ForceGraph, fs *layout.ForceSimulation) ForceState {
	return ForceState{Graph: g, Layout: g.Layout(fs), Hovered: -1, Dragged: -1}
}

func nodeID(state ForceState, i int) string {
	return "node-" + state.Graph.Nodes[i].Name
}

func linkID(state ForceState, e *layout.Edge) string {
	return "link-" + state.Graph.Nodes[e.Target].Name
}

func labelID(state ForceState, i int) string {
	return "label-" + state.Graph.Nodes[i].Name
}

// Init draws the whole graph at the current node positions.
func (s *ForceScene) Init(state ForceState) []draw.Command {
	g := state.Graph
	cmds := []draw.Command{
		createTooltip(),
		draw.Create(draw.KindGroup, forceRootID, "").Attr("transform", draw.Translate(s.conf.Width/2, s.conf.Height/2)),
		draw.Create(draw.KindGroup, forceLinksID, forceRootID).Attr("class", "links"),
	}
	for _, e := range g.Edges {
		cmds = append(cmds, linkPosition(state, e, draw.Create(draw.KindLine, linkID(state, e), forceLinksID)).
			Attr("stroke", style.Color(g.Category(e.Target))).
			AttrNum("stroke-width", style.LinkWidth(int(e.Value))).
			Attr("stroke-opacity", linkOpacity).
			Attr("stroke-dasharray", "5,5"))
	}
	cmds = append(cmds, draw.Create(draw.KindGroup, forceNodesID, forceRootID).Attr("class", "nodes"))
	center := g.Nodes[graph.CenterIndex]
	centerID := nodeID(state, graph.CenterIndex)
	cmds = append(cmds,
		draw.Create(draw.KindGroup, centerID, forceNodesID).
			Attr("class", "panda-node").
			Attr("transform", draw.Translate(center.Pos.X(), center.Pos.Y())),
		draw.Create(draw.KindCircle, centerID+"-glow", centerID).
			AttrNum("r", 22).
			Attr("fill", style.AccentColor).
			Attr("opacity", "0.3"),
		draw.Create(draw.KindImage, centerID+"-image", centerID).
			Attr("href", g.Center.Image).
			AttrNum("x", -20).AttrNum("y", -20).
			AttrNum("width", 40).AttrNum("height", 40).
			StyleProp("cursor", "pointer").
			StyleProp("transition", "transform 0.2s ease"),
	)
	for i, node := range g.Nodes {
		record, ok := g.Record(i)
		if !ok {
			continue
		}
		cmds = append(cmds, draw.Create(draw.KindCircle, nodeID(state, i), forceNodesID).
			Attr("class", "node").
			AttrNum("r", style.NodeRadius(record.Weight)).
			Attr("fill", style.Color(record.Category())).
			Attr("stroke", style.NodeStroke).
			AttrNum("stroke-width", style.NodeStrokeWidth).
			AttrNum("cx", node.Pos.X()).
			AttrNum("cy", node.Pos.Y()).
			StyleProp("cursor", "pointer"))
	}
	cmds = append(cmds, draw.Create(draw.KindGroup, forceLabelsID, forceRootID).Attr("class", "labels"))
	for i, node := range g.Nodes {
		id := labelID(state, i)
		cmds = append(cmds, draw.Create(draw.KindGroup, id, forceLabelsID).Attr("transform", draw.Translate(node.Pos.X(), node.Pos.Y())))
		record, ok := g.Record(i)
		if !ok {
			// the image stands in for the center's label
			continue
		}
		color := style.Color(record.Category())
		cmds = append(cmds,
			labelText(id+"-institution", id, color).
				AttrNum("dy", -18).
				Attr("font-size", "10").
				Attr("font-weight", "bold").
				WithText(style.Truncate(record.Institution, maxInstitutionLength)),
			labelText(id+"-country", id, color).
				AttrNum("dy", -5).
				Attr("font-size", "9").
				Attr("font-weight", "normal").
				Attr("opacity", "0.8").
				WithText(record.Country),
		)
	}
	return cmds
}

func labelText(id, parent, color string) draw.Command {
	return draw.Create(draw.KindText, id, parent).
		AttrNum("dx", 0).
		Attr("text-anchor", "middle").
		Attr("fill", color).
		Attr("font-family", style.FontFamily).
		StyleProp("pointer-events", "none").
		StyleProp("text-shadow", "1px 1px 2px rgba(255, 255, 255, 0.9)")
}

func linkPosition(state ForceState, e *layout.Edge, cmd draw.Command) draw.Command {
	from, to := state.Graph.Nodes[e.Source].Pos, state.Graph.Nodes[e.Target].Pos
	return cmd.
		AttrNum("x1", from.X()).AttrNum("y1", from.Y()).
		AttrNum("x2", to.X()).AttrNum("y2", to.Y())
}

// Reduce handles one event. The returned commands update what Init drew.
func (s *ForceScene) Reduce(state ForceState, ev Event) (ForceState, []draw.Command) {
	switch ev := ev.(type) {
	case PointerEnter:
		i := state.Graph.NodeIndex(ev.Target)
		if i < 0 {
			return state, nil
		}
		state.Hovered = i
		return state, s.highlight(state, i, ev.PageX, ev.PageY)
	case PointerLeave:
		if state.Hovered < 0 {
			return state, nil
		}
		state.Hovered = -1
		return state, s.restore(state)
	case PointerMove:
		s.repel(state, ev.X, ev.Y)
		return state, nil
	case DragStart:
		i := state.Graph.NodeIndex(ev.Target)
		if i < 0 {
			return state, nil
		}
		state.Dragged = i
		state.Layout.Simulation().SetAlphaTarget(DragAlphaTarget)
		state.Layout.Pin(i, state.Layout.Nodes[i].Pos)
		return state, nil
	case DragMove:
		if state.Dragged < 0 {
			return state, nil
		}
		state.Layout.Pin(state.Dragged, vector.Vector{ev.X, ev.Y})
		return state, nil
	case DragEnd:
		if state.Dragged < 0 {
			return state, nil
		}
		state.Layout.Simulation().SetAlphaTarget(0)
		// no-op for the center, its pin is permanent
		state.Layout.Unpin(state.Dragged)
		state.Dragged = -1
		return state, nil
	case FrameTick:
		if !state.Layout.Tick() {
			return state, nil
		}
		return state, s.positions(state)
	}
	return state, nil
}

// repel pushes every collaborator near the pointer away from it and wakes
// the simulation up.
func (s *ForceScene) repel(state ForceState, x, y float64) {
	for i, node := range state.Layout.Nodes {
		if i == graph.CenterIndex {
			continue
		}
		dx, dy := node.Pos.X()-x, node.Pos.Y()-y
		d := math.Sqrt(dx*dx + dy*dy)
		if d == 0 || d >= RepelDistance {
			continue
		}
		force := (RepelDistance - d) / RepelDistance * RepelStrength
		state.Layout.Impulse(i, vector.Vector{dx / d * force, dy / d * force})
	}
	state.Layout.Simulation().Restart(graph.RestartAlpha)
}

func opacity(visible bool) string {
	if visible {
		return "1"
	}
	return dimmed
}

func (s *ForceScene) highlight(state ForceState, hovered int, pageX, pageY float64) []draw.Command {
	g := state.Graph
	institution, country := g.Institution(hovered)
	cmds := []draw.Command{showTooltip(institution, country, pageX, pageY)}
	connected := func(i int) bool {
		return hovered == graph.CenterIndex || g.Connected(hovered, i)
	}
	for i := range g.Nodes {
		if i == graph.CenterIndex {
			continue
		}
		cmds = append(cmds, draw.Update(nodeID(state, i)).StyleProp("opacity", opacity(connected(i))))
	}
	for _, e := range g.Edges {
		incident := hovered == graph.CenterIndex || e.Source == hovered || e.Target == hovered
		op := "0.1"
		if incident {
			op = "0.9"
		}
		cmds = append(cmds, draw.Update(linkID(state, e)).StyleProp("opacity", op))
	}
	for i := range g.Nodes {
		cmds = append(cmds, draw.Update(labelID(state, i)).StyleProp("opacity", opacity(connected(i))))
	}
	centerID := nodeID(state, graph.CenterIndex)
	scale := "scale(1)"
	if connected(graph.CenterIndex) {
		scale = "scale(1.1)"
	}
	cmds = append(cmds,
		draw.Update(centerID).StyleProp("opacity", opacity(connected(graph.CenterIndex))),
		draw.Update(centerID+"-image").StyleProp("transform", scale),
	)
	return cmds
}

func (s *ForceScene) restore(state ForceState) []draw.Command {
	g := state.Graph
	cmds := []draw.Command{hideTooltip()}
	for i := range g.Nodes {
		if i == graph.CenterIndex {
			continue
		}
		cmds = append(cmds, draw.Update(nodeID(state, i)).StyleProp("opacity", "1"))
	}
	for _, e := range g.Edges {
		cmds = append(cmds, draw.Update(linkID(state, e)).StyleProp("opacity", linkOpacity))
	}
	for i := range g.Nodes {
		cmds = append(cmds, draw.Update(labelID(state, i)).StyleProp("opacity", "1"))
	}
	centerID := nodeID(state, graph.CenterIndex)
	return append(cmds,
		draw.Update(centerID).StyleProp("opacity", "1"),
		draw.Update(centerID+"-image").StyleProp("transform", "scale(1)"),
	)
}

// positions moves every shape to the current node positions.
func (s *ForceScene) positions(state ForceState) []draw.Command {
	g := state.Graph
	cmds := make([]draw.Command, 0, len(g.Edges)+2*len(g.Nodes))
	for _, e := range g.Edges {
		cmds = append(cmds, linkPosition(state, e, draw.Update(linkID(state, e))))
	}
	for i, node := range g.Nodes {
		if i == graph.CenterIndex {
			cmds = append(cmds, draw.Update(nodeID(state, i)).Attr("transform", draw.Translate(node.Pos.X(), node.Pos.Y())))
			continue
		}
		cmds = append(cmds, draw.Update(nodeID(state, i)).AttrNum("cx", node.Pos.X()).AttrNum("cy", node.Pos.Y()))
	}
	for i, node := range g.Nodes {
		cmds = append(cmds, draw.Update(labelID(state, i)).Attr("transform", draw.Translate(node.Pos.X(), node.Pos.Y())))
	}
	return cmds
}
