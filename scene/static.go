package scene

import (
	"github.com/pkg/errors"
	"github.com/quartercastle/vector"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/draw"
	"github.com/xpsychometrics/collabmap/graph/model"
	"github.com/xpsychometrics/collabmap/labels"
	"github.com/xpsychometrics/collabmap/projection"
	"github.com/xpsychometrics/collabmap/style"
)

// Groups a static map surface must provide.
const (
	ConnectorsGroup = "connectors"
	MarkersGroup    = "markers"
	LabelsGroup     = "labels"
)

var StaticGroups = []string{ConnectorsGroup, MarkersGroup, LabelsGroup}

// Variant selects what the static map labels and how much connectors bend.
type Variant string

const (
	// VariantGeo labels institutions.
	VariantGeo Variant = "geo"
	// VariantLocations labels every city once.
	VariantLocations Variant = "locations"
)

var Variants = []Variant{VariantGeo, VariantLocations}

func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errors.Errorf("unknown map variant '%s'", s)
}

// Bend is the offset of a connector's control point relative to its length.
func (v Variant) Bend() float64 {
	if v == VariantLocations {
		return 0.12
	}
	return 0.25
}

const (
	markerStrokeWidth       = 1.5
	centerMarkerRadius      = 8.0
	centerMarkerStrokeWidth = 2.0
	hoverStrokeWidth        = 3.0
	connectorOpacity        = "0.7"
)

type StaticConfig struct {
	Variant    Variant
	Projection projection.Config
}

type StaticScene struct {
	conf      StaticConfig
	projector *projection.Projector
}

func NewStaticScene(conf StaticConfig) *StaticScene {
	if conf.Variant == "" {
		conf.Variant = VariantGeo
	}
	return &StaticScene{conf: conf, projector: projection.NewProjector(conf.Projection)}
}

func (s *StaticScene) Variant() Variant {
	return s.conf.Variant
}

func (s *StaticScene) Projector() *projection.Projector {
	return s.projector
}

// StaticState is computed once by Layout. Points and Labels are keyed by
// record id, the center under its own id.
type StaticState struct {
	Dataset *model.Dataset
	Points  map[string]model.ScreenPoint
	Labels  map[string]model.LabelPlacement
	// Fallbacks counts labels that overlap an earlier one.
	Fallbacks int
	Hovered   string
}

// Layout projects every point and places the labels, the center first and
// then the records in input order.
func (s *StaticScene) Layout(ds *model.Dataset) StaticState {
	state := StaticState{
		Dataset: ds,
		Points:  make(map[string]model.ScreenPoint, len(ds.Collaborations)+1),
		Labels:  make(map[string]model.LabelPlacement, len(ds.Collaborations)+1),
	}
	placer := labels.NewPlacer()
	center := s.projector.Project(ds.Center.Location)
	state.Points[ds.Center.ID] = center
	state.Labels[ds.Center.ID] = placer.Place(center, s.centerText(ds.Center))
	seen := map[string]bool{}
	for _, record := range ds.Collaborations {
		p := s.projector.Project(record.Location)
		state.Points[record.ID()] = p
		text := s.recordText(record)
		if s.conf.Variant == VariantLocations {
			if seen[text] {
				continue
			}
			seen[text] = true
		}
		state.Labels[record.ID()] = placer.Place(p, text)
	}
	state.Fallbacks = placer.Fallbacks()
	return state
}

func (s *StaticScene) centerText(c model.CenterEntity) string {
	if s.conf.Variant == VariantGeo && c.Institution != "" {
		return c.Institution
	}
	return c.Name
}

func (s *StaticScene) recordText(r model.CollaborationRecord) string {
	if s.conf.Variant == VariantGeo {
		return style.Truncate(r.Institution, maxInstitutionLength)
	}
	if r.City == "" {
		return r.Country
	}
	return r.City
}

// connectorPath is a quadratic curve from the center to p, bent upwards.
func connectorPath(from, to model.ScreenPoint, bend float64) string {
	a, b := vector.Vector{from.X, from.Y}, vector.Vector{to.X, to.Y}
	d := b.Sub(a)
	length := d.Magnitude()
	if length == 0 {
		return "M " + draw.Num(a.X()) + " " + draw.Num(a.Y()) + " L " + draw.Num(b.X()) + " " + draw.Num(b.Y())
	}
	normal := vector.Vector{-d.Y() / length, d.X() / length}
	if normal.Y() > 0 {
		normal = normal.Scale(-1)
	}
	control := a.Add(b).Scale(0.5).Add(normal.Scale(bend * length))
	return "M " + draw.Num(a.X()) + " " + draw.Num(a.Y()) +
		" Q " + draw.Num(control.X()) + " " + draw.Num(control.Y()) +
		" " + draw.Num(b.X()) + " " + draw.Num(b.Y())
}

func markerID(id string) string    { return "marker-" + id }
func connectorID(id string) string { return "connector-" + id }
func mapLabelID(id string) string  { return "label-" + id }

// Init draws connectors, markers and labels into their groups.
func (s *StaticScene) Init(state StaticState) []draw.Command {
	ds := state.Dataset
	center := state.Points[ds.Center.ID]
	cmds := []draw.Command{createTooltip()}
	for _, record := range ds.Collaborations {
		id := record.ID()
		cmds = append(cmds, draw.Create(draw.KindPath, connectorID(id), ConnectorsGroup).
			Attr("d", connectorPath(center, state.Points[id], s.conf.Variant.Bend())).
			Attr("fill", "none").
			Attr("stroke", style.Color(record.Category())).
			AttrNum("stroke-width", style.ConnectorWidth(record.Weight)).
			Attr("stroke-opacity", connectorOpacity))
	}
	cmds = append(cmds, draw.Create(draw.KindCircle, markerID(ds.Center.ID), MarkersGroup).
		AttrNum("cx", center.X).
		AttrNum("cy", center.Y).
		AttrNum("r", centerMarkerRadius).
		Attr("fill", style.HomeColor).
		Attr("stroke", style.AccentColor).
		AttrNum("stroke-width", centerMarkerStrokeWidth).
		StyleProp("cursor", "pointer"))
	for _, record := range ds.Collaborations {
		p := state.Points[record.ID()]
		cmds = append(cmds, draw.Create(draw.KindCircle, markerID(record.ID()), MarkersGroup).
			AttrNum("cx", p.X).
			AttrNum("cy", p.Y).
			AttrNum("r", style.MarkerRadius(record.Weight)).
			Attr("fill", style.Color(record.Category())).
			Attr("stroke", style.NodeStroke).
			AttrNum("stroke-width", markerStrokeWidth).
			StyleProp("cursor", "pointer"))
	}
	cmds = append(cmds, mapLabel(ds.Center.ID, state.Labels[ds.Center.ID], style.HomeColor).
		Attr("font-size", "11").
		Attr("font-weight", "bold"))
	for _, record := range ds.Collaborations {
		l, ok := state.Labels[record.ID()]
		if !ok {
			continue
		}
		cmds = append(cmds, mapLabel(record.ID(), l, style.Color(record.Category())).Attr("font-size", "10"))
	}
	return cmds
}

func mapLabel(id string, l model.LabelPlacement, color string) draw.Command {
	return draw.Create(draw.KindText, mapLabelID(id), LabelsGroup).
		AttrNum("x", l.X).
		AttrNum("y", l.Y).
		Attr("text-anchor", string(l.Anchor)).
		Attr("fill", color).
		Attr("font-family", style.FontFamily).
		StyleProp("pointer-events", "none").
		WithText(l.Text)
}

// Reduce only reacts to hovering, the static map has nothing to drag and
// nothing to animate.
func (s *StaticScene) Reduce(state StaticState, ev Event) (StaticState, []draw.Command) {
	switch ev := ev.(type) {
	case PointerEnter:
		if _, ok := state.Points[ev.Target]; !ok {
			return state, nil
		}
		cmds := []draw.Command{}
		if state.Hovered != "" {
			cmds = append(cmds, s.unhover(state, state.Hovered)...)
		}
		state.Hovered = ev.Target
		return state, append(cmds, s.hover(state, ev)...)
	case PointerLeave:
		if state.Hovered == "" {
			return state, nil
		}
		cmds := append(s.unhover(state, state.Hovered), hideTooltip())
		state.Hovered = ""
		return state, cmds
	}
	return state, nil
}

// connected lists the records linked to the hovered marker: all of them
// for the center, otherwise just the record itself.
func connected(state StaticState, id string) []model.CollaborationRecord {
	if id == state.Dataset.Center.ID {
		return state.Dataset.Collaborations
	}
	return db.FindAll(state.Dataset.Collaborations, func(r model.CollaborationRecord) bool { return r.ID() == id })
}

func (s *StaticScene) hover(state StaticState, ev PointerEnter) []draw.Command {
	ds := state.Dataset
	cmds := []draw.Command{draw.Update(markerID(ds.Center.ID)).AttrNum("stroke-width", hoverStrokeWidth)}
	for _, r := range connected(state, ev.Target) {
		cmds = append(cmds,
			draw.Update(markerID(r.ID())).AttrNum("stroke-width", hoverStrokeWidth),
			draw.Update(connectorID(r.ID())).Attr("stroke-opacity", "1"),
		)
	}
	institution, country := ds.Center.Institution, ds.Center.Country
	if record := s.record(state, ev.Target); record != nil {
		institution, country = record.Institution, record.Country
	}
	return append(cmds, showTooltip(institution, country, ev.PageX, ev.PageY))
}

func (s *StaticScene) unhover(state StaticState, id string) []draw.Command {
	cmds := []draw.Command{draw.Update(markerID(state.Dataset.Center.ID)).AttrNum("stroke-width", centerMarkerStrokeWidth)}
	for _, r := range connected(state, id) {
		cmds = append(cmds,
			draw.Update(markerID(r.ID())).AttrNum("stroke-width", markerStrokeWidth),
			draw.Update(connectorID(r.ID())).Attr("stroke-opacity", connectorOpacity),
		)
	}
	return cmds
}

// record returns nil for the center.
func (s *StaticScene) record(state StaticState, id string) *model.CollaborationRecord {
	return db.FindFirst(state.Dataset.Collaborations, func(r model.CollaborationRecord) bool { return r.ID() == id })
}
