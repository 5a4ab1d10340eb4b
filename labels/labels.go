// Package labels places text labels next to their markers without letting
// them pile up on each other.
//
// The search is greedy and order dependent: every label only considers the
// ones placed before it, and a placed label is never moved again.
package labels

import (
	"math"

	"github.com/xpsychometrics/collabmap/graph/model"
)

// MinSeparation is the distance a label must keep from every earlier label.
const MinSeparation = 30.0

// Candidate is an offset from the anchor point together with the text
// alignment that makes the label lean away from its marker.
type Candidate struct {
	DX, DY float64
	Anchor model.TextAnchor
}

// Candidates are tried in this order. The first one is also the fallback.
var Candidates = []Candidate{
	{DX: 0, DY: -12, Anchor: model.AnchorMiddle}, // above
	{DX: 12, DY: 0, Anchor: model.AnchorStart},   // right
	{DX: -12, DY: 0, Anchor: model.AnchorEnd},    // left
	{DX: 0, DY: 20, Anchor: model.AnchorMiddle},  // below
	{DX: 10, DY: -10, Anchor: model.AnchorStart}, // upper right
	{DX: -10, DY: -10, Anchor: model.AnchorEnd},  // upper left
	{DX: 10, DY: 14, Anchor: model.AnchorStart},  // lower right
	{DX: -10, DY: 14, Anchor: model.AnchorEnd},   // lower left
}

func (c Candidate) at(anchor model.ScreenPoint, text string) model.LabelPlacement {
	return model.LabelPlacement{X: anchor.X + c.DX, Y: anchor.Y + c.DY, Anchor: c.Anchor, Text: text}
}

func distance(a, b model.ScreenPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clearOf(p model.LabelPlacement, placed []model.LabelPlacement, minSeparation float64) bool {
	for _, other := range placed {
		if distance(p.Point(), other.Point()) <= minSeparation {
			return false
		}
	}
	return true
}

// Place picks the first candidate around anchor that keeps MinSeparation to
// every label in placed. If none does, the label goes directly above the
// anchor and is allowed to overlap.
func Place(anchor model.ScreenPoint, text string, placed []model.LabelPlacement) model.LabelPlacement {
	return place(anchor, text, placed, Candidates, MinSeparation)
}

func place(anchor model.ScreenPoint, text string, placed []model.LabelPlacement, candidates []Candidate, minSeparation float64) model.LabelPlacement {
	for _, c := range candidates {
		p := c.at(anchor, text)
		if clearOf(p, placed, minSeparation) {
			return p
		}
	}
	return candidates[0].at(anchor, text)
}

// Placer remembers what it placed so callers can feed labels one by one.
type Placer struct {
	MinSeparation float64
	Candidates    []Candidate
	placed        []model.LabelPlacement
	fallbacks     int
}

func NewPlacer() *Placer {
	return &Placer{MinSeparation: MinSeparation, Candidates: Candidates}
}

func (p *Placer) Place(anchor model.ScreenPoint, text string) model.LabelPlacement {
	if len(p.Candidates) == 0 {
		p.Candidates = Candidates
	}
	if p.MinSeparation == 0 {
		p.MinSeparation = MinSeparation
	}
	res := place(anchor, text, p.placed, p.Candidates, p.MinSeparation)
	if !clearOf(res, p.placed, p.MinSeparation) {
		p.fallbacks++
	}
	p.placed = append(p.placed, res)
	return res
}

func (p *Placer) Placed() []model.LabelPlacement {
	return p.placed
}

// Fallbacks counts labels that could not avoid an overlap.
func (p *Placer) Fallbacks() int {
	return p.fallbacks
}
