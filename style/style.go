// Package style maps collaboration data onto visual attributes.
package style

import (
	"github.com/xpsychometrics/collabmap/graph/model"
	"golang.org/x/exp/constraints"
)

const (
	// HomeColor is used for national collaborators.
	HomeColor = "#8C1D40"
	// AccentColor is used for international collaborators and the center glow.
	AccentColor = "#FFD700"

	NodeStroke      = "white"
	NodeStrokeWidth = 2.5
	FontFamily      = "Arial, sans-serif"
)

// Force variant bounds.
const (
	NodeRadiusMin = 6.0
	NodeRadiusMax = 14.0
	LinkWidthMin  = 1.0
	LinkWidthMax  = 8.0
)

// Static map bounds.
const (
	MarkerRadiusMin   = 3.0
	MarkerRadiusMax   = 9.0
	ConnectorWidthMin = 0.75
	ConnectorWidthMax = 4.0
)

func clamp[T constraints.Ordered](in, lo, hi T) T {
	if in < lo {
		return lo
	}
	if in > hi {
		return hi
	}
	return in
}

func Color(c model.Category) string {
	switch c {
	case model.CategoryNational:
		return HomeColor
	default:
		return AccentColor
	}
}

func NodeRadius(weight int) float64 {
	return clamp(6+float64(weight)*0.6, NodeRadiusMin, NodeRadiusMax)
}

func LinkWidth(weight int) float64 {
	return clamp(float64(weight)*0.8, LinkWidthMin, LinkWidthMax)
}

func MarkerRadius(weight int) float64 {
	return clamp(3+float64(weight)*0.5, MarkerRadiusMin, MarkerRadiusMax)
}

func ConnectorWidth(weight int) float64 {
	return clamp(0.5+float64(weight)*0.35, ConnectorWidthMin, ConnectorWidthMax)
}

// Truncate shortens names longer than max runes to max-3 runes plus "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
