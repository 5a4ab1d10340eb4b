package model

import (
	"regexp"
)

// HomeCountry is the country of the center entity. Collaborators located
// there are national, everyone else is international.
const HomeCountry = "United States"

type Category string

const (
	CategoryNational      Category = "national"
	CategoryInternational Category = "international"
	// CategoryCenter is only ever assigned to the CenterEntity.
	CategoryCenter Category = "center"
)

// CategoryOf classifies a collaborator by its country.
func CategoryOf(country string) Category {
	if country == HomeCountry {
		return CategoryNational
	}
	return CategoryInternational
}

type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
}

type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CollaborationRecord struct {
	Institution string   `json:"institution" yaml:"institution" validate:"required"`
	Country     string   `json:"country" yaml:"country" validate:"required"`
	City        string   `json:"city" yaml:"city"`
	Weight      int      `json:"weight" yaml:"weight" validate:"gt=0"`
	Location    GeoPoint `json:"location" yaml:"location"`
}

var whitespace = regexp.MustCompile(`\s+`)

// ID is the institution name with whitespace runs replaced by underscores.
func (r CollaborationRecord) ID() string {
	return whitespace.ReplaceAllString(r.Institution, "_")
}

func (r CollaborationRecord) Category() Category {
	return CategoryOf(r.Country)
}

type CenterEntity struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Institution string   `json:"institution" yaml:"institution"`
	Country     string   `json:"country" yaml:"country"`
	City        string   `json:"city" yaml:"city"`
	Location    GeoPoint `json:"location" yaml:"location"`
	// Image is the marker drawn for the center in the force variant.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

type LabelPlacement struct {
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Anchor TextAnchor `json:"textAnchor"`
	Text   string     `json:"text,omitempty"`
}

func (l LabelPlacement) Point() ScreenPoint {
	return ScreenPoint{X: l.X, Y: l.Y}
}

// Dataset is what every db.DB backend hands out.
type Dataset struct {
	Center         CenterEntity          `json:"center" yaml:"center" validate:"required"`
	Collaborations []CollaborationRecord `json:"collaborations" yaml:"collaborations" validate:"dive"`
}
