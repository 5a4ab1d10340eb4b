// Package projection maps geographic coordinates onto the static map canvas.
//
// The canvas is split into two side-by-side bands. The home region (a fixed
// lat/lng box) gets the wider left band, everything else shares the right
// band. This is a piecewise-linear scheme, not a cartographic projection.
package projection

import (
	"github.com/xpsychometrics/collabmap/graph/model"
)

type Region int

const (
	RegionHome Region = iota
	RegionOther
)

func (r Region) String() string {
	if r == RegionHome {
		return "home"
	}
	return "other"
}

// Box is an inclusive lat/lng bounding box.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

func (b Box) Contains(p model.GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// HomeBox covers the contiguous United States.
var HomeBox = Box{MinLat: 24.5, MaxLat: 49.5, MinLng: -125.0, MaxLng: -66.9}

type Config struct {
	Width, Height float64
	Padding       float64
	Home          Box
	// HomeBandEnd is the right edge of the home band as a fraction of Width.
	HomeBandEnd float64
	// OtherBandStart is the left edge of the other band as a fraction of Width.
	OtherBandStart float64
	// MeridianAt is where longitude 0 lands inside the other band, as a
	// fraction of Width.
	MeridianAt float64
}

var DefaultConfig = Config{
	Width:          960,
	Height:         500,
	Padding:        20,
	Home:           HomeBox,
	HomeBandEnd:    0.62,
	OtherBandStart: 0.66,
	MeridianAt:     0.76,
}

// linear maps [d0, d1] onto [r0, r1] and extrapolates outside the domain.
type linear struct {
	d0, d1, r0, r1 float64
}

func (s linear) apply(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

type Projector struct {
	conf         Config
	homeX, homeY linear
	westX, eastX linear
	otherY       linear
}

func NewProjector(conf Config) *Projector {
	if conf.Width == 0 || conf.Height == 0 {
		conf.Width, conf.Height = DefaultConfig.Width, DefaultConfig.Height
	}
	if conf.Padding == 0 {
		conf.Padding = DefaultConfig.Padding
	}
	if conf.Home == (Box{}) {
		conf.Home = DefaultConfig.Home
	}
	if conf.HomeBandEnd == 0 {
		conf.HomeBandEnd = DefaultConfig.HomeBandEnd
	}
	if conf.OtherBandStart == 0 {
		conf.OtherBandStart = DefaultConfig.OtherBandStart
	}
	if conf.MeridianAt == 0 {
		conf.MeridianAt = DefaultConfig.MeridianAt
	}
	w, h, pad := conf.Width, conf.Height, conf.Padding
	meridian := conf.MeridianAt * w
	return &Projector{
		conf:   conf,
		homeX:  linear{conf.Home.MinLng, conf.Home.MaxLng, pad, conf.HomeBandEnd * w},
		homeY:  linear{conf.Home.MaxLat, conf.Home.MinLat, pad, h - pad},
		westX:  linear{-180, 0, conf.OtherBandStart * w, meridian},
		eastX:  linear{0, 180, meridian, w - pad},
		otherY: linear{90, -90, pad, h - pad},
	}
}

func (p *Projector) Config() Config {
	return p.conf
}

// Region reports which transform Project applies to pt.
func (p *Projector) Region(pt model.GeoPoint) Region {
	if p.conf.Home.Contains(pt) {
		return RegionHome
	}
	return RegionOther
}

func (p *Projector) Project(pt model.GeoPoint) model.ScreenPoint {
	if p.Region(pt) == RegionHome {
		return p.projectHome(pt)
	}
	return p.projectOther(pt)
}

func (p *Projector) projectHome(pt model.GeoPoint) model.ScreenPoint {
	return model.ScreenPoint{X: p.homeX.apply(pt.Lng), Y: p.homeY.apply(pt.Lat)}
}

func (p *Projector) projectOther(pt model.GeoPoint) model.ScreenPoint {
	x := p.eastX
	if pt.Lng < 0 {
		x = p.westX
	}
	return model.ScreenPoint{X: x.apply(pt.Lng), Y: p.otherY.apply(pt.Lat)}
}
