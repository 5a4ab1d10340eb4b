package projection

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/xpsychometrics/collabmap/graph/model"
)

var minneapolis = model.GeoPoint{Lat: 44.9778, Lng: -93.2650}

func TestProjector_homeRegion(t *testing.T) {
	p := NewProjector(DefaultConfig)
	assert := assert.New(t)
	assert.Equal(RegionHome, p.Region(minneapolis))
	got := p.Project(minneapolis)
	assert.Equal(p.projectHome(minneapolis), got)
	assert.NotEqual(p.projectOther(minneapolis), got)
	assert.InDelta(20+(-93.2650+125.0)/58.1*(0.62*960-20), got.X, 1e-9)
	assert.InDelta(20+(49.5-44.9778)/25.0*460, got.Y, 1e-9)
}

func TestProjector_otherRegion(t *testing.T) {
	p := NewProjector(DefaultConfig)
	for _, test := range []struct {
		Name       string
		Point      model.GeoPoint
		XMin, XMax float64
	}{
		{Name: "madrid lands west of the meridian", Point: model.GeoPoint{Lat: 40.4168, Lng: -3.7038}, XMin: 0.66 * 960, XMax: 0.76 * 960},
		{Name: "berlin lands east of the meridian", Point: model.GeoPoint{Lat: 52.52, Lng: 13.405}, XMin: 0.76 * 960, XMax: 940},
		{Name: "hong kong", Point: model.GeoPoint{Lat: 22.3193, Lng: 114.1694}, XMin: 0.76 * 960, XMax: 940},
		{Name: "meridian itself goes east", Point: model.GeoPoint{Lat: 51.48, Lng: 0}, XMin: 0.75 * 960, XMax: 0.77 * 960},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(RegionOther, p.Region(test.Point))
			got := p.Project(test.Point)
			assert.Equal(p.projectOther(test.Point), got)
			assert.GreaterOrEqual(got.X, test.XMin)
			assert.LessOrEqual(got.X, test.XMax)
			assert.InDelta(20+(90-test.Point.Lat)/180*460, got.Y, 1e-9)
		})
	}
}

func TestNewProjector_defaults(t *testing.T) {
	for _, test := range []struct {
		Name    string
		Conf    Config
		Padding float64
	}{
		{Name: "zero config", Conf: Config{}, Padding: 20},
		{Name: "size only", Conf: Config{Width: 800, Height: 400}, Padding: 20},
		{Name: "explicit padding", Conf: Config{Width: 800, Height: 400, Padding: 5}, Padding: 5},
	} {
		t.Run(test.Name, func(t *testing.T) {
			p := NewProjector(test.Conf)
			assert := assert.New(t)
			assert.Equal(test.Padding, p.Config().Padding)
			// the south-west corner of the home box lands on the padded edge
			got := p.Project(model.GeoPoint{Lat: HomeBox.MinLat, Lng: HomeBox.MinLng})
			assert.InDelta(test.Padding, got.X, 1e-9)
			assert.InDelta(p.Config().Height-test.Padding, got.Y, 1e-9)
		})
	}
}

func TestProjector_outOfRangeIsFinite(t *testing.T) {
	p := NewProjector(Config{})
	got := p.Project(model.GeoPoint{Lat: 200, Lng: -400})
	assert := assert.New(t)
	assert.False(math.IsNaN(got.X) || math.IsInf(got.X, 0))
	assert.False(math.IsNaN(got.Y) || math.IsInf(got.Y, 0))
	assert.Less(got.Y, 20.0, "extrapolates above the band")
}

func TestProjector_properties(t *testing.T) {
	p := NewProjector(DefaultConfig)
	conf := p.Config()
	const eps = 1e-9
	properties := gopter.NewProperties(nil)
	properties.Property("deterministic", prop.ForAll(
		func(lat, lng float64) bool {
			pt := model.GeoPoint{Lat: lat, Lng: lng}
			return p.Project(pt) == p.Project(pt)
		},
		gen.Float64Range(-90, 90), gen.Float64Range(-180, 180),
	))
	properties.Property("home box lands in the home band", prop.ForAll(
		func(lat, lng float64) bool {
			pt := model.GeoPoint{Lat: lat, Lng: lng}
			got := p.Project(pt)
			return p.Region(pt) == RegionHome &&
				got.X >= conf.Padding-eps && got.X <= conf.HomeBandEnd*conf.Width+eps &&
				got.Y >= conf.Padding-eps && got.Y <= conf.Height-conf.Padding+eps
		},
		gen.Float64Range(HomeBox.MinLat, HomeBox.MaxLat), gen.Float64Range(HomeBox.MinLng, HomeBox.MaxLng),
	))
	properties.Property("outside the box lands in the other band", prop.ForAll(
		func(lat, lng float64) bool {
			pt := model.GeoPoint{Lat: lat, Lng: lng}
			if HomeBox.Contains(pt) {
				return p.Region(pt) == RegionHome
			}
			got := p.Project(pt)
			return p.Region(pt) == RegionOther &&
				got.X >= conf.OtherBandStart*conf.Width-eps && got.X <= conf.Width-conf.Padding+eps
		},
		gen.Float64Range(-90, 90), gen.Float64Range(-180, 180),
	))
	properties.TestingRun(t)
}

func TestBox_Contains(t *testing.T) {
	assert := assert.New(t)
	assert.True(HomeBox.Contains(model.GeoPoint{Lat: 24.5, Lng: -125.0}), "edges are inclusive")
	assert.False(HomeBox.Contains(model.GeoPoint{Lat: 24.4, Lng: -100}))
	assert.False(HomeBox.Contains(model.GeoPoint{Lat: 30, Lng: -66.8}))
}
