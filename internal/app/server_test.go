package app

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/db/static"
	"github.com/xpsychometrics/collabmap/db/yamlfile"
	"github.com/xpsychometrics/collabmap/draw"
	"github.com/xpsychometrics/collabmap/graph/model"
	"github.com/xpsychometrics/collabmap/internal/controller"
	"github.com/xpsychometrics/collabmap/layout"
)

var testCanvas = controller.CanvasConfig{Width: 1200, Height: 500, MapWidth: 960, MapHeight: 500}

func testServer(t *testing.T, backend db.DB) *httptest.Server {
	conf := Config{Port: "0", HTTPTimeout: 5 * time.Second, CORSOrigins: []string{"*"}}
	s := httptest.NewServer(NewServer(conf, backend, testCanvas).Handler)
	t.Cleanup(s.Close)
	return s
}

func get(t *testing.T, s *httptest.Server, path string) (*http.Response, []byte) {
	r, err := s.Client().Get(s.URL + path)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	assert.NoError(t, err)
	return r, data
}

func TestRoutes(t *testing.T) {
	s := testServer(t, static.New())
	for _, test := range []struct {
		Name        string
		Path        string
		Status      int
		ContentType string
		Contains    []string
	}{
		{Name: "health", Path: "/healthz", Status: http.StatusOK, ContentType: "text/plain", Contains: []string{"ok"}},
		{
			Name:        "force svg",
			Path:        "/map/force.svg",
			Status:      http.StatusOK,
			ContentType: "image/svg+xml",
			Contains:    []string{`id="collaborationMap"`, `id="node-Minneapolis"`, `id="link-Peking_University"`},
		},
		{
			Name:        "force svg in a narrow container",
			Path:        "/map/force.svg?container=640",
			Status:      http.StatusOK,
			ContentType: "image/svg+xml",
			Contains:    []string{`width="600"`, `transform="translate(300,250)"`},
		},
		{
			Name:        "geo svg",
			Path:        "/map/geo.svg",
			Status:      http.StatusOK,
			ContentType: "image/svg+xml",
			Contains:    []string{`id="marker-Minneapolis"`, `id="connector-Peking_University"`, `>Peking University<`},
		},
		{
			Name:        "locations svg",
			Path:        "/map/locations.svg",
			Status:      http.StatusOK,
			ContentType: "image/svg+xml",
			Contains:    []string{`>Beijing<`},
		},
		{Name: "unknown variant", Path: "/map/mercator.svg", Status: http.StatusNotFound},
		{Name: "unknown format", Path: "/map/geo.gif", Status: http.StatusNotFound},
		{Name: "no format", Path: "/map/geo", Status: http.StatusNotFound},
		{
			Name:        "force commands",
			Path:        "/api/force/commands",
			Status:      http.StatusOK,
			ContentType: "application/json",
			Contains:    []string{`"id":"tooltip"`, `"overlay":true`},
		},
		{
			Name:        "national collaborations",
			Path:        "/api/collaborations?category=national",
			Status:      http.StatusOK,
			ContentType: "application/json",
			Contains:    []string{`"University of Alabama"`},
		},
		{Name: "bad category", Path: "/api/collaborations?category=center", Status: http.StatusBadRequest},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			r, body := get(t, s, test.Path)
			assert.Equal(test.Status, r.StatusCode)
			if test.ContentType != "" {
				assert.Contains(r.Header.Get("Content-Type"), test.ContentType)
			}
			for _, exp := range test.Contains {
				assert.Contains(string(body), exp)
			}
			assert.NotEmpty(r.Header.Get("X-Request-Id"))
		})
	}
}

func TestCollaborations_filter(t *testing.T) {
	s := testServer(t, static.New())
	assert := assert.New(t)
	_, body := get(t, s, "/api/collaborations?category=international")
	got := struct {
		Center         model.CenterEntity          `json:"center"`
		Collaborations []model.CollaborationRecord `json:"collaborations"`
	}{}
	assert.NoError(json.Unmarshal(body, &got))
	assert.Equal("Minneapolis", got.Center.ID)
	assert.NotEmpty(got.Collaborations)
	for _, rec := range got.Collaborations {
		assert.NotEqual(model.HomeCountry, rec.Country)
	}
}

func TestMapPNG(t *testing.T) {
	s := testServer(t, static.New())
	for _, test := range []struct {
		Path   string
		Width  int
		Height int
	}{
		{Path: "/map/force.png", Width: 1200, Height: 500},
		{Path: "/map/geo.png?invert=true", Width: 960, Height: 500},
	} {
		t.Run(test.Path, func(t *testing.T) {
			assert := assert.New(t)
			r, body := get(t, s, test.Path)
			assert.Equal(http.StatusOK, r.StatusCode)
			img, err := png.Decode(bytes.NewReader(body))
			if assert.NoError(err) {
				assert.Equal(test.Width, img.Bounds().Dx())
				assert.Equal(test.Height, img.Bounds().Dy())
			}
		})
	}
}

func TestForceCommands_decode(t *testing.T) {
	s := testServer(t, static.New())
	_, body := get(t, s, "/api/force/commands")
	cmds := []draw.Command{}
	assert.NoError(t, json.Unmarshal(body, &cmds))
	page := testCanvas.Page(false)
	surface, _ := page.Surface(controller.SurfaceID)
	assert.NoError(t, draw.Dispatch(surface, page.Body(), cmds))
	assert.True(t, page.BodyCanvas().Has("tooltip"))
}

func TestDatasetUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockdb := db.NewMockDB(ctrl)
	mockdb.EXPECT().Dataset(gomock.Any()).Return(nil, errors.New("down")).AnyTimes()
	s := testServer(t, mockdb)
	for _, path := range []string{"/api/collaborations", "/api/force/commands", "/map/force.svg", "/map/geo.png"} {
		r, _ := get(t, s, path)
		assert.Equal(t, http.StatusServiceUnavailable, r.StatusCode, path)
	}
}

func TestMetrics(t *testing.T) {
	s := testServer(t, static.New())
	get(t, s, "/map/force.svg")
	get(t, s, "/healthz")
	_, body := get(t, s, "/metrics")
	assert := assert.New(t)
	assert.Contains(string(body), `collabmap_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
	assert.Contains(string(body), `collabmap_http_requests_total{method="GET",path="/map/{file}",status="200"} 1`)
	assert.Contains(string(body), `collabmap_layout_iterations_count 1`)
}

func TestInstrumentLayouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := controller.NewMockLayouter(ctrl)
	inner.EXPECT().Reload(gomock.Any(), gomock.Any()).Return(layout.Stats{Iterations: 123, TotalTime: time.Millisecond})
	m := NewMetrics()
	stats := m.InstrumentLayouter(inner).Reload(context.Background(), nil)
	assert.Equal(t, 123, stats.Iterations)
	families, err := m.registry.Gather()
	assert.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "collabmap_layout_iterations" {
			found = true
			assert.Equal(t, 123.0, f.GetMetric()[0].GetHistogram().GetSampleSum())
		}
	}
	assert.True(t, found)
}

func TestOpenDB(t *testing.T) {
	for _, test := range []struct {
		Name   string
		Source db.Source
		Exp    interface{}
		Err    bool
	}{
		{Name: "default", Source: "", Exp: &static.DB{}},
		{Name: "static", Source: db.SourceStatic, Exp: &static.DB{}},
		{Name: "yaml", Source: db.SourceYAML, Exp: &yamlfile.DB{}},
		{Name: "unknown", Source: "arangodb", Err: true},
	} {
		t.Run(test.Name, func(t *testing.T) {
			backend, err := OpenDB(db.Config{Source: test.Source, File: "x.yaml"})
			if test.Err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.IsType(t, test.Exp, backend)
		})
	}
}

func TestRetryAtIntervals(t *testing.T) {
	calls := 0
	RetryAtIntervals(func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, []time.Duration{time.Millisecond})
	assert.Equal(t, 3, calls)
}

func TestGetEnvConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.org,https://b.org")
	conf := GetEnvConfig()
	assert := assert.New(t)
	assert.Equal("9090", conf.Port)
	assert.Equal([]string{"https://a.org", "https://b.org"}, conf.CORSOrigins)
	assert.Equal(5*time.Second, conf.HTTPTimeout)
}
