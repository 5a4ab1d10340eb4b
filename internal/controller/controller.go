package controller

import (
	"context"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/draw"
	"github.com/xpsychometrics/collabmap/graph"
	"github.com/xpsychometrics/collabmap/graph/model"
	"github.com/xpsychometrics/collabmap/layout"
	"github.com/xpsychometrics/collabmap/projection"
	"github.com/xpsychometrics/collabmap/scene"
)

// SurfaceID is the id of the drawing surface on the host page.
const SurfaceID = "collaborationMap"

var ErrAnchorMissing = errors.New("required drawing anchor missing")

type CanvasConfig struct {
	// Width and Height of the force variant.
	Width  float64 `env:"CANVAS_WIDTH" envDefault:"1200"`
	Height float64 `env:"CANVAS_HEIGHT" envDefault:"500"`
	// MapWidth and MapHeight of the static variants.
	MapWidth  float64 `env:"MAP_WIDTH" envDefault:"960"`
	MapHeight float64 `env:"MAP_HEIGHT" envDefault:"500"`
}

func GetEnvConfig() CanvasConfig {
	conf := CanvasConfig{}
	env.Parse(&conf)
	return conf
}

// CanvasWidth derives the force canvas width from the width of its
// container, keeping a 40px margin. Without a usable container width the
// fallback is used.
func CanvasWidth(containerWidth, fallback float64) float64 {
	if w := containerWidth - 40; w > 0 {
		return w
	}
	return fallback
}

// Page returns an empty host page with the surface the variant expects.
func (conf CanvasConfig) Page(static bool) *draw.Document {
	doc := draw.NewDocument()
	if static {
		doc.AddSurface(SurfaceID, surfaceAttrs(conf.MapWidth, conf.MapHeight), scene.StaticGroups...)
	} else {
		doc.AddSurface(SurfaceID, surfaceAttrs(conf.Width, conf.Height))
	}
	return doc
}

func surfaceAttrs(w, h float64) map[string]string {
	return map[string]string{
		"width":   draw.Num(w),
		"height":  draw.Num(h),
		"viewBox": "0 0 " + draw.Num(w) + " " + draw.Num(h),
	}
}

// Mount looks up the surface and its child groups. If any of them is
// missing it logs a single error and returns false; callers then draw
// nothing at all.
func Mount(ctx context.Context, host draw.Host, id string, groups ...string) (draw.Surface, bool) {
	surface, ok := host.Surface(id)
	if !ok {
		log.Ctx(ctx).Error().Err(errors.Wrapf(ErrAnchorMissing, "surface '%s'", id)).Msg("collaboration map not rendered")
		return nil, false
	}
	for _, group := range groups {
		if !surface.Has(group) {
			log.Ctx(ctx).Error().Err(errors.Wrapf(ErrAnchorMissing, "group '%s' in surface '%s'", group, id)).Msg("collaboration map not rendered")
			return nil, false
		}
	}
	return surface, true
}

type Controller struct {
	db       db.DB
	layouter Layouter
	canvas   CanvasConfig
}

func NewController(newdb db.DB, layouter Layouter, canvas CanvasConfig) *Controller {
	return &Controller{db: newdb, layouter: layouter, canvas: canvas}
}

func (c *Controller) Canvas() CanvasConfig {
	return c.canvas
}

// WithCanvas returns a controller sharing backend and layouter that draws
// on a canvas of another size.
func (c *Controller) WithCanvas(canvas CanvasConfig) *Controller {
	cp := *c
	cp.canvas = canvas
	return &cp
}

func (c *Controller) Dataset(ctx context.Context) (*model.Dataset, error) {
	ds, err := c.db.Dataset(ctx)
	if err != nil || ds == nil {
		if err == nil {
			err = errors.New("no dataset")
		}
		log.Ctx(ctx).Error().Msgf("%v", err)
		return nil, err
	}
	log.Ctx(ctx).Debug().Msgf("Dataset() -> %d collaborations", len(ds.Collaborations))
	return ds, nil
}

// ForceGraph builds the graph of the current dataset with settled positions.
func (c *Controller) ForceGraph(ctx context.Context) (*graph.ForceGraph, error) {
	ds, err := c.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	g := graph.BuildForceGraph(ds.Center, ds.Collaborations, graph.BuildConfig{Width: c.canvas.Width, Height: c.canvas.Height})
	if !c.layouter.GetNodePositions(ctx, g) {
		stats := c.layouter.Reload(ctx, g)
		log.Ctx(ctx).Info().Msgf("graph layout: {iterations: %d, time: %d ms}", stats.Iterations, stats.TotalTime.Milliseconds())
	}
	return g, nil
}

// ForceCommands returns the commands drawing the force variant.
func (c *Controller) ForceCommands(ctx context.Context) ([]draw.Command, error) {
	g, err := c.ForceGraph(ctx)
	if err != nil {
		return nil, err
	}
	sc := scene.NewForceScene(scene.ForceConfig{Width: c.canvas.Width, Height: c.canvas.Height})
	state := scene.NewForceState(g, layout.NewForceSimulation(graph.SimulationConfig()))
	return sc.Init(state), nil
}

// StaticCommands returns the commands drawing a static map variant.
func (c *Controller) StaticCommands(ctx context.Context, variant scene.Variant) ([]draw.Command, error) {
	ds, err := c.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	sc := c.staticScene(variant)
	state := sc.Layout(ds)
	if state.Fallbacks > 0 {
		log.Ctx(ctx).Debug().Msgf("%d labels of map '%s' overlap", state.Fallbacks, variant)
	}
	return sc.Init(state), nil
}

func (c *Controller) staticScene(variant scene.Variant) *scene.StaticScene {
	conf := projection.DefaultConfig
	conf.Width, conf.Height = c.canvas.MapWidth, c.canvas.MapHeight
	return scene.NewStaticScene(scene.StaticConfig{Variant: variant, Projection: conf})
}

// RenderForce draws the force variant into host. It returns false without
// error when the host lacks the surface.
func (c *Controller) RenderForce(ctx context.Context, host draw.Host) (bool, error) {
	surface, ok := Mount(ctx, host, SurfaceID)
	if !ok {
		return false, nil
	}
	cmds, err := c.ForceCommands(ctx)
	if err != nil {
		return false, err
	}
	return true, draw.Dispatch(surface, host.Body(), cmds)
}

// RenderStatic draws a static map variant into host. It returns false
// without error when the host lacks the surface or one of its groups.
func (c *Controller) RenderStatic(ctx context.Context, host draw.Host, variant scene.Variant) (bool, error) {
	surface, ok := Mount(ctx, host, SurfaceID, scene.StaticGroups...)
	if !ok {
		return false, nil
	}
	cmds, err := c.StaticCommands(ctx, variant)
	if err != nil {
		return false, err
	}
	return true, draw.Dispatch(surface, host.Body(), cmds)
}
