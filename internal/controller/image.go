package controller

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/xpsychometrics/collabmap/draw"
	"github.com/xpsychometrics/collabmap/scene"
)

// ForceMap names the force variant next to the static ones.
const ForceMap = "force"

var ErrUnknownMap = errors.New("unknown map")

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// MapNames lists every map Image can render.
func MapNames() []string {
	names := []string{ForceMap}
	for _, v := range scene.Variants {
		names = append(names, string(v))
	}
	return names
}

// Image renders the map called name on a fresh page and serializes its
// surface. invert only affects PNG output.
func (c *Controller) Image(ctx context.Context, name string, format Format, invert bool) ([]byte, error) {
	if format != FormatSVG && format != FormatPNG {
		return nil, errors.Wrapf(ErrUnknownMap, "format '%s'", format)
	}
	var (
		page          *draw.Document
		rendered      bool
		err           error
		width, height float64
	)
	if name == ForceMap {
		width, height = c.canvas.Width, c.canvas.Height
		page = c.canvas.Page(false)
		rendered, err = c.RenderForce(ctx, page)
	} else {
		variant, perr := scene.ParseVariant(name)
		if perr != nil {
			return nil, errors.Wrapf(ErrUnknownMap, "%v", perr)
		}
		width, height = c.canvas.MapWidth, c.canvas.MapHeight
		page = c.canvas.Page(true)
		rendered, err = c.RenderStatic(ctx, page, variant)
	}
	if err != nil {
		return nil, err
	}
	if !rendered {
		return nil, ErrAnchorMissing
	}
	surface, _ := page.Canvas(SurfaceID)
	buf := &bytes.Buffer{}
	if format == FormatSVG {
		err = surface.WriteSVG(buf)
	} else {
		err = surface.WritePNG(buf, int(width), int(height), invert)
	}
	return buf.Bytes(), errors.Wrapf(err, "writing %s", format)
}
