package draw

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"
)

// WritePNG rasterizes circles, lines and paths of the canvas. Text and
// images are skipped; the result is a preview, not a replacement for SVG.
func (c *Canvas) WritePNG(w io.Writer, width, height int, invertColor bool) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var background color.Color = color.White
	if invertColor {
		background = color.Black
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, background)
		}
	}
	r := raster{img: img, fallback: color.Black}
	if invertColor {
		r.fallback = color.White
	}
	for _, child := range c.root.Children {
		r.element(child, 0, 0)
	}
	return png.Encode(w, img)
}

type raster struct {
	img      *image.RGBA
	fallback color.Color
}

func (r raster) element(e *Element, ox, oy float64) {
	if e.Style["opacity"] == "0" || e.Attrs["opacity"] == "0" {
		return
	}
	if tx, ty, ok := parseTranslate(e.Attrs["transform"]); ok {
		ox, oy = ox+tx, oy+ty
	}
	switch e.Kind {
	case KindCircle:
		r.circle(ox+num(e.Attrs["cx"]), oy+num(e.Attrs["cy"]), num(e.Attrs["r"]), r.color(e.Attrs["fill"]))
	case KindLine:
		r.line(ox+num(e.Attrs["x1"]), oy+num(e.Attrs["y1"]), ox+num(e.Attrs["x2"]), oy+num(e.Attrs["y2"]), r.color(e.Attrs["stroke"]))
	case KindPath:
		r.path(e.Attrs["d"], ox, oy, r.color(e.Attrs["stroke"]))
	}
	for _, child := range e.Children {
		r.element(child, ox, oy)
	}
}

func (r raster) color(hex string) color.Color {
	switch {
	case hex == "white":
		return color.White
	case len(hex) == 7 && hex[0] == '#':
		v, err := strconv.ParseUint(hex[1:], 16, 32)
		if err != nil {
			return r.fallback
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	default:
		return r.fallback
	}
}

func (r raster) circle(cx, cy, radius float64, col color.Color) {
	for y := int(math.Floor(cy - radius)); y <= int(math.Ceil(cy+radius)); y++ {
		for x := int(math.Floor(cx - radius)); x <= int(math.Ceil(cx+radius)); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= radius*radius {
				r.img.Set(x, y, col)
			}
		}
	}
}

func (r raster) line(x1, y1, x2, y2 float64, col color.Color) {
	steps := int(math.Ceil(math.Max(math.Abs(x2-x1), math.Abs(y2-y1))))
	if steps == 0 {
		r.img.Set(int(math.Round(x1)), int(math.Round(y1)), col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.img.Set(int(math.Round(x1+(x2-x1)*t)), int(math.Round(y1+(y2-y1)*t)), col)
	}
}

// path understands "M x y L x y" and "M x y Q cx cy x y", which is all the
// scenes emit.
func (r raster) path(d string, ox, oy float64, col color.Color) {
	var x0, y0, cx, cy, x1, y1 float64
	if n, _ := fmt.Sscanf(d, "M %g %g Q %g %g %g %g", &x0, &y0, &cx, &cy, &x1, &y1); n == 6 {
		const segments = 24
		px, py := x0, y0
		for i := 1; i <= segments; i++ {
			t := float64(i) / segments
			qx := (1-t)*(1-t)*x0 + 2*(1-t)*t*cx + t*t*x1
			qy := (1-t)*(1-t)*y0 + 2*(1-t)*t*cy + t*t*y1
			r.line(ox+px, oy+py, ox+qx, oy+qy, col)
			px, py = qx, qy
		}
		return
	}
	if n, _ := fmt.Sscanf(d, "M %g %g L %g %g", &x0, &y0, &x1, &y1); n == 4 {
		r.line(ox+x0, oy+y0, ox+x1, oy+y1, col)
	}
}

func num(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseTranslate(s string) (float64, float64, bool) {
	if !strings.HasPrefix(s, "translate(") {
		return 0, 0, false
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "translate("), ")"), ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	return num(strings.TrimSpace(parts[0])), num(strings.TrimSpace(parts[1])), true
}
