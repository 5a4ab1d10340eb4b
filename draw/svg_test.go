package draw

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvas_SVG(t *testing.T) {
	c := NewCanvas("collaborationMap", map[string]string{"width": "100", "height": "50"})
	assert := assert.New(t)
	assert.NoError(c.Apply(
		Create(KindGroup, "g", "").Attr("transform", Translate(50, 25)),
		Create(KindCircle, "dot", "g").AttrNum("r", 5).Attr("fill", "#8C1D40"),
		Create(KindText, "label", "g").Attr("text-anchor", "middle").StyleProp("opacity", "0.8").WithText("A & B"),
	))
	exp := `<svg id="collaborationMap" height="50" width="100" xmlns="http://www.w3.org/2000/svg">
  <g id="g" transform="translate(50,25)">
    <circle id="dot" fill="#8C1D40" r="5"/>
    <text id="label" text-anchor="middle" style="opacity: 0.8">A &amp; B</text>
  </g>
</svg>
`
	assert.Equal(exp, c.SVG())
}

func TestCanvas_WritePNG(t *testing.T) {
	c := NewCanvas("m", nil)
	assert := assert.New(t)
	assert.NoError(c.Apply(
		Create(KindGroup, "g", "").Attr("transform", Translate(10, 10)),
		Create(KindCircle, "dot", "g").AttrNum("r", 3).Attr("fill", "#8C1D40"),
		Create(KindPath, "p", "").Attr("d", "M 0 19 Q 10 19 19 19").Attr("stroke", "#FFD700"),
		Create(KindCircle, "hidden", "").AttrNum("cx", 2).AttrNum("cy", 2).AttrNum("r", 1).Attr("fill", "#000000").Attr("opacity", "0"),
	))
	buf := bytes.Buffer{}
	assert.NoError(c.WritePNG(&buf, 20, 20, false))
	img, err := png.Decode(&buf)
	if !assert.NoError(err) {
		return
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal([3]uint32{0x8C8C, 0x1D1D, 0x4040}, [3]uint32{r, g, b}, "circle center")
	r, g, b, _ = img.At(5, 19).RGBA()
	assert.Equal([3]uint32{0xFFFF, 0xD7D7, 0x0000}, [3]uint32{r, g, b}, "path")
	r, g, b, _ = img.At(2, 2).RGBA()
	assert.Equal([3]uint32{0xFFFF, 0xFFFF, 0xFFFF}, [3]uint32{r, g, b}, "invisible elements are skipped")
}
