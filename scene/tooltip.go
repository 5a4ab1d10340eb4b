package scene

import (
	"github.com/xpsychometrics/collabmap/draw"
)

func createTooltip() draw.Command {
	cmd := draw.Create(draw.KindTooltip, TooltipID, "").Attr("class", "network-tooltip").OnOverlay()
	for _, prop := range [][2]string{
		{"opacity", "0"},
		{"position", "absolute"},
		{"background", "rgba(0, 0, 0, 0.85)"},
		{"color", "white"},
		{"padding", "10px 14px"},
		{"border-radius", "6px"},
		{"font-size", "13px"},
		{"pointer-events", "none"},
		{"z-index", "1000"},
		{"max-width", "300px"},
		{"line-height", "1.5"},
	} {
		cmd = cmd.StyleProp(prop[0], prop[1])
	}
	return cmd
}

// showTooltip moves the tooltip next to the pointer.
func showTooltip(institution, country string, pageX, pageY float64) draw.Command {
	return draw.Update(TooltipID).
		WithText(tooltipHTML(institution, country)).
		StyleProp("opacity", "1").
		StyleProp("left", draw.Num(pageX+10)+"px").
		StyleProp("top", draw.Num(pageY-10)+"px").
		OnOverlay()
}

func hideTooltip() draw.Command {
	return draw.Update(TooltipID).StyleProp("opacity", "0").OnOverlay()
}
