// Package scene holds the two visualizations as reducers: an event and the
// current state go in, the next state and the draw commands come out.
package scene

// Event is one of the interaction or animation events below.
type Event interface {
	event()
}

// PointerEnter is sent when the pointer enters the node or marker Target.
// PageX and PageY are page coordinates, used to place the tooltip.
type PointerEnter struct {
	Target string
	PageX  float64
	PageY  float64
}

type PointerLeave struct {
	Target string
}

// PointerMove is sent for every pointer move over the surface, X and Y are
// in graph coordinates.
type PointerMove struct {
	X float64
	Y float64
}

type DragStart struct {
	Target string
	X      float64
	Y      float64
}

type DragMove struct {
	Target string
	X      float64
	Y      float64
}

type DragEnd struct {
	Target string
}

// FrameTick is sent once per animation frame.
type FrameTick struct{}

func (PointerEnter) event() {}
func (PointerLeave) event() {}
func (PointerMove) event()  {}
func (DragStart) event()    {}
func (DragMove) event()     {}
func (DragEnd) event()      {}
func (FrameTick) event()    {}

const TooltipID = "tooltip"

// tooltipHTML is the tooltip body of an institution.
func tooltipHTML(institution, country string) string {
	return "<strong>" + institution + "</strong><br>" + country
}
