// Package draw holds the declarative draw commands produced by the scenes and
// the surfaces that apply them.
package draw

import (
	"math"
	"strconv"
)

type Kind string

const (
	KindGroup   Kind = "g"
	KindCircle  Kind = "circle"
	KindLine    Kind = "line"
	KindPath    Kind = "path"
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindTooltip Kind = "div"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// Command creates, updates or removes one element of a surface. Parent is
// only read on create; an empty parent means the surface root. Overlay
// commands target the page body instead of the surface.
type Command struct {
	Op      Op                `json:"op"`
	Kind    Kind              `json:"kind,omitempty"`
	ID      string            `json:"id"`
	Parent  string            `json:"parent,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
	Text    string            `json:"text,omitempty"`
	Overlay bool              `json:"overlay,omitempty"`
}

func Create(kind Kind, id, parent string) Command {
	return Command{Op: OpCreate, Kind: kind, ID: id, Parent: parent}
}

func Update(id string) Command {
	return Command{Op: OpUpdate, ID: id}
}

func Remove(id string) Command {
	return Command{Op: OpRemove, ID: id}
}

// Attr returns a copy of c with the attribute set.
func (c Command) Attr(key, value string) Command {
	attrs := make(map[string]string, len(c.Attrs)+1)
	for k, v := range c.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	c.Attrs = attrs
	return c
}

func (c Command) AttrNum(key string, value float64) Command {
	return c.Attr(key, Num(value))
}

// StyleProp returns a copy of c with the style property set.
func (c Command) StyleProp(key, value string) Command {
	style := make(map[string]string, len(c.Style)+1)
	for k, v := range c.Style {
		style[k] = v
	}
	style[key] = value
	c.Style = style
	return c
}

func (c Command) WithText(text string) Command {
	c.Text = text
	return c
}

func (c Command) OnOverlay() Command {
	c.Overlay = true
	return c
}

// Num formats a coordinate with at most two decimals.
func Num(f float64) string {
	r := math.Round(f*100) / 100
	if r == 0 {
		r = 0 // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func Translate(x, y float64) string {
	return "translate(" + Num(x) + "," + Num(y) + ")"
}
