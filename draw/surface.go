package draw

import (
	"github.com/pkg/errors"
)

// Surface is a drawing target that draw commands are applied to.
type Surface interface {
	ID() string
	// Has reports whether an element with the given id exists.
	Has(id string) bool
	Apply(cmds ...Command) error
}

// Host is the page a visualization is mounted into.
type Host interface {
	Surface(id string) (Surface, bool)
	// Body receives elements that float above the page, e.g. tooltips.
	Body() Surface
}

type Element struct {
	Kind     Kind
	ID       string
	Attrs    map[string]string
	Style    map[string]string
	Text     string
	Children []*Element
	parent   *Element
}

// Canvas is an in-memory Surface. It keeps the element tree so that it can
// be serialized afterwards.
type Canvas struct {
	root  *Element
	index map[string]*Element
	// applied counts every command applied successfully
	applied int
}

func NewCanvas(id string, attrs map[string]string) *Canvas {
	if attrs == nil {
		attrs = map[string]string{}
	}
	root := &Element{Kind: "svg", ID: id, Attrs: attrs, Style: map[string]string{}}
	return &Canvas{root: root, index: map[string]*Element{id: root}}
}

func (c *Canvas) ID() string {
	return c.root.ID
}

func (c *Canvas) Root() *Element {
	return c.root
}

func (c *Canvas) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Canvas) Find(id string) (*Element, bool) {
	e, ok := c.index[id]
	return e, ok
}

// Applied is the number of commands applied so far.
func (c *Canvas) Applied() int {
	return c.applied
}

// Len is the number of elements below the root.
func (c *Canvas) Len() int {
	return len(c.index) - 1
}

// Apply executes cmds in order and stops at the first one that fails.
func (c *Canvas) Apply(cmds ...Command) error {
	for _, cmd := range cmds {
		var err error
		switch cmd.Op {
		case OpCreate:
			err = c.create(cmd)
		case OpUpdate:
			err = c.update(cmd)
		case OpRemove:
			err = c.remove(cmd)
		default:
			err = errors.Errorf("unknown op '%s' for element '%s'", cmd.Op, cmd.ID)
		}
		if err != nil {
			return err
		}
		c.applied++
	}
	return nil
}

func (c *Canvas) create(cmd Command) error {
	if _, exists := c.index[cmd.ID]; exists {
		return errors.Errorf("element '%s' already exists", cmd.ID)
	}
	parent := c.root
	if cmd.Parent != "" {
		p, ok := c.index[cmd.Parent]
		if !ok {
			return errors.Errorf("parent '%s' of element '%s' not found", cmd.Parent, cmd.ID)
		}
		parent = p
	}
	e := &Element{
		Kind:   cmd.Kind,
		ID:     cmd.ID,
		Attrs:  map[string]string{},
		Style:  map[string]string{},
		Text:   cmd.Text,
		parent: parent,
	}
	merge(e.Attrs, cmd.Attrs)
	merge(e.Style, cmd.Style)
	parent.Children = append(parent.Children, e)
	c.index[cmd.ID] = e
	return nil
}

func (c *Canvas) update(cmd Command) error {
	e, ok := c.index[cmd.ID]
	if !ok {
		return errors.Errorf("element '%s' not found", cmd.ID)
	}
	merge(e.Attrs, cmd.Attrs)
	merge(e.Style, cmd.Style)
	if cmd.Text != "" {
		e.Text = cmd.Text
	}
	return nil
}

func (c *Canvas) remove(cmd Command) error {
	e, ok := c.index[cmd.ID]
	if !ok || e == c.root {
		return errors.Errorf("element '%s' not found", cmd.ID)
	}
	children := e.parent.Children[:0]
	for _, child := range e.parent.Children {
		if child != e {
			children = append(children, child)
		}
	}
	e.parent.Children = children
	c.unindex(e)
	return nil
}

func (c *Canvas) unindex(e *Element) {
	delete(c.index, e.ID)
	for _, child := range e.Children {
		c.unindex(child)
	}
}

func merge(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// Document is an in-memory Host.
type Document struct {
	surfaces map[string]*Canvas
	body     *Canvas
}

func NewDocument() *Document {
	return &Document{
		surfaces: map[string]*Canvas{},
		body:     NewCanvas("body", nil),
	}
}

// AddSurface registers a canvas with the given empty child groups.
func (d *Document) AddSurface(id string, attrs map[string]string, groups ...string) *Canvas {
	c := NewCanvas(id, attrs)
	for _, group := range groups {
		// ids are fresh, create cannot fail
		_ = c.Apply(Create(KindGroup, group, "").Attr("class", group))
	}
	d.surfaces[id] = c
	return c
}

func (d *Document) Surface(id string) (Surface, bool) {
	c, ok := d.surfaces[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (d *Document) Canvas(id string) (*Canvas, bool) {
	c, ok := d.surfaces[id]
	return c, ok
}

func (d *Document) Body() Surface {
	return d.body
}

func (d *Document) BodyCanvas() *Canvas {
	return d.body
}

// Dispatch applies overlay commands to body and all others to surface,
// keeping the order within each.
func Dispatch(surface, body Surface, cmds []Command) error {
	onSurface := make([]Command, 0, len(cmds))
	onBody := []Command{}
	for _, cmd := range cmds {
		if cmd.Overlay {
			onBody = append(onBody, cmd)
		} else {
			onSurface = append(onSurface, cmd)
		}
	}
	if err := surface.Apply(onSurface...); err != nil {
		return errors.Wrapf(err, "surface '%s'", surface.ID())
	}
	if err := body.Apply(onBody...); err != nil {
		return errors.Wrap(err, "body")
	}
	return nil
}
