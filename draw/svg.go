package draw

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteSVG serializes the element tree as a standalone SVG document.
func (c *Canvas) WriteSVG(w io.Writer) error {
	var buf bytes.Buffer
	root := c.root
	attrs := map[string]string{"xmlns": "http://www.w3.org/2000/svg"}
	merge(attrs, root.Attrs)
	buf.WriteString(`<svg id="` + escape(root.ID) + `"`)
	writeAttrs(&buf, attrs, root.Style)
	buf.WriteString(">\n")
	for _, child := range root.Children {
		writeElement(&buf, child, 1)
	}
	buf.WriteString("</svg>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func (c *Canvas) SVG() string {
	var sb strings.Builder
	_ = c.WriteSVG(&sb)
	return sb.String()
}

func writeElement(buf *bytes.Buffer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(fmt.Sprintf(`%s<%s id="%s"`, indent, e.Kind, escape(e.ID)))
	writeAttrs(buf, e.Attrs, e.Style)
	if len(e.Children) == 0 && e.Text == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">")
	if e.Text != "" {
		buf.WriteString(escape(e.Text))
	}
	if len(e.Children) > 0 {
		buf.WriteString("\n")
		for _, child := range e.Children {
			writeElement(buf, child, depth+1)
		}
		buf.WriteString(indent)
	}
	buf.WriteString(fmt.Sprintf("</%s>\n", e.Kind))
}

func writeAttrs(buf *bytes.Buffer, attrs, style map[string]string) {
	for _, k := range sortedKeys(attrs) {
		buf.WriteString(fmt.Sprintf(` %s="%s"`, k, escape(attrs[k])))
	}
	if len(style) == 0 {
		return
	}
	props := make([]string, 0, len(style))
	for _, k := range sortedKeys(style) {
		props = append(props, k+": "+style[k])
	}
	buf.WriteString(fmt.Sprintf(` style="%s"`, escape(strings.Join(props, "; "))))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
