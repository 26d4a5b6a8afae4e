package encode

import (
	"io"
	"slices"
	"strings"

	"github.com/lmfmt/lmfmt/ir"
)

// Sentinels and markers of the wire format.
const (
	EmptyArraySentinel  = "EmptyArray"
	EmptyObjectSentinel = "EmptyObject"
	MaxDepthMarker      = "[Max depth reached]"
	CircularMarker      = "[Circular reference]"
)

// EncState holds the per-call encoding state. The path set tracks node
// identities on the current recursion branch only; it is pushed on
// entry to a composite node and popped on every exit, so shared acyclic
// references render in full on each branch.
type EncState struct {
	ignoreFalsy bool
	maxDepth    int
	sortKeys    Order
	indent      int

	path map[*ir.Node]bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes the indentation-structured text form of node to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		ignoreFalsy: true,
		maxDepth:    10,
		indent:      4,
		path:        map[*ir.Node]bool{},
	}
	for _, opt := range opts {
		opt(es)
	}
	s, _ := es.renderValue(node, 0)
	_, err := io.WriteString(w, s)
	return err
}

func (es *EncState) pad(depth int) string {
	return strings.Repeat(strings.Repeat(" ", es.indent), depth)
}

func (es *EncState) colorize(t ir.Type, a ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, a, v)
}

// renderValue renders a node at the given depth. block reports whether
// the rendering must be placed on its own lines below a key or tag;
// primitives, typed arrays, sentinels and markers are single-line and
// stay on the key's line.
func (es *EncState) renderValue(node *ir.Node, depth int) (s string, block bool) {
	return es.render(node, depth, false)
}

// render is renderValue plus the tagged flag: under an array:/object:
// tag the tag line itself stands in for a generic array's Array:
// header, so the array renders body-only.
func (es *EncState) render(node *ir.Node, depth int, tagged bool) (s string, block bool) {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
	default:
		return es.renderPrimitive(node), false
	}
	if depth > es.maxDepth {
		return es.colorize(node.Type, SentinelColor, MaxDepthMarker), false
	}
	if es.path[node] {
		return es.colorize(node.Type, SentinelColor, CircularMarker), false
	}
	es.path[node] = true
	defer delete(es.path, node)

	if node.Type == ir.ObjectType {
		fields := es.effectiveFields(node)
		if len(fields) == 0 {
			return es.colorize(ir.ObjectType, SentinelColor, EmptyObjectSentinel), false
		}
		return es.renderObject(node, fields, depth), true
	}
	return es.renderArray(node, depth, tagged)
}

// effectiveFields returns the indices of the fields that render, in
// render order.
func (es *EncState) effectiveFields(node *ir.Node) []int {
	idx := make([]int, 0, len(node.Fields))
	for i, v := range node.Values {
		if es.ignoreFalsy && v.Type == ir.NullType {
			continue
		}
		idx = append(idx, i)
	}
	if es.sortKeys == SortAsc {
		slices.SortStableFunc(idx, func(a, b int) int {
			return strings.Compare(node.Fields[a].String, node.Fields[b].String)
		})
	}
	return idx
}

func (es *EncState) renderObject(node *ir.Node, fields []int, depth int) string {
	var b strings.Builder
	pad := es.pad(depth)
	for n, i := range fields {
		if n > 0 {
			b.WriteByte('\n')
			b.WriteString(pad)
		}
		b.WriteString(es.colorize(ir.ObjectType, FieldColor, node.Fields[i].String))
		b.WriteString(es.colorize(ir.ObjectType, SepColor, ":"))
		val, block := es.renderValue(node.Values[i], depth+1)
		if block {
			b.WriteByte('\n')
			b.WriteString(es.pad(depth + 1))
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(val)
	}
	return b.String()
}

func (es *EncState) renderArray(node *ir.Node, depth int, tagged bool) (string, bool) {
	if len(node.Values) == 0 {
		return es.colorize(ir.ArrayType, SentinelColor, EmptyArraySentinel), false
	}
	kind := Classify(node.Values, es.ignoreFalsy)
	if kind != GenericKind {
		return es.renderTypedArray(node, kind), false
	}

	// element lines sit one level below the Array: header, or at the
	// array's own level when the tag line above plays the header
	lineDepth := depth + 1
	if tagged {
		lineDepth = depth
	}
	lines := make([]string, 0, len(node.Values))
	for _, v := range node.Values {
		switch v.Type {
		case ir.ArrayType:
			lines = append(lines, es.renderTagged("array", v, lineDepth))
		case ir.ObjectType:
			lines = append(lines, es.renderTagged("object", v, lineDepth))
		case ir.NullType:
			if es.ignoreFalsy {
				continue
			}
			lines = append(lines, es.renderPrimitive(v))
		default:
			lines = append(lines, es.renderPrimitive(v))
		}
	}
	if len(lines) == 0 {
		return es.colorize(ir.ArrayType, SentinelColor, EmptyArraySentinel), false
	}

	var b strings.Builder
	if !tagged {
		b.WriteString(es.colorize(ir.ArrayType, TagColor, "Array"))
		b.WriteString(es.colorize(ir.ArrayType, SepColor, ":"))
	}
	pad := es.pad(lineDepth)
	for i, ln := range lines {
		if i > 0 || !tagged {
			b.WriteByte('\n')
			b.WriteString(pad)
		}
		b.WriteString(ln)
	}
	return b.String(), true
}

// renderTypedArray renders a homogeneous array as one line, in original
// element order, never sorted.
func (es *EncState) renderTypedArray(node *ir.Node, kind Kind) string {
	parts := make([]string, 0, len(node.Values))
	for _, v := range node.Values {
		if v.Type == ir.NullType {
			// only reachable with ignoreFalsy set; otherwise the
			// classifier already forced the generic form
			continue
		}
		parts = append(parts, es.renderPrimitive(v))
	}
	if len(parts) == 0 {
		return es.colorize(ir.ArrayType, SentinelColor, EmptyArraySentinel)
	}
	sep := es.colorize(ir.ArrayType, SepColor, ",") + " "
	return es.colorize(ir.ArrayType, TagColor, kind.String()+"Array") +
		es.colorize(ir.ArrayType, SepColor, ":") + " " +
		strings.Join(parts, sep)
}

// renderTagged renders a composite element of a generic array under its
// synthetic array:/object: tag. tagDepth is the indent level of the tag
// line itself; the element content sits one level below it.
func (es *EncState) renderTagged(tag string, child *ir.Node, tagDepth int) string {
	head := es.colorize(child.Type, TagColor, tag) + es.colorize(child.Type, SepColor, ":")
	val, block := es.render(child, tagDepth+1, true)
	if block {
		return head + "\n" + es.pad(tagDepth+1) + val
	}
	return head + " " + val
}
