package encode

import (
	"math"
	"strconv"

	"github.com/lmfmt/lmfmt/ir"
	"github.com/lmfmt/lmfmt/token"
)

func (es *EncState) renderPrimitive(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return es.colorize(ir.NullType, ValueColor, "null")
	case ir.BoolType:
		return es.colorize(ir.BoolType, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NumberType:
		return es.colorize(ir.NumberType, ValueColor, formatNumber(node))
	case ir.StringType:
		return es.colorize(ir.StringType, ValueColor, token.Quote(node.String))
	default:
		panic("type")
	}
}

// formatNumber renders a number node in canonical decimal form. The
// NaN/Infinity/negative-zero cases are unreachable for trees that came
// through normalization, which already converts them; they are kept so
// hand-built trees render faithfully.
func formatNumber(node *ir.Node) string {
	if node.Int64 != nil {
		return strconv.FormatInt(*node.Int64, 10)
	}
	if node.Float64 != nil {
		f := *node.Float64
		switch {
		case math.IsNaN(f):
			return "NaN"
		case math.IsInf(f, 1):
			return "Infinity"
		case math.IsInf(f, -1):
			return "-Infinity"
		case f == 0 && math.Signbit(f):
			return "-0"
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return "0"
}
