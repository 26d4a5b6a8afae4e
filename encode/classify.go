package encode

import "github.com/lmfmt/lmfmt/ir"

// Kind is the result of classifying an array's elements.
type Kind int

const (
	GenericKind Kind = iota
	StringKind
	NumberKind
	BooleanKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "String"
	case NumberKind:
		return "Number"
	case BooleanKind:
		return "Boolean"
	default:
		return "Generic"
	}
}

// Classify decides whether an array renders as a single typed line or a
// generic block. Exactly one primitive kind among the surviving
// elements gives that typed kind; anything else is generic. A null
// element is skipped when ignoreFalsy is set, otherwise its presence
// forces generic, as does any composite element. An array whose
// elements all get skipped comes out generic, so it degrades to the
// empty-array sentinel rather than an empty typed line.
func Classify(elems []*ir.Node, ignoreFalsy bool) Kind {
	var mask uint
	for _, e := range elems {
		switch e.Type {
		case ir.NullType:
			if ignoreFalsy {
				continue
			}
			return GenericKind
		case ir.StringType:
			mask |= 1
		case ir.NumberType:
			mask |= 2
		case ir.BoolType:
			mask |= 4
		default:
			return GenericKind
		}
	}
	switch mask {
	case 1:
		return StringKind
	case 2:
		return NumberKind
	case 4:
		return BooleanKind
	default:
		return GenericKind
	}
}
