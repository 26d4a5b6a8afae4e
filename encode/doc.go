// Package encode renders ir nodes as compact, brace-free, indented text.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "name", Val: ir.FromString("alice")},
//	    {Key: "age", Val: ir.FromInt(30)},
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Encode with options
//	err := encode.Encode(node, &buf, encode.MaxDepth(4), encode.SortKeys(encode.SortAsc))
//
// Homogeneous arrays of one primitive kind collapse to a single
// <Kind>Array line; anything mixed renders as an Array: block with
// nested composites under array:/object: tags. Indentation is four
// spaces per nesting level. Empty composites render as the EmptyArray
// and EmptyObject sentinels, and depth or residual-cycle limits render
// as bracketed markers.
//
// # Related Packages
//
//   - github.com/lmfmt/lmfmt/ir - the value model this package renders
//   - github.com/lmfmt/lmfmt/normalize - builds ir trees from Go values
package encode
