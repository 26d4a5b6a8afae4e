// Package ir provides the normalized value tree that sits between
// normalization and encoding.
//
// # Node Structure
//
// A Node represents a single normalized value:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (ordered key-value pairs), array (ordered list)
//
// The tree is a simple recursive tagged union: the Type field selects
// which payload fields are meaningful. Objects keep their fields in the
// order they were inserted; FromMap sorts map keys so that trees built
// from Go maps are deterministic.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	flag := ir.FromBool(true)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "key", Val: ir.FromString("value")},
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Numbers
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//
// # Thread Safety
//
// Node structures are not thread-safe.
//
// # Related Packages
//
//   - github.com/lmfmt/lmfmt/normalize - Projects Go values onto IR nodes
//   - github.com/lmfmt/lmfmt/encode - Encodes IR nodes to text
package ir
