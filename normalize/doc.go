// Package normalize projects arbitrary Go values onto the ir value model.
//
// # Usage
//
//	node, err := normalize.Value(data)
//
// Normalization is intentionally lossy: only data survives. Funcs,
// complex numbers and unexported struct fields are dropped, time.Time
// (and any encoding.TextMarshaler) becomes its text form, URLs become
// their string form, byte slices become index-keyed objects, NaN and
// the infinities become null, and negative zero becomes zero.
//
// Cycles are detected with a visited set scoped to the current
// recursion branch, so a value referenced from two sibling branches is
// normalized twice rather than misreported as circular.
//
// # Related Packages
//
//   - github.com/lmfmt/lmfmt/ir - the normalized value model
//   - github.com/lmfmt/lmfmt/encode - encodes normalized values to text
package normalize
