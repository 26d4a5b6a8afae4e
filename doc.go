// Package lmfmt converts arbitrary Go values into a compact, brace-free,
// indentation-structured text representation optimized for consumption
// by a language model.
//
// # Usage
//
//	text := lmfmt.Format(map[string]any{
//	    "name": "John",
//	    "tags": []string{"a", "b"},
//	})
//
//	// With options
//	text := lmfmt.Format(data,
//	    lmfmt.MaxDepth(4),
//	    lmfmt.SortKeys(lmfmt.SortAsc),
//	    lmfmt.MaxChars(2000),
//	)
//
// Format always returns a string and never panics; failures surface as
// bracketed diagnostic lines in the returned text. The conversion is
// deterministic: the same input and options produce byte-identical
// output.
//
// The pipeline is normalize (project the value onto an acyclic tree),
// encode (render the tree as indented text) and a final character
// budget. The sub-packages are usable on their own; Format is the
// convenience composition.
package lmfmt
