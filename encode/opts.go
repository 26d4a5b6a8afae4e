package encode

// Order selects object key ordering.
type Order int

const (
	SortNone Order = iota
	SortAsc
)

type EncodeOption func(*EncState)

// IgnoreFalsy controls whether null object fields and null array
// elements are omitted. It defaults to true.
func IgnoreFalsy(v bool) EncodeOption {
	return func(es *EncState) { es.ignoreFalsy = v }
}

// MaxDepth sets the nesting depth beyond which composites render as the
// max-depth marker. It defaults to 10.
func MaxDepth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}

// SortKeys selects object key ordering: SortAsc sorts keys by ordinal
// string comparison, SortNone preserves insertion order.
func SortKeys(o Order) EncodeOption {
	return func(es *EncState) { es.sortKeys = o }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
