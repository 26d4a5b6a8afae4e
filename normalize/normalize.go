package normalize

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/lmfmt/lmfmt/debug"
	"github.com/lmfmt/lmfmt/ir"
)

// maxDescent caps recursion on pathological, non-cyclic nesting. True
// cycles are caught by the visited set; this bound turns absurdly deep
// finite values into an error instead of stack exhaustion. It sits far
// above any depth the encoder will render.
const maxDescent = 10000

var (
	jsonNumberType = reflect.TypeOf(json.Number(""))
	urlType        = reflect.TypeOf(url.URL{})
	textMarshaler  = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	errorType      = reflect.TypeOf((*error)(nil)).Elem()
)

// refID identifies a reference on the current branch. Slices carry
// their length: two slices sharing a base pointer but differing in
// length are distinct references, so a prefix alias of a parent slice
// is not a cycle.
type refID struct {
	ptr uintptr
	len int
}

func ptrID(addr uintptr) refID { return refID{ptr: addr, len: -1} }

// Value projects an arbitrary Go value onto a normalized ir tree, or
// fails with a typed error. The projection is intentionally lossy:
// funcs, unexported fields and other non-data values are dropped,
// NaN/Infinity become null, negative zero becomes zero, byte slices
// become index-keyed objects, and anything implementing
// encoding.TextMarshaler (time.Time included) becomes its text form.
func Value(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[refID]string) // identities on the current branch only
	node, ok, err := walk(reflect.ValueOf(v), "", 0, visited)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &UnsupportedTypeError{TypeName: reflect.TypeOf(v).String()}
	}
	if debug.Normalize() {
		debug.LogAny(node)
	}
	return node, nil
}

// walk converts a single reflect.Value. A false ok with a nil error
// means the value has no projection at all (a func, for example); the
// caller decides whether that drops a field, nulls an array element, or
// fails the top-level call.
func walk(val reflect.Value, fieldPath string, depth int, visited map[refID]string) (*ir.Node, bool, error) {
	if !val.IsValid() {
		return ir.Null(), true, nil
	}
	if depth > maxDescent {
		return nil, false, &Error{FieldPath: fieldPath, Message: "maximum normalization depth exceeded"}
	}

	typ := val.Type()
	switch typ {
	case jsonNumberType:
		return numberFromString(val.String(), fieldPath)
	case urlType:
		u := val.Interface().(url.URL)
		return ir.FromString(u.String()), true, nil
	}

	kind := typ.Kind()
	if kind == reflect.Pointer {
		if val.IsNil() {
			return ir.Null(), true, nil
		}
		if typ.Elem() == urlType {
			u := val.Interface().(*url.URL)
			return ir.FromString(u.String()), true, nil
		}
		if node, ok, err, done := marshalText(val, fieldPath); done {
			return node, ok, err
		}
		if typ.Implements(errorType) {
			return ir.FromKeyVals(nil), true, nil
		}
		id := ptrID(val.Pointer())
		if prev, seen := visited[id]; seen {
			if debug.Normalize() {
				debug.Logf("cycle at %s (first seen at %s)\n", fieldPath, prev)
			}
			return nil, false, &CircularError{FieldPath: fieldPath, FirstSeen: prev}
		}
		visited[id] = fieldPath
		node, ok, err := walk(val.Elem(), fieldPath, depth+1, visited)
		delete(visited, id)
		return node, ok, err
	}

	if node, ok, err, done := marshalText(val, fieldPath); done {
		return node, ok, err
	}
	// Error values project to empty objects; their message is not data.
	if typ.Implements(errorType) {
		return ir.FromKeyVals(nil), true, nil
	}

	switch kind {
	case reflect.String:
		return ir.FromString(val.String()), true, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), true, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := val.Uint()
		if u > math.MaxInt64 {
			return ir.FromFloat(float64(u)), true, nil
		}
		return ir.FromInt(int64(u)), true, nil

	case reflect.Float32, reflect.Float64:
		return numberFromFloat(val.Float()), true, nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), true, nil

	case reflect.Chan:
		// Opaque handles keep their place in the tree but carry no data.
		return ir.FromKeyVals(nil), true, nil

	case reflect.Slice, reflect.Array:
		return walkSequence(val, fieldPath, depth, visited)

	case reflect.Map:
		return walkMap(val, fieldPath, depth, visited)

	case reflect.Struct:
		return walkStruct(val, fieldPath, depth, visited)

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), true, nil
		}
		return walk(val.Elem(), fieldPath, depth+1, visited)

	default:
		// Func, UnsafePointer, Complex*: no projection.
		return nil, false, nil
	}
}

// marshalText handles values implementing encoding.TextMarshaler,
// including via an addressable receiver. done reports whether the value
// was handled here.
func marshalText(val reflect.Value, fieldPath string) (*ir.Node, bool, error, bool) {
	mv := val
	if !mv.Type().Implements(textMarshaler) {
		if !val.CanAddr() || !reflect.PointerTo(val.Type()).Implements(textMarshaler) {
			return nil, false, nil, false
		}
		mv = val.Addr()
	}
	text, err := mv.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return nil, false, &Error{FieldPath: fieldPath, Message: "MarshalText failed", Err: err}, true
	}
	return ir.FromString(string(text)), true, nil, true
}

func numberFromFloat(f float64) *ir.Node {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return ir.Null()
	case f == 0 && math.Signbit(f):
		return ir.FromInt(0)
	}
	return ir.FromFloat(f)
}

func numberFromString(s, fieldPath string) (*ir.Node, bool, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ir.FromInt(i), true, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false, &Error{FieldPath: fieldPath, Message: fmt.Sprintf("invalid number %q", s), Err: err}
	}
	return numberFromFloat(f), true, nil
}

// walkSequence converts slices and arrays. Byte sequences become plain
// objects keyed by decimal string index; everything else becomes an
// array whose unprojectable elements degrade to null.
func walkSequence(val reflect.Value, fieldPath string, depth int, visited map[refID]string) (*ir.Node, bool, error) {
	if val.Kind() == reflect.Slice && val.IsNil() {
		return ir.Null(), true, nil
	}
	if val.Type().Elem().Kind() == reflect.Uint8 {
		return byteObject(val), true, nil
	}

	if val.Kind() == reflect.Slice {
		id := refID{ptr: val.Pointer(), len: val.Len()}
		if prev, seen := visited[id]; seen {
			return nil, false, &CircularError{FieldPath: fieldPath, FirstSeen: prev}
		}
		visited[id] = fieldPath
		defer delete(visited, id)
	}

	length := val.Len()
	elems := make([]*ir.Node, 0, length)
	for i := 0; i < length; i++ {
		elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
		node, ok, err := walk(val.Index(i), elemPath, depth+1, visited)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			node = ir.Null()
		}
		elems = append(elems, node)
	}
	return ir.FromSlice(elems), true, nil
}

func byteObject(val reflect.Value) *ir.Node {
	n := val.Len()
	kvs := make([]ir.KeyVal, n)
	for i := 0; i < n; i++ {
		kvs[i] = ir.KeyVal{
			Key: strconv.Itoa(i),
			Val: ir.FromInt(int64(val.Index(i).Uint())),
		}
	}
	return ir.FromKeyVals(kvs)
}

// walkMap converts a map to an object with fields in sorted key order.
// Keys must have a string form: strings, integers, or TextMarshalers.
func walkMap(val reflect.Value, fieldPath string, depth int, visited map[refID]string) (*ir.Node, bool, error) {
	if val.IsNil() {
		return ir.Null(), true, nil
	}
	id := ptrID(val.Pointer())
	if prev, seen := visited[id]; seen {
		return nil, false, &CircularError{FieldPath: fieldPath, FirstSeen: prev}
	}
	visited[id] = fieldPath
	defer delete(visited, id)

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key, ok := keyString(iter.Key())
		if !ok {
			return nil, false, &Error{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("unsupported map key type %s", val.Type().Key()),
			}
		}
		keyPath := fieldPath
		if keyPath != "" {
			keyPath = fmt.Sprintf("%s.%s", fieldPath, key)
		} else {
			keyPath = key
		}
		node, ok, err := walk(iter.Value(), keyPath, depth+1, visited)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		irMap[key] = node
	}
	return ir.FromMap(irMap), true, nil
}

func keyString(key reflect.Value) (string, bool) {
	if key.Kind() == reflect.Interface {
		if key.IsNil() {
			return "", false
		}
		key = key.Elem()
	}
	if tm, ok := key.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", false
		}
		return string(text), true
	}
	switch key.Kind() {
	case reflect.String:
		return key.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(key.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(key.Uint(), 10), true
	default:
		return "", false
	}
}

// walkStruct converts a struct to an object of its exported fields in
// declaration order. Anonymous embedded structs are flattened into the
// parent; unexported fields and unprojectable values are dropped.
func walkStruct(val reflect.Value, fieldPath string, depth int, visited map[refID]string) (*ir.Node, bool, error) {
	typ := val.Type()
	kvs := make([]ir.KeyVal, 0, typ.NumField())
	seen := make(map[string]bool, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, ok, err := walkStruct(fieldVal, fieldPath, depth+1, visited)
			if err != nil {
				return nil, false, err
			}
			if !ok {
				continue
			}
			for j, f := range embedded.Fields {
				if seen[f.String] {
					return nil, false, &Error{
						FieldPath: fieldPath,
						Message:   fmt.Sprintf("field name conflict: embedded field %q conflicts with existing field", f.String),
					}
				}
				seen[f.String] = true
				kvs = append(kvs, ir.KeyVal{Key: f.String, Val: embedded.Values[j]})
			}
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}
		nextPath := fieldPath
		if nextPath != "" {
			nextPath = fmt.Sprintf("%s.%s", fieldPath, name)
		} else {
			nextPath = name
		}
		node, ok, err := walk(fieldVal, nextPath, depth+1, visited)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		if seen[name] {
			return nil, false, &Error{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("field name conflict: duplicate field %q", name),
			}
		}
		seen[name] = true
		kvs = append(kvs, ir.KeyVal{Key: name, Val: node})
	}
	return ir.FromKeyVals(kvs), true, nil
}

// fieldName resolves a struct field's object key, honoring json tag
// renaming and the "-" skip marker.
func fieldName(field reflect.StructField) (name string, skip bool) {
	name = field.Name
	tag := field.Tag.Get("json")
	if tag == "" {
		return name, false
	}
	if tag == "-" {
		return "", true
	}
	if renamed, _, _ := strings.Cut(tag, ","); renamed != "" {
		name = renamed
	}
	return name, false
}
