package normalize

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/lmfmt/lmfmt/ir"
)

func mustValue(t *testing.T, v any) *ir.Node {
	t.Helper()
	node, err := Value(v)
	if err != nil {
		t.Fatalf("Value(%#v): %v", v, err)
	}
	return node
}

func TestValuePrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		typ  ir.Type
	}{
		{"nil", nil, ir.NullType},
		{"string", "hello", ir.StringType},
		{"int", 42, ir.NumberType},
		{"float", 1.5, ir.NumberType},
		{"bool", true, ir.BoolType},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node := mustValue(t, tc.in)
			if node.Type != tc.typ {
				t.Errorf("got %s, want %s", node.Type, tc.typ)
			}
		})
	}
}

func TestValueFloatSpecials(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		node := mustValue(t, f)
		if node.Type != ir.NullType {
			t.Errorf("Value(%v) = %s, want null", f, node.Type)
		}
	}

	node := mustValue(t, math.Copysign(0, -1))
	if node.Int64 == nil || *node.Int64 != 0 {
		t.Errorf("negative zero should normalize to integer zero, got %+v", node)
	}
}

func TestValueJSONNumber(t *testing.T) {
	node := mustValue(t, json.Number("42"))
	if node.Int64 == nil || *node.Int64 != 42 {
		t.Errorf("json.Number(42): got %+v", node)
	}

	node = mustValue(t, json.Number("2.5"))
	if node.Float64 == nil || *node.Float64 != 2.5 {
		t.Errorf("json.Number(2.5): got %+v", node)
	}

	if _, err := Value(json.Number("bogus")); err == nil {
		t.Error("expected error for malformed json.Number")
	}
}

func TestValueTextMarshaler(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	node := mustValue(t, ts)
	if node.Type != ir.StringType || node.String != "2024-05-01T10:00:00Z" {
		t.Errorf("time.Time: got %+v", node)
	}
}

func TestValueURL(t *testing.T) {
	u, err := url.Parse("https://example.com/x?y=1")
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []any{u, *u} {
		node := mustValue(t, in)
		if node.Type != ir.StringType || node.String != "https://example.com/x?y=1" {
			t.Errorf("url: got %+v", node)
		}
	}
}

func TestValueByteSlice(t *testing.T) {
	node := mustValue(t, []byte("hi"))
	if node.Type != ir.ObjectType || len(node.Fields) != 2 {
		t.Fatalf("byte slice: got %+v", node)
	}
	if node.Fields[0].String != "0" || *node.Values[0].Int64 != 104 {
		t.Errorf("byte 0: got %s=%v", node.Fields[0].String, node.Values[0])
	}
	if node.Fields[1].String != "1" || *node.Values[1].Int64 != 105 {
		t.Errorf("byte 1: got %s=%v", node.Fields[1].String, node.Values[1])
	}
}

func TestValueOpaqueHandles(t *testing.T) {
	for _, in := range []any{errors.New("boom"), make(chan int)} {
		node := mustValue(t, in)
		if node.Type != ir.ObjectType || len(node.Fields) != 0 {
			t.Errorf("Value(%T): got %+v, want empty object", in, node)
		}
	}
}

func TestValueUnsupportedTopLevel(t *testing.T) {
	_, err := Value(func() {})
	if err == nil {
		t.Fatal("expected error for func value")
	}
	var ute *UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnsupportedTypeError, got %T: %v", err, err)
	}
}

func TestValueNilContainers(t *testing.T) {
	var s []int
	var m map[string]int
	var p *int
	for _, in := range []any{s, m, p} {
		node := mustValue(t, in)
		if node.Type != ir.NullType {
			t.Errorf("Value(%T(nil)) = %s, want null", in, node.Type)
		}
	}
}

func TestValueMapSortsKeys(t *testing.T) {
	node := mustValue(t, map[string]any{"b": 2, "a": 1, "c": 3})
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if node.Fields[i].String != w {
			t.Errorf("field %d: got %q, want %q", i, node.Fields[i].String, w)
		}
	}
}

func TestValueIntKeyedMap(t *testing.T) {
	node := mustValue(t, map[int]string{10: "a", 2: "b"})
	// keys sort as strings
	if node.Fields[0].String != "10" || node.Fields[1].String != "2" {
		t.Errorf("got keys %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
}

func TestValueUnsupportedMapKey(t *testing.T) {
	_, err := Value(map[[2]int]string{{1, 2}: "x"})
	if err == nil {
		t.Fatal("expected error for array-keyed map")
	}
}

func TestValueMapDropsFuncValues(t *testing.T) {
	node := mustValue(t, map[string]any{"f": func() {}, "x": 1})
	if len(node.Fields) != 1 || node.Fields[0].String != "x" {
		t.Errorf("got %+v, want only x", node.Fields)
	}
}

func TestValueStructDeclarationOrder(t *testing.T) {
	type sample struct {
		Zebra int
		Apple int
		Mango int
	}
	node := mustValue(t, sample{1, 2, 3})
	want := []string{"Zebra", "Apple", "Mango"}
	for i, w := range want {
		if node.Fields[i].String != w {
			t.Errorf("field %d: got %q, want %q", i, node.Fields[i].String, w)
		}
	}
}

func TestValueStructTags(t *testing.T) {
	type sample struct {
		Name   string `json:"name"`
		Secret string `json:"-"`
		Age    int    `json:"age,omitempty"`
		hidden int
	}
	node := mustValue(t, sample{Name: "x", Secret: "s", Age: 3, hidden: 9})
	if len(node.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(node.Fields))
	}
	if node.Fields[0].String != "name" || node.Fields[1].String != "age" {
		t.Errorf("got keys %q, %q", node.Fields[0].String, node.Fields[1].String)
	}
}

func TestValueEmbeddedStruct(t *testing.T) {
	type inner struct {
		ID int
	}
	type outer struct {
		inner2 int
		Inner  inner `json:"-"`
		Base
	}
	node := mustValue(t, outer{Base: Base{Label: "x"}})
	if len(node.Fields) != 1 || node.Fields[0].String != "Label" {
		t.Errorf("got %+v, want flattened Label", node.Fields)
	}
}

type Base struct {
	Label string
}

func TestValueSliceElements(t *testing.T) {
	node := mustValue(t, []any{1, "a", nil, func() {}})
	if node.Type != ir.ArrayType || len(node.Values) != 4 {
		t.Fatalf("got %+v", node)
	}
	// unprojectable elements degrade to null rather than shifting indexes
	if node.Values[2].Type != ir.NullType || node.Values[3].Type != ir.NullType {
		t.Errorf("elements 2 and 3 should be null, got %s, %s",
			node.Values[2].Type, node.Values[3].Type)
	}
}

func TestValueUint64Overflow(t *testing.T) {
	node := mustValue(t, uint64(math.MaxUint64))
	if node.Float64 == nil {
		t.Errorf("max uint64 should normalize to float, got %+v", node)
	}
}
