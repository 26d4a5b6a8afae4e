package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/lmfmt/lmfmt/ir"
)

type employee struct {
	Name    string
	Manager *employee
	Reports []*employee
}

func TestCyclePointer(t *testing.T) {
	boss := &employee{Name: "boss"}
	boss.Manager = boss

	_, err := Value(boss)
	if err == nil {
		t.Fatal("expected circular reference error")
	}
	var ce *CircularError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CircularError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "circular reference") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCycleThroughSlice(t *testing.T) {
	boss := &employee{Name: "boss"}
	worker := &employee{Name: "worker", Manager: boss}
	boss.Reports = []*employee{worker}

	_, err := Value(boss)
	var ce *CircularError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CircularError, got %T: %v", err, err)
	}
	if ce.FieldPath != "Reports[0].Manager" {
		t.Errorf("cycle path = %q", ce.FieldPath)
	}
}

func TestCycleSelfSlice(t *testing.T) {
	s := []any{nil}
	s[0] = s

	_, err := Value(s)
	var ce *CircularError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CircularError, got %T: %v", err, err)
	}
}

// A sub-slice shares its parent's base pointer; only an alias of the
// identical ptr+len pair closes a cycle.
func TestSliceAliasIsNotCyclic(t *testing.T) {
	empty := []any{nil}
	empty[0] = empty[:0]
	node, err := Value(empty)
	if err != nil {
		t.Fatalf("empty prefix alias flagged as cycle: %v", err)
	}
	if node.Values[0].Type != ir.ArrayType || len(node.Values[0].Values) != 0 {
		t.Errorf("inner slice: got %+v, want empty array", node.Values[0])
	}

	prefix := []any{1, nil}
	prefix[1] = prefix[:1]
	node, err = Value(prefix)
	if err != nil {
		t.Fatalf("prefix alias flagged as cycle: %v", err)
	}
	inner := node.Values[1]
	if inner.Type != ir.ArrayType || len(inner.Values) != 1 {
		t.Fatalf("inner slice: got %+v", inner)
	}
	if inner.Values[0].Int64 == nil || *inner.Values[0].Int64 != 1 {
		t.Errorf("inner element: got %+v, want 1", inner.Values[0])
	}
}

func TestCycleThroughFullSliceAlias(t *testing.T) {
	s := []any{nil}
	s[0] = s[:1]

	_, err := Value(s)
	var ce *CircularError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CircularError, got %T: %v", err, err)
	}
}

func TestCycleSelfMap(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	_, err := Value(m)
	var ce *CircularError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CircularError, got %T: %v", err, err)
	}
}

// A value reachable on two sibling branches is not a cycle.
func TestSharedReferenceIsNotCyclic(t *testing.T) {
	shared := &employee{Name: "shared"}
	root := struct {
		A *employee
		B *employee
	}{A: shared, B: shared}

	node, err := Value(root)
	if err != nil {
		t.Fatalf("shared reference flagged as cycle: %v", err)
	}
	for _, field := range []string{"A", "B"} {
		branch := ir.Get(node, field)
		if branch == nil {
			t.Fatalf("missing field %s", field)
		}
		name := ir.Get(branch, "Name")
		if name == nil || name.String != "shared" {
			t.Errorf("%s.Name = %v, want shared", field, name)
		}
	}
}

func TestSharedSliceIsNotCyclic(t *testing.T) {
	inner := []int{1, 2}
	node, err := Value([][]int{inner, inner})
	if err != nil {
		t.Fatalf("shared slice flagged as cycle: %v", err)
	}
	if len(node.Values) != 2 {
		t.Fatalf("got %d elements", len(node.Values))
	}
	for i, el := range node.Values {
		if el.Type != ir.ArrayType || len(el.Values) != 2 {
			t.Errorf("element %d: got %+v", i, el)
		}
	}
}
