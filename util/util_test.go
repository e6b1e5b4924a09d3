// util/util_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"path/filepath"
	"slices"
	"testing"
)

func TestInsertSorted(t *testing.T) {
	type item struct {
		dist int
		name string
	}
	less := func(a, b item) bool { return a.dist < b.dist }

	var s []item
	for _, it := range []item{{5, "a"}, {2, "b"}, {5, "c"}, {1, "d"}, {2, "e"}} {
		s = InsertSorted(s, it, less)
	}

	var names []string
	for _, it := range s {
		names = append(names, it.name)
	}
	// Equal distances keep insertion order.
	if expected := []string{"d", "b", "e", "a", "c"}; !slices.Equal(names, expected) {
		t.Errorf("got %v, expected %v", names, expected)
	}
}

func TestReverseAndFilter(t *testing.T) {
	s := []int{1, 2, 3, 4}
	if r := ReverseSlice(s); !slices.Equal(r, []int{4, 3, 2, 1}) {
		t.Errorf("reverse: got %v", r)
	}
	if f := FilterSlice(s, func(v int) bool { return v%2 == 0 }); !slices.Equal(f, []int{2, 4}) {
		t.Errorf("filter: got %v", f)
	}
	if m := MapSlice(s, func(v int) int { return v * v }); !slices.Equal(m, []int{1, 4, 9, 16}) {
		t.Errorf("map: got %v", m)
	}
}

type snapshotRecord struct {
	Ident string
	Pos   [2]float32
	IDs   []int
}

func TestEncodeDecodeObject(t *testing.T) {
	in := []snapshotRecord{{Ident: "KJFK", Pos: [2]float32{-73.77, 40.63}, IDs: []int{1, 2}}, {Ident: "KLGA"}}

	var buf bytes.Buffer
	if err := EncodeObject(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var out []snapshotRecord
	if err := DecodeObject(&buf, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].Ident != "KJFK" || out[0].Pos != in[0].Pos || !slices.Equal(out[0].IDs, in[0].IDs) {
		t.Errorf("got %+v", out)
	}
}

func TestStoreRetrieveObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "result"+SnapshotExtension)
	if err := StoreObject(path, map[string]int{"airports": 3}); err != nil {
		t.Fatalf("store: %v", err)
	}

	var m map[string]int
	mt, err := RetrieveObject(path, &m)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if mt.IsZero() || m["airports"] != 3 {
		t.Errorf("got %v at %v", m, mt)
	}
}
