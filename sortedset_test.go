package musk

import (
	"reflect"
	"testing"
)

func drainUint32(next func() (uint32, bool)) []uint32 {
	var out []uint32
	for {
		v, ok := next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestIntersectIterator(t *testing.T) {
	a := []uint32{1, 3, 4, 8, 10}
	b := []uint32{2, 3, 4, 9, 10, 11}
	it := NewIntersectIterator(a, b)
	got := drainUint32(it.Next)
	want := []uint32{3, 4, 10}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestUnionIteratorDedups(t *testing.T) {
	it := NewUnionIterator([]uint32{1, 3, 5}, []uint32{2, 3, 6}, []uint32{3, 7})
	got := drainUint32(it.Next)
	want := []uint32{1, 2, 3, 5, 6, 7}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDifferenceIterator(t *testing.T) {
	it := NewDifferenceIterator([]uint32{1, 2, 3, 4, 5}, []uint32{2, 4}, []uint32{5})
	got := drainUint32(it.Next)
	want := []uint32{1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestIntersectionSize(t *testing.T) {
	a := []uint32{1, 2, 3, 4, 5}
	b := []uint32{3, 4, 5, 6, 7}
	if n := IntersectionSize(a, b); n != 3 {
		t.Fatalf("got %d want 3", n)
	}
}
