package musk

import (
	"reflect"
	"testing"
)

func TestGroupFilesByTaxID(t *testing.T) {
	entries := []FileTaxID{
		{File: "a.fa", TaxID: 10},
		{File: "b.fa", TaxID: 20},
		{File: "c.fa", TaxID: 10},
	}
	groups := GroupFilesByTaxID(entries)
	want := []GroupFileList{
		{Identifier: "a.fa$c.fa", TaxID: 10, Files: []string{"a.fa", "c.fa"}},
		{Identifier: "b.fa", TaxID: 20, Files: []string{"b.fa"}},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Fatalf("got %+v want %+v", groups, want)
	}
}
