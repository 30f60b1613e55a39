package godb

import (
	"path/filepath"
	"testing"
)

func TestCatalogAddAndLookup(t *testing.T) {
	desc := twoIntDesc(t)
	cat := NewCatalog()
	bp := NewBufferPool(cat, DefaultConfig())
	hf, err := NewHeapFile(filepath.Join(t.TempDir(), "t.dat"), desc, bp)
	if err != nil {
		t.Fatalf("NewHeapFile: %v", err)
	}
	if err := cat.AddTable("t", desc, hf); err != nil {
		t.Fatalf("AddTable: %v", err)
	}

	id, err := cat.GetTableID("t")
	if err != nil {
		t.Fatalf("GetTableID: %v", err)
	}
	if id != hf.id() {
		t.Fatalf("expected table id %d, got %d", hf.id(), id)
	}

	name, err := cat.GetTableName(id)
	if err != nil {
		t.Fatalf("GetTableName: %v", err)
	}
	if name != "t" {
		t.Fatalf("expected name %q, got %q", "t", name)
	}

	got, err := cat.GetFile(id)
	if err != nil || got != hf {
		t.Fatalf("expected GetFile to return the registered HeapFile, got %v err=%v", got, err)
	}
}

func TestCatalogDuplicateNameRejected(t *testing.T) {
	desc := twoIntDesc(t)
	cat := NewCatalog()
	bp := NewBufferPool(cat, DefaultConfig())
	dir := t.TempDir()

	hf1, err := NewHeapFile(filepath.Join(dir, "a.dat"), desc, bp)
	if err != nil {
		t.Fatalf("NewHeapFile: %v", err)
	}
	if err := cat.AddTable("t", desc, hf1); err != nil {
		t.Fatalf("AddTable: %v", err)
	}

	hf2, err := NewHeapFile(filepath.Join(dir, "b.dat"), desc, bp)
	if err != nil {
		t.Fatalf("NewHeapFile: %v", err)
	}
	if err := cat.AddTable("t", desc, hf2); err == nil {
		t.Fatal("expected a duplicate table name to be rejected")
	}
}

func TestCatalogLookupMissReturnsNoSuchElement(t *testing.T) {
	cat := NewCatalog()
	_, err := cat.GetTableID("nope")
	gerr, ok := err.(GoDBError)
	if !ok || gerr.Code != NoSuchElementError {
		t.Fatalf("expected NoSuchElementError, got %v", err)
	}
}
