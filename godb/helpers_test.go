package godb

import (
	"os"
	"path/filepath"
	"testing"
)

// intStringDesc builds a two-field (a int, b string) schema.
func intStringDesc(t *testing.T) *TupleDesc {
	t.Helper()
	td, err := NewTupleDesc([]FieldType{
		{Fname: "a", Ftype: IntType},
		{Fname: "b", Ftype: StringType},
	})
	if err != nil {
		t.Fatalf("NewTupleDesc: %v", err)
	}
	return td
}

// twoIntDesc builds a (a int, b int) schema, matching spec.md's
// scan-filter-count scenario.
func twoIntDesc(t *testing.T) *TupleDesc {
	t.Helper()
	td, err := NewTupleDesc([]FieldType{
		{Fname: "a", Ftype: IntType},
		{Fname: "b", Ftype: IntType},
	})
	if err != nil {
		t.Fatalf("NewTupleDesc: %v", err)
	}
	return td
}

// testCatalog builds an empty catalog plus a buffer pool over it, backed by
// fresh, empty heap files under t.TempDir() for every (name, desc) pair
// given.
func testCatalog(t *testing.T, cfg Config, tables map[string]*TupleDesc) (*Catalog, *BufferPool) {
	t.Helper()
	cat := NewCatalog()
	bp := NewBufferPool(cat, cfg)
	dir := t.TempDir()
	for name, desc := range tables {
		hf, err := NewHeapFile(filepath.Join(dir, name+".dat"), desc, bp)
		if err != nil {
			t.Fatalf("NewHeapFile(%s): %v", name, err)
		}
		if err := cat.AddTable(name, desc, hf); err != nil {
			t.Fatalf("AddTable(%s): %v", name, err)
		}
	}
	return cat, bp
}

func mustGetFile(t *testing.T, cat *Catalog, name string) *HeapFile {
	t.Helper()
	hf, err := cat.GetFileByName(name)
	if err != nil {
		t.Fatalf("GetFileByName(%s): %v", name, err)
	}
	return hf
}

// insertIntRows inserts one (a,b int) row per pair, committing in its own
// transaction, and fails the test on any error.
func insertIntRows(t *testing.T, bp *BufferPool, hf *HeapFile, rows [][2]int32) {
	t.Helper()
	tid := NewTID()
	for _, r := range rows {
		tup := &Tuple{
			Desc:   *hf.Descriptor(),
			Fields: []DBValue{IntField{r[0]}, IntField{r[1]}},
		}
		if _, err := hf.insertTuple(tid, tup); err != nil {
			t.Fatalf("insertTuple: %v", err)
		}
	}
	if err := bp.TransactionComplete(tid, true); err != nil {
		t.Fatalf("TransactionComplete: %v", err)
	}
}

func readAll(t *testing.T, hf *HeapFile, tid TransactionID) []*Tuple {
	t.Helper()
	it, err := hf.iterator(tid)
	if err != nil {
		t.Fatalf("iterator: %v", err)
	}
	var out []*Tuple
	for {
		tup, err := it()
		if err != nil {
			t.Fatalf("iterator step: %v", err)
		}
		if tup == nil {
			break
		}
		out = append(out, tup)
	}
	return out
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	return fi.Size()
}
