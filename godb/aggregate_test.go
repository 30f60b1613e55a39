package godb

import "testing"

func TestAggregateGroupedSum(t *testing.T) {
	desc := twoIntDesc(t) // a, b
	rows := []*Tuple{
		{Desc: *desc, Fields: []DBValue{IntField{1}, IntField{10}}},
		{Desc: *desc, Fields: []DBValue{IntField{1}, IntField{20}}},
		{Desc: *desc, Fields: []DBValue{IntField{2}, IntField{5}}},
	}
	child := &sliceOperator{desc: desc, rows: rows}

	agg, err := NewAggregate(child, "b", "", AggSum, "sum_b", "a", "", true)
	if err != nil {
		t.Fatalf("NewAggregate: %v", err)
	}
	got := drainOperator(t, agg, NewTID())
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}

	sums := map[int32]int32{}
	for _, r := range got {
		group := r.Fields[0].(IntField).Value
		sum := r.Fields[1].(IntField).Value
		sums[group] = sum
	}
	if sums[1] != 30 || sums[2] != 5 {
		t.Fatalf("unexpected sums: %v", sums)
	}
}

func TestAggregateNoGroupAvgTruncates(t *testing.T) {
	desc := twoIntDesc(t)
	rows := []*Tuple{
		{Desc: *desc, Fields: []DBValue{IntField{0}, IntField{7}}},
		{Desc: *desc, Fields: []DBValue{IntField{0}, IntField{8}}},
	}
	child := &sliceOperator{desc: desc, rows: rows}

	agg, err := NewAggregate(child, "b", "", AggAvg, "avg_b", "", "", false)
	if err != nil {
		t.Fatalf("NewAggregate: %v", err)
	}
	got := drainOperator(t, agg, NewTID())
	if len(got) != 1 {
		t.Fatalf("expected exactly one row with no GROUP BY, got %d", len(got))
	}
	// (7+8)/2 = 7 (integer truncation), not 7.5.
	if got[0].Fields[0].(IntField).Value != 7 {
		t.Fatalf("expected truncated avg 7, got %v", got[0].Fields[0])
	}
}

func TestAggregateMinMax(t *testing.T) {
	desc := twoIntDesc(t)
	rows := []*Tuple{
		{Desc: *desc, Fields: []DBValue{IntField{0}, IntField{5}}},
		{Desc: *desc, Fields: []DBValue{IntField{0}, IntField{1}}},
		{Desc: *desc, Fields: []DBValue{IntField{0}, IntField{9}}},
	}

	minAgg, err := NewAggregate(&sliceOperator{desc: desc, rows: rows}, "b", "", AggMin, "min_b", "", "", false)
	if err != nil {
		t.Fatalf("NewAggregate(min): %v", err)
	}
	minRows := drainOperator(t, minAgg, NewTID())
	if minRows[0].Fields[0].(IntField).Value != 1 {
		t.Fatalf("expected min=1, got %v", minRows[0].Fields[0])
	}

	maxAgg, err := NewAggregate(&sliceOperator{desc: desc, rows: rows}, "b", "", AggMax, "max_b", "", "", false)
	if err != nil {
		t.Fatalf("NewAggregate(max): %v", err)
	}
	maxRows := drainOperator(t, maxAgg, NewTID())
	if maxRows[0].Fields[0].(IntField).Value != 9 {
		t.Fatalf("expected max=9, got %v", maxRows[0].Fields[0])
	}
}

func TestAggregateStringFieldRejectsNonCount(t *testing.T) {
	desc := intStringDesc(t) // a int, b string
	child := &sliceOperator{desc: desc, rows: nil}

	_, err := NewAggregate(child, "b", "", AggSum, "sum_b", "", "", false)
	if err == nil {
		t.Fatal("expected SUM over a string field to be rejected")
	}
	gerr, ok := err.(GoDBError)
	if !ok || gerr.Code != IllegalArgumentError {
		t.Fatalf("expected IllegalArgumentError, got %v", err)
	}

	_, err = NewAggregate(child, "b", "", AggCount, "count_b", "", "", false)
	if err != nil {
		t.Fatalf("expected COUNT over a string field to be allowed: %v", err)
	}
}

func TestAggregateCountOverEmptyChildYieldsZero(t *testing.T) {
	desc := twoIntDesc(t)
	child := &sliceOperator{desc: desc, rows: nil}

	agg, err := NewAggregate(child, "a", "", AggCount, "count_a", "", "", false)
	if err != nil {
		t.Fatalf("NewAggregate: %v", err)
	}
	got := drainOperator(t, agg, NewTID())
	if len(got) != 1 || got[0].Fields[0].(IntField).Value != 0 {
		t.Fatalf("expected a single zero-count row, got %v", got)
	}
}
