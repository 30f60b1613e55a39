package godb

// DeleteOp drains its child to completion, deleting each tuple (located by
// its Rid) from table, and yields a single "count" tuple.
type DeleteOp struct {
	table *HeapFile
	child Operator
	desc  *TupleDesc
}

func NewDeleteOp(table *HeapFile, child Operator) *DeleteOp {
	return &DeleteOp{
		table: table,
		child: child,
		desc:  &TupleDesc{Fields: []FieldType{{Fname: "count", Ftype: IntType}}},
	}
}

func (d *DeleteOp) Descriptor() *TupleDesc {
	return d.desc
}

func (d *DeleteOp) Iterator(tid TransactionID) (func() (*Tuple, error), error) {
	childIter, err := d.child.Iterator(tid)
	if err != nil {
		return nil, err
	}
	done := false

	return func() (*Tuple, error) {
		if done {
			return nil, nil
		}
		done = true

		var count int32
		for {
			t, err := childIter()
			if err != nil {
				return nil, err
			}
			if t == nil {
				break
			}
			if _, err := d.table.deleteTuple(tid, t); err != nil {
				return nil, err
			}
			count++
		}
		return &Tuple{Desc: *d.desc, Fields: []DBValue{IntField{count}}}, nil
	}, nil
}
