package godb

// InsertOp drains its child to completion, inserting each tuple into table,
// and yields a single "count" tuple.
type InsertOp struct {
	table *HeapFile
	child Operator
	desc  *TupleDesc
}

func NewInsertOp(table *HeapFile, child Operator) *InsertOp {
	return &InsertOp{
		table: table,
		child: child,
		desc:  &TupleDesc{Fields: []FieldType{{Fname: "count", Ftype: IntType}}},
	}
}

func (i *InsertOp) Descriptor() *TupleDesc {
	return i.desc
}

func (i *InsertOp) Iterator(tid TransactionID) (func() (*Tuple, error), error) {
	childIter, err := i.child.Iterator(tid)
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
			if _, err := i.table.insertTuple(tid, t); err != nil {
				return nil, err
			}
			count++
		}
		return &Tuple{Desc: *i.desc, Fields: []DBValue{IntField{count}}}, nil
	}, nil
}
