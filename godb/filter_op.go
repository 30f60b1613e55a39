package godb

// Filter passes through only the tuples of its child whose named field
// compares true against a constant, under op.
type Filter struct {
	fieldIdx int
	op       BoolOp
	constant DBValue
	child    Operator
}

// NewFilter resolves fieldName (optionally qualified by tableQualifier)
// against child's schema once, up front, so every pulled tuple's
// comparison is a plain slice index.
func NewFilter(fieldName, tableQualifier string, op BoolOp, constant DBValue, child Operator) (*Filter, error) {
	idx, err := findFieldInTd(FieldType{Fname: fieldName, TableQualifier: tableQualifier, Ftype: UnknownType}, child.Descriptor())
	if err != nil {
		return nil, err
	}
	return &Filter{fieldIdx: idx, op: op, constant: constant, child: child}, nil
}

func (f *Filter) Descriptor() *TupleDesc {
	return f.child.Descriptor()
}

func (f *Filter) Iterator(tid TransactionID) (func() (*Tuple, error), error) {
	childIter, err := f.child.Iterator(tid)
	if err != nil {
		return nil, err
	}

	return func() (*Tuple, error) {
		for {
			t, err := childIter()
			if err != nil {
				return nil, err
			}
			if t == nil {
				return nil, nil
			}
			if t.Fields[f.fieldIdx].EvalPred(f.constant, f.op) {
				return t, nil
			}
		}
	}, nil
}
