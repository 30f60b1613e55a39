package godb

// AggOp names which aggregate function an Aggregate operator computes.
type AggOp int

const (
	AggCount AggOp = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

// Aggregate drains its child and groups tuples by a group field's value
// (or, with no grouping, folds every tuple into one running state), then
// yields one result tuple per group. A StringType aggregate field is only
// valid with AggCount.
type Aggregate struct {
	child Operator

	aggFieldIdx int
	aggOp       AggOp
	aggAlias    string

	groupFieldIdx int // -1 means no grouping
	desc          *TupleDesc
}

// NewAggregate resolves the aggregate field (and, if hasGroup, the group
// field) against child's schema up front.
func NewAggregate(child Operator, aggFieldName, aggTableQualifier string, aggOp AggOp, aggAlias string, groupFieldName, groupTableQualifier string, hasGroup bool) (*Aggregate, error) {
	desc := child.Descriptor()

	aggIdx, err := findFieldInTd(FieldType{Fname: aggFieldName, TableQualifier: aggTableQualifier, Ftype: UnknownType}, desc)
	if err != nil {
		return nil, err
	}
	if desc.Fields[aggIdx].Ftype == StringType && aggOp != AggCount {
		return nil, GoDBError{IllegalArgumentError, "aggregate over a string field must be COUNT"}
	}

	groupIdx := -1
	var outFields []FieldType
	if hasGroup {
		groupIdx, err = findFieldInTd(FieldType{Fname: groupFieldName, TableQualifier: groupTableQualifier, Ftype: UnknownType}, desc)
		if err != nil {
			return nil, err
		}
		outFields = append(outFields, desc.Fields[groupIdx])
	}
	outFields = append(outFields, FieldType{Fname: aggAlias, Ftype: IntType})

	return &Aggregate{
		child:         child,
		aggFieldIdx:   aggIdx,
		aggOp:         aggOp,
		aggAlias:      aggAlias,
		groupFieldIdx: groupIdx,
		desc:          &TupleDesc{Fields: outFields},
	}, nil
}

func (a *Aggregate) Descriptor() *TupleDesc {
	return a.desc
}

func (a *Aggregate) newState() AggState {
	var s AggState
	switch a.aggOp {
	case AggCount:
		s = &CountAggState{}
	case AggSum:
		s = &SumAggState{}
	case AggAvg:
		s = &AvgAggState{}
	case AggMin:
		s = &MinAggState{}
	case AggMax:
		s = &MaxAggState{}
	}
	s.Init(a.aggAlias)
	return s
}

type aggGroup struct {
	groupVal DBValue
	state    AggState
}

func (a *Aggregate) Iterator(tid TransactionID) (func() (*Tuple, error), error) {
	childIter, err := a.child.Iterator(tid)
	if err != nil {
		return nil, err
	}

	groups := make(map[DBValue]*aggGroup)
	var order []DBValue
	noGroupState := a.newState() // a query with no GROUP BY always emits exactly one row

	drained := false
	idx := 0
	noGroupEmitted := false

	drain := func() error {
		for {
			t, err := childIter()
			if err != nil {
				return err
			}
			if t == nil {
				return nil
			}
			aggVal := t.Fields[a.aggFieldIdx]

			if a.groupFieldIdx < 0 {
				noGroupState.AddValue(aggVal)
				continue
			}

			groupVal := t.Fields[a.groupFieldIdx]
			g, ok := groups[groupVal]
			if !ok {
				g = &aggGroup{groupVal: groupVal, state: a.newState()}
				groups[groupVal] = g
				order = append(order, groupVal)
			}
			g.state.AddValue(aggVal)
		}
	}

	return func() (*Tuple, error) {
		if !drained {
			drained = true
			if err := drain(); err != nil {
				return nil, err
			}
		}

		if a.groupFieldIdx < 0 {
			if noGroupEmitted {
				return nil, nil
			}
			noGroupEmitted = true
			return noGroupState.Finalize(), nil
		}

		if idx >= len(order) {
			return nil, nil
		}
		g := groups[order[idx]]
		idx++

		aggTuple := g.state.Finalize()
		fields := append([]DBValue{g.groupVal}, aggTuple.Fields...)
		return &Tuple{Desc: *a.desc, Fields: fields}, nil
	}, nil
}
