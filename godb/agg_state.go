package godb

// AggState accumulates one aggregate function's running result across the
// tuples of a single group.
type AggState interface {
	// Init resets the state, with alias as the name the finalized column
	// will carry.
	Init(alias string)

	// AddValue folds one more field value into the running result.
	AddValue(v DBValue)

	// Finalize returns the aggregate's result as a one-field tuple.
	Finalize() *Tuple

	// GetTupleDesc describes the tuple Finalize returns.
	GetTupleDesc() *TupleDesc
}

// CountAggState counts the values it's given; it's the only aggregate
// valid over a StringType field.
type CountAggState struct {
	alias string
	count int32
}

func (a *CountAggState) Init(alias string) { a.alias = alias; a.count = 0 }
func (a *CountAggState) AddValue(DBValue)  { a.count++ }

func (a *CountAggState) GetTupleDesc() *TupleDesc {
	return &TupleDesc{Fields: []FieldType{{Fname: a.alias, Ftype: IntType}}}
}

func (a *CountAggState) Finalize() *Tuple {
	return &Tuple{Desc: *a.GetTupleDesc(), Fields: []DBValue{IntField{a.count}}}
}

// SumAggState sums the IntField values it's given.
type SumAggState struct {
	alias string
	sum   int32
}

func (a *SumAggState) Init(alias string) { a.alias = alias; a.sum = 0 }

func (a *SumAggState) AddValue(v DBValue) {
	a.sum += v.(IntField).Value
}

func (a *SumAggState) GetTupleDesc() *TupleDesc {
	return &TupleDesc{Fields: []FieldType{{Fname: a.alias, Ftype: IntType}}}
}

func (a *SumAggState) Finalize() *Tuple {
	return &Tuple{Desc: *a.GetTupleDesc(), Fields: []DBValue{IntField{a.sum}}}
}

// AvgAggState averages the IntField values it's given, truncating like
// integer division. A grouped aggregate only creates a group's AggState
// for a tuple it then adds, but a no-GROUP-BY aggregate over an empty
// child finalizes without any AddValue; Finalize yields 0 in that case.
type AvgAggState struct {
	alias string
	sum   int32
	count int32
}

func (a *AvgAggState) Init(alias string) { a.alias = alias; a.sum = 0; a.count = 0 }

func (a *AvgAggState) AddValue(v DBValue) {
	a.sum += v.(IntField).Value
	a.count++
}

func (a *AvgAggState) GetTupleDesc() *TupleDesc {
	return &TupleDesc{Fields: []FieldType{{Fname: a.alias, Ftype: IntType}}}
}

func (a *AvgAggState) Finalize() *Tuple {
	if a.count == 0 {
		return &Tuple{Desc: *a.GetTupleDesc(), Fields: []DBValue{IntField{0}}}
	}
	return &Tuple{Desc: *a.GetTupleDesc(), Fields: []DBValue{IntField{a.sum / a.count}}}
}

// MaxAggState tracks the maximum IntField value it's given.
type MaxAggState struct {
	alias   string
	maximum IntField
	set     bool
}

func (a *MaxAggState) Init(alias string) { a.alias = alias; a.set = false }

func (a *MaxAggState) AddValue(v DBValue) {
	iv := v.(IntField)
	if !a.set || iv.Value > a.maximum.Value {
		a.maximum = iv
		a.set = true
	}
}

func (a *MaxAggState) GetTupleDesc() *TupleDesc {
	return &TupleDesc{Fields: []FieldType{{Fname: a.alias, Ftype: IntType}}}
}

func (a *MaxAggState) Finalize() *Tuple {
	return &Tuple{Desc: *a.GetTupleDesc(), Fields: []DBValue{a.maximum}}
}

// MinAggState tracks the minimum IntField value it's given.
type MinAggState struct {
	alias   string
	minimum IntField
	set     bool
}

func (a *MinAggState) Init(alias string) { a.alias = alias; a.set = false }

func (a *MinAggState) AddValue(v DBValue) {
	iv := v.(IntField)
	if !a.set || iv.Value < a.minimum.Value {
		a.minimum = iv
		a.set = true
	}
}

func (a *MinAggState) GetTupleDesc() *TupleDesc {
	return &TupleDesc{Fields: []FieldType{{Fname: a.alias, Ftype: IntType}}}
}

func (a *MinAggState) Finalize() *Tuple {
	return &Tuple{Desc: *a.GetTupleDesc(), Fields: []DBValue{a.minimum}}
}
