package godb

// Operator is the pull-based relational iterator every operator in this
// package implements: Descriptor reports the schema of the tuples it
// produces, and Iterator returns a closure yielding one tuple per call and
// a nil tuple (with a nil error) once exhausted. This is the teacher's
// iterator idiom, used unchanged.
type Operator interface {
	Descriptor() *TupleDesc
	Iterator(tid TransactionID) (func() (*Tuple, error), error)
}

// pullState adapts an Operator's closure idiom to the fuller
// Open/HasNext/Next/Rewind/Close/GetSchema contract callers outside this
// package drive an operator through. It buffers at most one tuple of
// lookahead so HasNext can answer truthfully without consuming the tuple
// Next would return.
type pullState struct {
	op     Operator
	tid    TransactionID
	next   func() (*Tuple, error)
	peeked *Tuple
	primed bool
	opened bool
}

func newPullState(op Operator) *pullState {
	return &pullState{op: op}
}

func (p *pullState) Open(tid TransactionID) error {
	it, err := p.op.Iterator(tid)
	if err != nil {
		return err
	}
	p.tid = tid
	p.next = it
	p.peeked = nil
	p.primed = false
	p.opened = true
	return nil
}

func (p *pullState) ensurePrimed() error {
	if !p.opened {
		return GoDBError{DbError, "operator used before Open"}
	}
	if p.primed {
		return nil
	}
	t, err := p.next()
	if err != nil {
		return err
	}
	p.peeked = t
	p.primed = true
	return nil
}

func (p *pullState) HasNext() (bool, error) {
	if err := p.ensurePrimed(); err != nil {
		return false, err
	}
	return p.peeked != nil, nil
}

func (p *pullState) Next() (*Tuple, error) {
	if err := p.ensurePrimed(); err != nil {
		return nil, err
	}
	if p.peeked == nil {
		return nil, GoDBError{NoSuchElementError, "Next called with no tuple available"}
	}
	t := p.peeked
	p.peeked = nil
	p.primed = false
	return t, nil
}

// Rewind closes and reopens the underlying iterator against the same
// transaction.
func (p *pullState) Rewind() error {
	return p.Open(p.tid)
}

func (p *pullState) Close() error {
	p.opened = false
	p.next = nil
	p.peeked = nil
	return nil
}

func (p *pullState) GetSchema() *TupleDesc {
	return p.op.Descriptor()
}

// PullOperator wraps any Operator with the Open/HasNext/Next/Rewind/Close/
// GetSchema surface, for callers (tests, a future query executor) that want
// that contract directly instead of the raw closure.
type PullOperator struct {
	*pullState
}

func NewPullOperator(op Operator) *PullOperator {
	return &PullOperator{pullState: newPullState(op)}
}
