package godb

import "fmt"

// PageSize is the size in bytes of every page in every heap file. Tests may
// override it (see config.go); production callers use the default.
var PageSize int = 4096

// StringLength is the fixed on-disk width, in bytes, of a StringType field's
// payload (excluding its 4-byte length prefix).
var StringLength int = 128

// DBType is the type of a tuple field: a closed set of two scalar kinds.
type DBType int

const (
	IntType DBType = iota
	StringType
	UnknownType // used internally during field-name resolution
)

func (t DBType) String() string {
	switch t {
	case IntType:
		return "int"
	case StringType:
		return "string"
	}
	return "unknown"
}

// byteSize returns the fixed on-disk width of one field of this type,
// including any length prefix.
func (t DBType) byteSize() int {
	switch t {
	case IntType:
		return 4
	case StringType:
		return 4 + StringLength
	}
	return 0
}

// FieldType names one column of a schema: its name, the table alias it was
// qualified by (if any), and its DBType.
type FieldType struct {
	Fname          string
	TableQualifier string
	Ftype          DBType
}

// TupleDesc is the ordered, immutable-once-built schema of a tuple.
type TupleDesc struct {
	Fields []FieldType
}

// NewTupleDesc validates and constructs a schema. It is the only
// constructor that can fail validation; once built, a TupleDesc's Fields
// slice is never mutated in place by this package: setTableAlias returns a
// new TupleDesc and leaves its receiver untouched.
func NewTupleDesc(fields []FieldType) (*TupleDesc, error) {
	if len(fields) == 0 {
		return nil, GoDBError{IllegalArgumentError, "schema must have at least one field"}
	}
	return &TupleDesc{Fields: fields}, nil
}

// equals reports whether d1 and d2 describe the same sequence of types.
// Field names are intentionally not compared: two schemas with identical
// type sequences but different column names are considered equal.
func (d1 *TupleDesc) equals(d2 *TupleDesc) bool {
	if len(d1.Fields) != len(d2.Fields) {
		return false
	}
	for i := range d1.Fields {
		if d1.Fields[i].Ftype != d2.Fields[i].Ftype {
			return false
		}
	}
	return true
}

// bytesPerTuple is the fixed number of bytes one tuple of this schema
// occupies in a slot.
func (td *TupleDesc) bytesPerTuple() int {
	n := 0
	for _, f := range td.Fields {
		n += f.Ftype.byteSize()
	}
	return n
}

// findFieldInTd finds the best-matching field in desc for field, preferring
// a TableQualifier match when field names the qualifier it wants. Adapted
// from the teacher's parser-support helper; kept because Filter and
// Aggregate both need to resolve a field name (possibly alias-qualified) to
// a column index.
func findFieldInTd(field FieldType, desc *TupleDesc) (int, error) {
	best := -1
	for i, f := range desc.Fields {
		if f.Fname != field.Fname {
			continue
		}
		if field.Ftype != UnknownType && f.Ftype != field.Ftype {
			continue
		}
		if field.TableQualifier == "" {
			if best != -1 {
				return 0, GoDBError{AmbiguousNameError, fmt.Sprintf("field name %s is ambiguous", f.Fname)}
			}
			best = i
			continue
		}
		if f.TableQualifier == field.TableQualifier {
			return i, nil
		}
		if best == -1 {
			best = i
		}
	}
	if best != -1 {
		return best, nil
	}
	return -1, GoDBError{NoSuchElementError, fmt.Sprintf("field %s.%s not found", field.TableQualifier, field.Fname)}
}

// copy makes a shallow copy of td's Fields slice (not the fields pointed to,
// which are plain value structs anyway).
func (td *TupleDesc) copy() *TupleDesc {
	fields := make([]FieldType, len(td.Fields))
	copy(fields, td.Fields)
	return &TupleDesc{Fields: fields}
}

// setTableAlias assigns the given alias as the TableQualifier of every
// field. Used by SequentialScan to prefix a table's columns with its query
// alias.
func (td *TupleDesc) setTableAlias(alias string) *TupleDesc {
	fields := make([]FieldType, len(td.Fields))
	copy(fields, td.Fields)
	for i := range fields {
		fields[i].TableQualifier = alias
	}
	return &TupleDesc{Fields: fields}
}

// BoolOp is a predicate comparison operator.
type BoolOp int

const (
	OpEq BoolOp = iota
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpLike
)

// DBValue is the interface implemented by the two field-value kinds,
// IntField and StringField. It plays the role of a closed tagged union
// (Int | String) without runtime class dispatch: callers type-switch on the
// concrete type when they need to, and EvalPred covers the comparisons the
// Filter operator needs without exposing that switch to every caller.
type DBValue interface {
	EvalPred(other DBValue, op BoolOp) bool
}

// IntField is a 32-bit signed integer field value.
type IntField struct {
	Value int32
}

// StringField is a fixed-length (StringLength byte) string field value.
type StringField struct {
	Value string
}

func (f IntField) EvalPred(other DBValue, op BoolOp) bool {
	o, ok := other.(IntField)
	if !ok {
		return false
	}
	switch op {
	case OpEq:
		return f.Value == o.Value
	case OpNeq:
		return f.Value != o.Value
	case OpLt:
		return f.Value < o.Value
	case OpLe:
		return f.Value <= o.Value
	case OpGt:
		return f.Value > o.Value
	case OpGe:
		return f.Value >= o.Value
	default:
		return false
	}
}

func (f StringField) EvalPred(other DBValue, op BoolOp) bool {
	o, ok := other.(StringField)
	if !ok {
		return false
	}
	switch op {
	case OpEq:
		return f.Value == o.Value
	case OpNeq:
		return f.Value != o.Value
	case OpLt:
		return f.Value < o.Value
	case OpLe:
		return f.Value <= o.Value
	case OpGt:
		return f.Value > o.Value
	case OpGe:
		return f.Value >= o.Value
	case OpLike:
		return likeMatch(f.Value, o.Value)
	default:
		return false
	}
}
