package godb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Tuple is a schema plus a position-indexed sequence of field values. Rid is
// nil until the tuple is placed on (or read from) a page.
type Tuple struct {
	Desc   TupleDesc
	Fields []DBValue
	Rid    *RecordID
}

// equals reports whether t1 and t2 have equal schemas and equal fields,
// position-wise.
func (t1 *Tuple) equals(t2 *Tuple) bool {
	if t1 == nil && t2 == nil {
		return true
	}
	if t1 == nil || t2 == nil {
		return false
	}
	if !t1.Desc.equals(&t2.Desc) {
		return false
	}
	if len(t1.Fields) != len(t2.Fields) {
		return false
	}
	for i := range t1.Fields {
		if t1.Fields[i] != t2.Fields[i] {
			return false
		}
	}
	return true
}

func writeIntField(b *bytes.Buffer, f IntField) error {
	return binary.Write(b, binary.LittleEndian, f.Value)
}

func writeStringField(b *bytes.Buffer, f StringField) error {
	raw := []byte(f.Value)
	if len(raw) > StringLength {
		raw = raw[:StringLength]
	}
	if err := binary.Write(b, binary.LittleEndian, int32(len(raw))); err != nil {
		return err
	}
	padded := make([]byte, StringLength)
	copy(padded, raw)
	_, err := b.Write(padded)
	return err
}

// writeTo serializes t's fields, in schema order, into b: a fixed-width
// little-endian int32 for each IntType field, and a 4-byte length prefix
// followed by a zero-padded StringLength-byte payload for each StringType
// field.
func (t *Tuple) writeTo(b *bytes.Buffer) error {
	for _, field := range t.Fields {
		switch v := field.(type) {
		case IntField:
			if err := writeIntField(b, v); err != nil {
				return err
			}
		case StringField:
			if err := writeStringField(b, v); err != nil {
				return err
			}
		default:
			return GoDBError{TypeMismatchError, fmt.Sprintf("unsupported field type %T", field)}
		}
	}
	return nil
}

func readIntField(b *bytes.Buffer) (IntField, error) {
	var v int32
	if err := binary.Read(b, binary.LittleEndian, &v); err != nil {
		return IntField{}, err
	}
	return IntField{Value: v}, nil
}

func readStringField(b *bytes.Buffer) (StringField, error) {
	var n int32
	if err := binary.Read(b, binary.LittleEndian, &n); err != nil {
		return StringField{}, err
	}
	payload := make([]byte, StringLength)
	if err := binary.Read(b, binary.LittleEndian, payload); err != nil {
		return StringField{}, err
	}
	if int(n) < 0 || int(n) > StringLength {
		return StringField{}, GoDBError{TypeMismatchError, "corrupt string length prefix"}
	}
	return StringField{Value: strings.TrimRight(string(payload[:n]), "\x00")}, nil
}

// readTupleFrom deserializes one tuple of the given schema from b.
func readTupleFrom(b *bytes.Buffer, desc *TupleDesc) (*Tuple, error) {
	t := &Tuple{Desc: *desc, Fields: make([]DBValue, len(desc.Fields))}
	for i, ft := range desc.Fields {
		switch ft.Ftype {
		case IntType:
			f, err := readIntField(b)
			if err != nil {
				return nil, err
			}
			t.Fields[i] = f
		case StringType:
			f, err := readStringField(b)
			if err != nil {
				return nil, err
			}
			t.Fields[i] = f
		default:
			return nil, GoDBError{TypeMismatchError, "unknown field type in schema"}
		}
	}
	return t, nil
}
