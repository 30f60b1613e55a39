package godb

import (
	"bytes"
	"fmt"
)

/*
HeapPage implements a slotted page: a fixed PageSize-byte buffer holding a
header bitmap of occupied slots followed by a packed array of fixed-size
tuple slots.

	numSlots    = floor((PageSize*8) / (bytesPerTuple*8 + 1))
	headerBytes = ceil(numSlots / 8)

Slot j is occupied iff bit j of the header (LSB-first: bit 0 of byte 0 is
slot 0) is set. Deleting a tuple only clears its header bit; the slot's
bytes are left in place (slotRaw), which is why deleted-then-rewritten
pages don't need to zero anything on the delete path.
*/
type HeapPage struct {
	id          PageID
	desc        *TupleDesc
	file        *HeapFile
	numSlots    int
	tupleBytes  int
	headerBytes int
	tuples      []*Tuple // nil entry == empty slot
	slotRaw     [][]byte // last-written bytes for each slot, nil until ever written
	dirtyBy     *TransactionID
	beforeImage []byte
}

func slotLayout(desc *TupleDesc) (numSlots, tupleBytes, headerBytes int) {
	tupleBytes = desc.bytesPerTuple()
	numSlots = (PageSize * 8) / (tupleBytes*8 + 1)
	headerBytes = (numSlots + 7) / 8
	return
}

// newHeapPage allocates a fresh, empty page. Used when HeapFile.readPage is
// asked for a page number one past the current end of file.
func newHeapPage(pid PageID, desc *TupleDesc, file *HeapFile) *HeapPage {
	numSlots, tupleBytes, headerBytes := slotLayout(desc)
	p := &HeapPage{
		id:          pid,
		desc:        desc,
		file:        file,
		numSlots:    numSlots,
		tupleBytes:  tupleBytes,
		headerBytes: headerBytes,
		tuples:      make([]*Tuple, numSlots),
		slotRaw:     make([][]byte, numSlots),
	}
	p.setBeforeImage()
	return p
}

// newHeapPageFromBytes parses a page's on-disk representation. Fails if
// data isn't exactly PageSize bytes, or if an occupied slot's bytes don't
// decode under desc.
func newHeapPageFromBytes(pid PageID, desc *TupleDesc, file *HeapFile, data []byte) (*HeapPage, error) {
	if len(data) != PageSize {
		return nil, GoDBError{DbError, fmt.Sprintf("page %v: expected %d bytes, got %d", pid, PageSize, len(data))}
	}
	numSlots, tupleBytes, headerBytes := slotLayout(desc)
	p := &HeapPage{
		id:          pid,
		desc:        desc,
		file:        file,
		numSlots:    numSlots,
		tupleBytes:  tupleBytes,
		headerBytes: headerBytes,
		tuples:      make([]*Tuple, numSlots),
		slotRaw:     make([][]byte, numSlots),
	}

	header := data[:headerBytes]
	body := data[headerBytes:]
	for slot := 0; slot < numSlots; slot++ {
		occupied := header[slot/8]&(1<<uint(slot%8)) != 0
		start := slot * tupleBytes
		raw := make([]byte, tupleBytes)
		copy(raw, body[start:start+tupleBytes])
		p.slotRaw[slot] = raw
		if !occupied {
			continue
		}
		tup, err := readTupleFrom(bytes.NewBuffer(raw), desc)
		if err != nil {
			return nil, GoDBError{DbError, fmt.Sprintf("page %v slot %d: %v", pid, slot, err)}
		}
		rid := RecordID{PID: pid, Slot: slot}
		tup.Rid = &rid
		p.tuples[slot] = tup
	}
	p.setBeforeImage()
	return p, nil
}

func (p *HeapPage) pageID() PageID {
	return p.id
}

func (p *HeapPage) getNumEmptySlots() int {
	n := 0
	for _, t := range p.tuples {
		if t == nil {
			n++
		}
	}
	return n
}

// insertTuple requires t's schema to match the page's schema and t to have
// no RecordID (or one naming an already-empty slot on this page). It finds
// the lowest-index empty slot, writes t's bytes there, and sets t.Rid.
func (p *HeapPage) insertTuple(t *Tuple) (RecordID, error) {
	if !t.Desc.equals(p.desc) {
		return RecordID{}, GoDBError{DbError, "insertTuple: schema mismatch"}
	}
	if t.Rid != nil {
		if t.Rid.PID != p.id || p.tuples[t.Rid.Slot] != nil {
			return RecordID{}, GoDBError{DbError, "insertTuple: tuple already placed"}
		}
	}
	for slot := 0; slot < p.numSlots; slot++ {
		if p.tuples[slot] != nil {
			continue
		}
		var buf bytes.Buffer
		if err := t.writeTo(&buf); err != nil {
			return RecordID{}, err
		}
		raw := make([]byte, p.tupleBytes)
		copy(raw, buf.Bytes())
		p.slotRaw[slot] = raw

		rid := RecordID{PID: p.id, Slot: slot}
		stored := &Tuple{Desc: *p.desc, Fields: append([]DBValue(nil), t.Fields...), Rid: &rid}
		p.tuples[slot] = stored
		t.Rid = &rid
		return rid, nil
	}
	return RecordID{}, GoDBError{DbError, "insertTuple: no empty slot"}
}

// deleteTuple requires rid to name a slot on this page that is currently
// occupied. It only clears the header bit; slotRaw is left untouched.
func (p *HeapPage) deleteTuple(rid RecordID) error {
	if rid.PID != p.id {
		return GoDBError{DbError, "deleteTuple: record id names a different page"}
	}
	if rid.Slot < 0 || rid.Slot >= p.numSlots || p.tuples[rid.Slot] == nil {
		return GoDBError{DbError, "deleteTuple: slot is not occupied"}
	}
	p.tuples[rid.Slot] = nil
	return nil
}

// iterator returns a lazy, finite sequence of the page's tuples in
// ascending slot order, skipping empty slots. It is not restartable in
// place: call iterator() again for a fresh pass.
func (p *HeapPage) iterator() func() (*Tuple, error) {
	i := 0
	return func() (*Tuple, error) {
		for i < len(p.tuples) {
			t := p.tuples[i]
			i++
			if t != nil {
				return t, nil
			}
		}
		return nil, nil
	}
}

func (p *HeapPage) isDirty() (TransactionID, bool) {
	if p.dirtyBy == nil {
		return TransactionID{}, false
	}
	return *p.dirtyBy, true
}

func (p *HeapPage) markDirty(dirty bool, tid TransactionID) {
	if dirty {
		p.dirtyBy = &tid
	} else {
		p.dirtyBy = nil
	}
}

func (p *HeapPage) getBeforeImage() []byte {
	out := make([]byte, len(p.beforeImage))
	copy(out, p.beforeImage)
	return out
}

// setBeforeImage snapshots the page's current on-disk encoding as its
// before-image. Called whenever a page becomes clean: right after it's
// loaded from disk and right after a commit flush writes it back out.
func (p *HeapPage) setBeforeImage() {
	data, err := p.toBytes()
	if err != nil {
		return
	}
	p.beforeImage = data
}

// toBytes serializes the page: header bitmap then numSlots fixed-width slot
// records, padded to PageSize bytes.
func (p *HeapPage) toBytes() ([]byte, error) {
	buf := make([]byte, PageSize)
	header := buf[:p.headerBytes]
	body := buf[p.headerBytes:]

	for slot := 0; slot < p.numSlots; slot++ {
		if p.tuples[slot] == nil {
			continue
		}
		header[slot/8] |= 1 << uint(slot%8)
	}

	for slot := 0; slot < p.numSlots; slot++ {
		start := slot * p.tupleBytes
		if raw := p.slotRaw[slot]; raw != nil {
			copy(body[start:start+p.tupleBytes], raw)
		}
	}

	return buf, nil
}
