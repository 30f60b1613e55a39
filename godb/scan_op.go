package godb

// SequentialScan reads every tuple of one table, once per Iterator call,
// through the owning HeapFile (and so through the buffer pool). Its
// descriptor qualifies every field with alias, the way a "FROM table AS
// alias" clause would, so Filter and Aggregate can resolve ambiguous field
// names across a plan with more than one scan.
type SequentialScan struct {
	tableID int
	alias   string
	file    *HeapFile
	desc    *TupleDesc
}

// NewSequentialScan looks tableName up in catalog and builds a scan over
// it, qualifying its schema with alias.
func NewSequentialScan(catalog *Catalog, tableName, alias string) (*SequentialScan, error) {
	tableID, err := catalog.GetTableID(tableName)
	if err != nil {
		return nil, err
	}
	file, err := catalog.GetFile(tableID)
	if err != nil {
		return nil, err
	}
	return &SequentialScan{
		tableID: tableID,
		alias:   alias,
		file:    file,
		desc:    file.Descriptor().copy().setTableAlias(alias),
	}, nil
}

func (s *SequentialScan) Descriptor() *TupleDesc {
	return s.desc
}

func (s *SequentialScan) Iterator(tid TransactionID) (func() (*Tuple, error), error) {
	fileIter, err := s.file.iterator(tid)
	if err != nil {
		return nil, err
	}
	return func() (*Tuple, error) {
		t, err := fileIter()
		if err != nil || t == nil {
			return t, err
		}
		out := *t
		out.Desc = *s.desc
		return &out, nil
	}, nil
}
