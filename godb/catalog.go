package godb

import (
	"fmt"
	"sync"
)

// Catalog is the name <-> table-id bimap plus, for each table, its schema
// and the HeapFile backing it. BufferPool consults it on every cache miss
// to find which file a PageID's table component maps to.
type Catalog struct {
	mu       sync.Mutex
	nameToID map[string]int
	idToName map[int]string
	schemas  map[int]*TupleDesc
	files    map[int]*HeapFile
}

func NewCatalog() *Catalog {
	return &Catalog{
		nameToID: make(map[string]int),
		idToName: make(map[int]string),
		schemas:  make(map[int]*TupleDesc),
		files:    make(map[int]*HeapFile),
	}
}

// AddTable registers name as file's table, keyed by file.id(). It is an
// IllegalArgumentError to register the same name twice.
func (c *Catalog) AddTable(name string, desc *TupleDesc, file *HeapFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.nameToID[name]; ok {
		return GoDBError{IllegalArgumentError, fmt.Sprintf("table %q already registered", name)}
	}
	id := file.id()
	c.nameToID[name] = id
	c.idToName[id] = name
	c.schemas[id] = desc
	c.files[id] = file
	return nil
}

func (c *Catalog) GetTableID(name string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.nameToID[name]
	if !ok {
		return 0, GoDBError{NoSuchElementError, fmt.Sprintf("no table named %q", name)}
	}
	return id, nil
}

func (c *Catalog) GetTableName(id int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.idToName[id]
	if !ok {
		return "", GoDBError{NoSuchElementError, fmt.Sprintf("no table with id %d", id)}
	}
	return name, nil
}

func (c *Catalog) GetSchema(id int) (*TupleDesc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	desc, ok := c.schemas[id]
	if !ok {
		return nil, GoDBError{NoSuchElementError, fmt.Sprintf("no table with id %d", id)}
	}
	return desc, nil
}

func (c *Catalog) GetFile(id int) (*HeapFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	file, ok := c.files[id]
	if !ok {
		return nil, GoDBError{NoSuchElementError, fmt.Sprintf("no table with id %d", id)}
	}
	return file, nil
}

func (c *Catalog) GetFileByName(name string) (*HeapFile, error) {
	id, err := c.GetTableID(name)
	if err != nil {
		return nil, err
	}
	return c.GetFile(id)
}
