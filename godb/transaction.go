package godb

import "github.com/google/uuid"

// TransactionID identifies the client under which page locks are acquired
// and held until commit or abort. It is minted from a UUID rather than a
// process-local counter so that ids stay unique across BufferPool instances
// in the same process (tests routinely spin up more than one).
type TransactionID struct {
	id uuid.UUID
}

// NewTID mints a fresh TransactionID.
func NewTID() TransactionID {
	return TransactionID{id: uuid.New()}
}

func (t TransactionID) String() string {
	return t.id.String()
}
