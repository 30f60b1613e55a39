package godb

import "fmt"

// ErrorType classifies the kind of failure a GoDBError represents:
// failures that require the caller to abort its transaction versus failures
// that indicate a programming or resource error.
type ErrorType int

const (
	// TransactionAborted signals a lock timeout, an interrupted wait, or an
	// explicit operator abort request. The caller is expected to invoke
	// BufferPool.TransactionComplete(tid, false).
	TransactionAbortedError ErrorType = iota

	// DbError is a programming or resource error: releasing a lock the
	// transaction didn't hold, a negative lock counter,
	// a schema mismatch on insert, an invalid page number, or an IO failure.
	DbError

	// NoSuchElementError is a catalog lookup miss, a field-name lookup miss,
	// or an invalid field index.
	NoSuchElementError

	// IllegalArgumentError is schema construction with empty or mismatched
	// field lists, or a string aggregate with a non-COUNT operator.
	IllegalArgumentError

	// BufferPoolFullError is raised from GetPage when every cached page is
	// dirty and there is no clean victim to evict.
	BufferPoolFullError

	// TypeMismatchError is raised when a field's encoded type doesn't match
	// what the schema expects.
	TypeMismatchError

	// AmbiguousNameError is raised when a field name resolves to more than
	// one column in a schema.
	AmbiguousNameError
)

func (e ErrorType) String() string {
	switch e {
	case TransactionAbortedError:
		return "transaction aborted"
	case DbError:
		return "db error"
	case NoSuchElementError:
		return "no such element"
	case IllegalArgumentError:
		return "illegal argument"
	case BufferPoolFullError:
		return "buffer pool full"
	case TypeMismatchError:
		return "type mismatch"
	case AmbiguousNameError:
		return "ambiguous name"
	default:
		return "unknown error"
	}
}

// GoDBError is the core's single error type: a kind tag plus a human
// readable message. Callers that need to distinguish TransactionAborted from
// everything else use errors.As and inspect Code.
type GoDBError struct {
	Code ErrorType
	Msg  string
}

func (e GoDBError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// IsTransactionAborted reports whether err is a GoDBError carrying the
// TransactionAborted code. Callers use this to decide whether to retry the
// transaction after calling TransactionComplete(tid, false).
func IsTransactionAborted(err error) bool {
	var gerr GoDBError
	if ok := asGoDBError(err, &gerr); ok {
		return gerr.Code == TransactionAbortedError
	}
	return false
}

func asGoDBError(err error, target *GoDBError) bool {
	switch e := err.(type) {
	case GoDBError:
		*target = e
		return true
	default:
		return false
	}
}
