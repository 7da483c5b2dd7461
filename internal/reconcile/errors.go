package reconcile

import "fmt"

// StoreError wraps a persistence-layer failure (connectivity, constraint
// violation, statement timeout). The client re-queues and retries; the
// server never retries internally.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NotFoundError reports a write that matched zero rows. The legacy backend
// silently treated that as success; here it is detectable.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}
