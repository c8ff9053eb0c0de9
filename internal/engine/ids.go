package engine

// IdentityRegistry hands out engine ids. Bodies and joints draw from the
// same counter, so no two live entities share an id.
type IdentityRegistry struct {
	next uint64
}

// Next returns the current counter value and advances it. An id is consumed
// even if the insertion that asked for it fails.
func (r *IdentityRegistry) Next() uint64 {
	id := r.next
	r.next++
	return id
}

// Peek returns the id the next call to Next will return.
func (r *IdentityRegistry) Peek() uint64 { return r.next }
