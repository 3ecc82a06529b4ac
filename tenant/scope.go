package tenant

// Key names one entry in a request scope. Using a dedicated type keeps
// application keys from colliding with plain strings elsewhere.
type Key string

// DefaultKey is the entry used by the middleware and context helpers unless a
// different key is configured.
const DefaultKey Key = "tenant"

// Scope is the per-request store for resolved tenant values. The middleware
// allocates one scope per request and carries it in the request context; the
// scope is exclusively owned by that request's goroutine, so no locking is
// needed or performed. Hand a value to another goroutine via Snapshot, never
// by sharing the scope itself.
//
// Presence is tracked by map membership, so a stored empty string or zero is
// still distinguishable from "no entry".
type Scope struct {
	values map[Key]any
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{values: make(map[Key]any)}
}

// Set stores a value under key, overwriting any previous entry. The value is
// opaque to the scope: no validation, no inspection.
func (s *Scope) Set(key Key, value any) {
	s.values[key] = value
}

// Get returns the value stored under key. The second return value reports
// presence, distinct from any stored value including nil.
func (s *Scope) Get(key Key) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether an entry exists under key.
func (s *Scope) Has(key Key) bool {
	_, ok := s.values[key]
	return ok
}

// Clear removes the entry under key. Clearing an absent key is a no-op.
func (s *Scope) Clear(key Key) {
	delete(s.values, key)
}

// Reset removes all entries.
func (s *Scope) Reset() {
	clear(s.values)
}

// Keys returns the keys of all current entries.
func (s *Scope) Keys() []Key {
	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// Snapshot captures the entry under key as an immutable, transferable value.
// The second return value is false when no entry exists.
func (s *Scope) Snapshot(key Key) (Snapshot, bool) {
	v, ok := s.values[key]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{Key: key, Value: cloneValue(v)}, true
}

// Apply writes the snapshot's value under its key into this scope, equivalent
// to calling Set directly. Applying an absent (zero) snapshot is a no-op
// success; a snapshot carrying a value without a key is structurally
// malformed and yields ErrInvalidSnapshot.
func (s *Scope) Apply(snap Snapshot) error {
	if snap.IsZero() {
		return nil
	}
	if snap.Key == "" {
		return ErrInvalidSnapshot
	}
	s.values[snap.Key] = cloneValue(snap.Value)
	return nil
}
