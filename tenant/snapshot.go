package tenant

// Snapshot is an immutable copy of one scope entry, safe to hand across
// goroutine boundaries. It carries no reference back to the scope it was
// taken from; applying it in another scope is equivalent to calling Set
// there directly.
//
// A snapshot is plain structured data: the JSON tags exist so callers can
// embed one in a serialized job payload (the queue package does exactly
// that). The zero Snapshot means "no entry" and applies as a no-op.
type Snapshot struct {
	Key   Key `json:"key"`
	Value any `json:"value"`
}

// IsZero reports whether the snapshot represents "no entry".
func (s Snapshot) IsZero() bool {
	return s.Key == "" && s.Value == nil
}

// Cloner lets structured tenant values control how they are copied across
// scope boundaries. A value implementing Cloner is cloned when a snapshot is
// taken and again when it is applied, so mutation in one goroutine can never
// leak into another.
//
// Values that do not implement Cloner are copied by plain assignment: the
// snapshot treats them as opaque blobs and never traverses their structure,
// so cyclic values are safe (they simply keep sharing their referenced parts).
type Cloner interface {
	Clone() any
}

func cloneValue(v any) any {
	if c, ok := v.(Cloner); ok {
		return c.Clone()
	}
	return v
}
