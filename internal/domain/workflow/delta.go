package workflow

// OpKind names a field-delta operation the store adapter can apply.
// The vocabulary is deliberately small: it is the set of per-field update
// primitives a transactionless document store offers.
type OpKind string

const (
	// OpSet overwrites a scalar field (last write wins).
	OpSet OpKind = "set"
	// OpAppendUnique appends a value to a list field unless an element with
	// the same identity is already present. For object lists the identity is
	// the sub-field named by Op.Key; for scalar lists it is the value itself.
	OpAppendUnique OpKind = "append_unique"
	// OpRemove removes all occurrences of a value from a list field.
	OpRemove OpKind = "remove"
	// OpIncrement adds Value (a number) to a numeric field.
	OpIncrement OpKind = "increment"
)

// Op is a single field-level update.
type Op struct {
	Kind  OpKind
	Field string
	Value any
	Key   string
}

// Delta is an ordered list of field updates applied to one document in a
// single store call. There is no cross-document delta: every multi-document
// effect is a separate, best-effort follow-up.
type Delta struct {
	Ops []Op
}

// IsZero reports whether the delta carries no operations.
func (d Delta) IsZero() bool {
	return len(d.Ops) == 0
}

// Set stages a scalar overwrite.
func (d Delta) Set(field string, value any) Delta {
	d.Ops = append(d.Ops, Op{Kind: OpSet, Field: field, Value: value})
	return d
}

// AppendUnique stages a keyed append-if-absent on a list field.
func (d Delta) AppendUnique(field, key string, value any) Delta {
	d.Ops = append(d.Ops, Op{Kind: OpAppendUnique, Field: field, Key: key, Value: value})
	return d
}

// Remove stages removal of a value from a list field.
func (d Delta) Remove(field string, value any) Delta {
	d.Ops = append(d.Ops, Op{Kind: OpRemove, Field: field, Value: value})
	return d
}

// Increment stages a numeric increment.
func (d Delta) Increment(field string, by int64) Delta {
	d.Ops = append(d.Ops, Op{Kind: OpIncrement, Field: field, Value: by})
	return d
}
