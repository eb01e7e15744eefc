package workflow

import "reflect"

// ApplyDelta applies the delta's operations to a stored field map and returns
// the same map. The map may come straight from a JSON decode, so list values
// are handled in their generic (any-typed) form. Unknown list shapes are
// replaced rather than merged; scalar sets are last-write-wins.
func ApplyDelta(fields map[string]any, delta Delta) map[string]any {
	if fields == nil {
		fields = make(map[string]any)
	}
	for _, op := range delta.Ops {
		switch op.Kind {
		case OpSet:
			fields[op.Field] = op.Value
		case OpAppendUnique:
			fields[op.Field] = appendUnique(fields[op.Field], op.Value, op.Key)
		case OpRemove:
			fields[op.Field] = removeValue(fields[op.Field], op.Value)
		case OpIncrement:
			fields[op.Field] = numeric(fields[op.Field]) + numeric(op.Value)
		}
	}
	return fields
}

// appendUnique appends value to the list unless an element with the same
// identity is already present. For object elements the identity is the
// sub-field named by key; for scalars it is the value itself.
func appendUnique(current, value any, key string) any {
	list := asList(current)
	for _, e := range list {
		if sameIdentity(e, value, key) {
			return list
		}
	}
	return append(list, toGeneric(value))
}

// removeValue removes all occurrences of value from the list.
func removeValue(current, value any) any {
	list := asList(current)
	kept := list[:0]
	for _, e := range list {
		if !reflect.DeepEqual(e, value) && !reflect.DeepEqual(e, toGeneric(value)) {
			kept = append(kept, e)
		}
	}
	return kept
}

func sameIdentity(a, b any, key string) bool {
	if key != "" {
		am, aok := asMap(a)
		bm, bok := asMap(b)
		if aok && bok {
			return am[key] == bm[key]
		}
	}
	return reflect.DeepEqual(a, toGeneric(b))
}

func asList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Offer:
		return map[string]any{
			"helper_id":      m.HelperID,
			"helper_name":    m.HelperName,
			"helper_contact": m.HelperContact,
		}, true
	case *Offer:
		return asMap(*m)
	default:
		return nil, false
	}
}

// toGeneric converts known typed values to the generic shape a JSON decode
// would produce, so stored lists stay uniform.
func toGeneric(v any) any {
	if m, ok := asMap(v); ok {
		return m
	}
	return v
}

// numeric coerces the mix of integer and float types that survive a JSON
// round trip to int64. Non-numeric values count as zero.
func numeric(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	default:
		return 0
	}
}
