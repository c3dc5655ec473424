package rdm

import (
	"strconv"
	"strings"
	"time"
)

// SerializeFunc renders a registered scalar value as literal text.
type SerializeFunc func(value any) (string, error)

// DeserializeFunc parses literal text back into a registered scalar.
type DeserializeFunc func(text string) (any, error)

// MatchFunc reports whether a runtime value belongs to the registered
// scalar, the is-instance side of serialize dispatch.
type MatchFunc func(value any) bool

type registryEntry struct {
	kind        Kind
	match       MatchFunc
	serialize   SerializeFunc
	deserialize DeserializeFunc
}

// TypeRegistry maps scalar kinds to serializer/deserializer pairs.
// Serialize dispatches on the runtime value via the match functions in
// registration order (first match wins); Deserialize dispatches on the
// declared kind exactly. Both fall back to the literal grammar.
type TypeRegistry struct {
	entries []registryEntry
}

// NewTypeRegistry returns an empty registry. Most callers want
// DefaultRegistry instead.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{}
}

// Register adds an entry for the given scalar kind, replacing an
// existing entry in place so its position in serialize dispatch order
// is preserved.
func (r *TypeRegistry) Register(kind Kind, match MatchFunc, ser SerializeFunc, deser DeserializeFunc) {
	for i := range r.entries {
		if r.entries[i].kind == kind {
			r.entries[i] = registryEntry{kind: kind, match: match, serialize: ser, deserialize: deser}
			return
		}
	}
	r.entries = append(r.entries, registryEntry{kind: kind, match: match, serialize: ser, deserialize: deser})
}

// Serialize renders a value as literal text. The first registered
// entry whose match function accepts the value wins; unmatched values
// use the canonical literal syntax.
func (r *TypeRegistry) Serialize(value any) (string, error) {
	value = normalizeValue(value)
	for _, entry := range r.entries {
		if entry.match(value) {
			return entry.serialize(value)
		}
	}
	return emitLiteral(value, r)
}

// Deserialize parses literal text into a value of the declared type.
// A registered entry is used only when the declared kind matches it
// exactly; every other type goes through the literal grammar followed
// by a declared-type coercion pass so registered scalars round-trip
// inside containers and unions.
func (r *TypeRegistry) Deserialize(text string, typ Type) (any, error) {
	if entry, ok := r.lookup(typ.Kind); ok {
		return entry.deserialize(text)
	}
	raw, err := parseLiteral(text)
	if err != nil {
		return nil, err
	}
	return r.coerceValue(raw, typ)
}

func (r *TypeRegistry) lookup(kind Kind) (registryEntry, bool) {
	for _, entry := range r.entries {
		if entry.kind == kind {
			return entry, true
		}
	}
	return registryEntry{}, false
}

// coerceValue rebuilds a raw literal value under a declared type:
// quoted text standing for a registered scalar is run through that
// scalar's deserializer, container parameters recurse, union options
// are tried in declared order. Values that need no conversion pass
// through untouched; mismatches are left for the validator to report.
func (r *TypeRegistry) coerceValue(raw any, typ Type) (any, error) {
	switch typ.Kind {
	case KindUnion:
		for _, option := range typ.Params {
			coerced, err := r.coerceValue(raw, option)
			if err != nil {
				continue
			}
			if Validate(coerced, option) == nil {
				return coerced, nil
			}
		}
		return raw, nil
	case KindSequence:
		seq, ok := raw.([]any)
		if !ok || len(typ.Params) == 0 {
			return raw, nil
		}
		return r.coerceItems(seq, typ.Params[0])
	case KindTuple:
		tup, ok := raw.(Tuple)
		if !ok || len(typ.Params) == 0 {
			return raw, nil
		}
		items, err := r.coerceItems(tup, typ.Params[0])
		if err != nil {
			return nil, err
		}
		return Tuple(items), nil
	case KindSet:
		if m, ok := raw.(map[any]any); ok && len(m) == 0 {
			// "{}" parses as an empty mapping
			return Set{}, nil
		}
		set, ok := raw.(Set)
		if !ok || len(typ.Params) == 0 {
			return raw, nil
		}
		out := make(Set, len(set))
		for item := range set {
			coerced, err := r.coerceValue(item, typ.Params[0])
			if err != nil {
				return nil, err
			}
			if !isHashable(coerced) {
				return nil, parseErrorf("set element %v is not a scalar", coerced)
			}
			out[coerced] = struct{}{}
		}
		return out, nil
	case KindMapping:
		m, ok := raw.(map[any]any)
		if !ok || len(typ.Params) != 2 {
			return raw, nil
		}
		out := make(map[any]any, len(m))
		for key, val := range m {
			coercedKey, err := r.coerceValue(key, typ.Params[0])
			if err != nil {
				return nil, err
			}
			coercedVal, err := r.coerceValue(val, typ.Params[1])
			if err != nil {
				return nil, err
			}
			if !isHashable(coercedKey) {
				return nil, parseErrorf("mapping key %v is not a scalar", coercedKey)
			}
			out[coercedKey] = coercedVal
		}
		return out, nil
	default:
		if entry, ok := r.lookup(typ.Kind); ok {
			if text, isText := raw.(string); isText {
				return entry.deserialize(text)
			}
		}
		return raw, nil
	}
}

func (r *TypeRegistry) coerceItems(items []any, elem Type) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		coerced, err := r.coerceValue(item, elem)
		if err != nil {
			return nil, err
		}
		out[i] = coerced
	}
	return out, nil
}

// unquote strips one layer of surrounding quotes if present. Registered
// deserializers receive the raw value text, which carries quotes for
// the ISO-8601 and path forms.
func unquote(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		if c := text[0]; (c == '"' || c == '\'') && text[len(text)-1] == c {
			return text[1 : len(text)-1]
		}
	}
	return text
}

var defaultRegistry = buildDefaultRegistry()

// DefaultRegistry returns the shared registry with the built-in
// entries for timestamp, date, time-of-day and filesystem-path.
// Registering on it affects every Section and Obj that did not opt
// into its own registry.
func DefaultRegistry() *TypeRegistry {
	return defaultRegistry
}

func buildDefaultRegistry() *TypeRegistry {
	r := NewTypeRegistry()

	r.Register(KindTimestamp,
		func(v any) bool { _, ok := v.(time.Time); return ok },
		func(v any) (string, error) {
			return `"` + v.(time.Time).Format(time.RFC3339Nano) + `"`, nil
		},
		func(text string) (any, error) {
			t, err := time.Parse(time.RFC3339Nano, unquote(text))
			if err != nil {
				return nil, parseErrorf("invalid timestamp %s", text)
			}
			return t, nil
		})

	r.Register(KindDate,
		func(v any) bool { _, ok := v.(Date); return ok },
		func(v any) (string, error) {
			return `"` + v.(Date).String() + `"`, nil
		},
		func(text string) (any, error) {
			d, err := ParseDate(unquote(text))
			if err != nil {
				return nil, err
			}
			return d, nil
		})

	r.Register(KindTimeOfDay,
		func(v any) bool { _, ok := v.(Clock); return ok },
		func(v any) (string, error) {
			return `"` + v.(Clock).String() + `"`, nil
		},
		func(text string) (any, error) {
			c, err := ParseClock(unquote(text))
			if err != nil {
				return nil, err
			}
			return c, nil
		})

	r.Register(KindPath,
		func(v any) bool { _, ok := v.(Path); return ok },
		func(v any) (string, error) {
			return strconv.Quote(string(v.(Path))), nil
		},
		func(text string) (any, error) {
			return Path(unquote(text)), nil
		})

	return r
}
