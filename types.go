package rdm

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

// Kind identifies a scalar, container or union type.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Scalar kinds.
	KindText
	KindInteger
	KindFloat
	KindBoolean
	KindTimestamp
	KindDate
	KindTimeOfDay
	KindPath
	KindNone

	// Container kinds.
	KindSequence
	KindSet
	KindTuple
	KindMapping

	KindUnion
)

// String returns the kind's name as it appears in type expressions.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	case KindDate:
		return "date"
	case KindTimeOfDay:
		return "time-of-day"
	case KindPath:
		return "filesystem-path"
	case KindNone:
		return "none"
	case KindSequence:
		return "sequence"
	case KindSet:
		return "set"
	case KindTuple:
		return "tuple"
	case KindMapping:
		return "mapping"
	case KindUnion:
		return "union"
	default:
		return "invalid"
	}
}

// IsScalar reports whether k is a scalar kind.
func (k Kind) IsScalar() bool {
	return k >= KindText && k <= KindNone
}

// IsContainer reports whether k is a container kind.
func (k Kind) IsContainer() bool {
	return k >= KindSequence && k <= KindMapping
}

// Type is a declared type descriptor: a scalar, a container
// parameterized over nested types, or a union of alternatives.
// The zero value is invalid.
type Type struct {
	Kind   Kind
	Params []Type // container parameters or union options
}

// Scalar type descriptors and bare (unparameterized) container
// descriptors. A bare container validates the container kind only.
var (
	TextType      = Type{Kind: KindText}
	IntegerType   = Type{Kind: KindInteger}
	FloatType     = Type{Kind: KindFloat}
	BooleanType   = Type{Kind: KindBoolean}
	TimestampType = Type{Kind: KindTimestamp}
	DateType      = Type{Kind: KindDate}
	TimeOfDayType = Type{Kind: KindTimeOfDay}
	PathType      = Type{Kind: KindPath}
	NoneType      = Type{Kind: KindNone}
	SequenceType  = Type{Kind: KindSequence}
	SetType       = Type{Kind: KindSet}
	TupleType     = Type{Kind: KindTuple}
	MappingType   = Type{Kind: KindMapping}
)

// SequenceOf returns a sequence type with the given element type.
func SequenceOf(elem Type) Type {
	return Type{Kind: KindSequence, Params: []Type{elem}}
}

// SetOf returns a set type with the given element type.
func SetOf(elem Type) Type {
	return Type{Kind: KindSet, Params: []Type{elem}}
}

// TupleOf returns a tuple type whose single element type applies to
// every position.
func TupleOf(elem Type) Type {
	return Type{Kind: KindTuple, Params: []Type{elem}}
}

// MappingOf returns a mapping type with the given key and value types.
func MappingOf(key, value Type) Type {
	return Type{Kind: KindMapping, Params: []Type{key, value}}
}

// UnionOf returns a union over the given options, tried in order.
func UnionOf(options ...Type) Type {
	return Type{Kind: KindUnion, Params: options}
}

// Equal reports whether two type descriptors are structurally equal.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || len(t.Params) != len(other.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(other.Params[i]) {
			return false
		}
	}
	return true
}

// String returns the canonical type-expression form, e.g.
// "mapping[text, integer]" or "integer | none".
func (t Type) String() string {
	switch {
	case t.Kind == KindUnion:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return strings.Join(parts, " | ")
	case len(t.Params) == 0:
		return t.Kind.String()
	default:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return t.Kind.String() + "[" + strings.Join(parts, ", ") + "]"
	}
}

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the date part of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO-8601 date such as "2024-01-15".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, parseErrorf("invalid date %q", s)
	}
	return DateOf(t), nil
}

// String formats the date as ISO-8601.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Clock is a time of day without a date component.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ClockOf extracts the time-of-day part of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseClock parses an ISO-8601 time of day such as "10:30:00".
// The seconds component may be omitted.
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return Clock{}, parseErrorf("invalid time-of-day %q", s)
}

// String formats the time of day as ISO-8601.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Path is a filesystem path value. It is a distinct type so the
// registry and validator can tell it apart from plain text.
type Path string

// Join appends segments to the path using the OS separator.
func (p Path) Join(segments ...string) Path {
	parts := append([]string{string(p)}, segments...)
	return Path(filepath.Join(parts...))
}

// String returns the path text.
func (p Path) String() string { return string(p) }

// Set is an unordered collection of unique comparable values.
type Set map[any]struct{}

// NewSet builds a set from the given items. Numeric items are
// normalized the same way Section.Set normalizes them. Values that
// cannot be set elements (sequences, tuples, mappings, other sets)
// are skipped; use Add when the rejection should surface as an error.
func NewSet(items ...any) Set {
	s := make(Set, len(items))
	for _, item := range items {
		item = normalizeValue(item)
		if !isHashable(item) {
			continue
		}
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether item is in the set. Values that cannot be set
// elements are never present.
func (s Set) Has(item any) bool {
	item = normalizeValue(item)
	if !isHashable(item) {
		return false
	}
	_, ok := s[item]
	return ok
}

// Add inserts item into the set. It returns an error for values that
// cannot be set elements.
func (s Set) Add(item any) error {
	item = normalizeValue(item)
	if !isHashable(item) {
		return fmt.Errorf("rdm: value of type %T cannot be a set element", item)
	}
	s[item] = struct{}{}
	return nil
}

// Items returns the elements in unspecified order.
func (s Set) Items() []any {
	items := make([]any, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	return items
}

// Tuple is a fixed group of values, distinct from a sequence at
// runtime so container kinds can be told apart.
type Tuple []any

// normalizeValue widens numeric inputs to the canonical scalar
// representations (int64, float64) and recurses into containers, so
// values compare and validate consistently regardless of how the
// caller spelled them.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	case Tuple:
		out := make(Tuple, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	case Set:
		out := make(Set, len(v))
		for item := range v {
			out[normalizeValue(item)] = struct{}{}
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(v))
		for key, val := range v {
			out[normalizeValue(key)] = normalizeValue(val)
		}
		return out
	default:
		return value
	}
}

// deepCopyValue copies mutable container values so stored entries are
// never aliased to caller-held values. Scalars are returned as-is.
func deepCopyValue(value any) any {
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopyValue(item)
		}
		return out
	case Tuple:
		out := make(Tuple, len(v))
		for i, item := range v {
			out[i] = deepCopyValue(item)
		}
		return out
	case Set:
		out := make(Set, len(v))
		for item := range v {
			out[item] = struct{}{}
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(v))
		for key, val := range v {
			out[key] = deepCopyValue(val)
		}
		return out
	default:
		return value
	}
}

// valueEqual compares two stored values structurally. time.Time values
// are compared with Equal so location differences after a reload do
// not break round-trip equality.
func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Set:
		bv, ok := b.(Set)
		if !ok || len(av) != len(bv) {
			return false
		}
		for item := range av {
			if _, present := bv[item]; !present {
				return false
			}
		}
		return true
	case map[any]any:
		bv, ok := b.(map[any]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for key, val := range av {
			other, present := bv[key]
			if !present || !valueEqual(val, other) {
				return false
			}
		}
		return true
	default:
		if a == nil || b == nil {
			return a == b
		}
		ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
		if ta != tb {
			return false
		}
		if !ta.Comparable() {
			// Values outside the model can end up stored under a bare
			// container type; fall back to a structural comparison
			// rather than a panicking ==.
			return reflect.DeepEqual(a, b)
		}
		return a == b
	}
}
