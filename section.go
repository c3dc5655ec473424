package rdm

import (
	"fmt"
	"strings"
	"time"
)

// Section is a named, insertion-ordered store of typed entries. Every
// write validates the value against the entry's declared type, and a
// failed operation leaves the entry unchanged. Mutable container
// values are deep-copied on the way in; Get returns the stored value
// without copying.
type Section struct {
	name    string
	keys    []string
	entries map[string]*entry
	reg     *TypeRegistry
}

type entry struct {
	typ   Type
	value any
}

// NewSection creates an empty section using the default registry.
func NewSection(name string) *Section {
	return newSection(name, DefaultRegistry())
}

func newSection(name string, reg *TypeRegistry) *Section {
	return &Section{
		name:    name,
		entries: make(map[string]*entry),
		reg:     reg,
	}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// Len returns the number of entries.
func (s *Section) Len() int { return len(s.keys) }

// Keys returns the entry keys in insertion order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// SetOption configures Set behavior.
type SetOption func(*setConfig)

type setConfig struct {
	noOverwrite bool
}

// NoOverwrite makes Set fail with ErrDuplicateKey when the key already
// exists instead of replacing the entry.
func NoOverwrite() SetOption {
	return func(cfg *setConfig) {
		cfg.noOverwrite = true
	}
}

// Set validates value against typ and stores it under key. An existing
// entry is replaced in place, keeping its insertion position; a new
// key is appended. Mutable container values are deep-copied first so
// later caller-side mutation cannot reach the stored entry.
func (s *Section) Set(key string, typ Type, value any, opts ...SetOption) error {
	var cfg setConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, exists := s.entries[key]; exists && cfg.noOverwrite {
		return fmt.Errorf("%w: %q in section %q", ErrDuplicateKey, key, s.name)
	}

	value = deepCopyValue(normalizeValue(value))
	if err := Validate(value, typ); err != nil {
		return err
	}

	if _, exists := s.entries[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = &entry{typ: typ, value: value}
	return nil
}

// Get returns the stored value for key, or ErrKeyNotFound. The value
// is not copied.
func (s *Section) Get(key string) (any, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q in section %q", ErrKeyNotFound, key, s.name)
	}
	return e.value, nil
}

// GetDefault returns the stored value for key, or a deep copy of def
// when the key is absent.
func (s *Section) GetDefault(key string, def any) any {
	if e, ok := s.entries[key]; ok {
		return e.value
	}
	return deepCopyValue(normalizeValue(def))
}

// TypeOf returns the declared type of key's entry.
func (s *Section) TypeOf(key string) (Type, error) {
	e, ok := s.entries[key]
	if !ok {
		return Type{}, fmt.Errorf("%w: %q in section %q", ErrKeyNotFound, key, s.name)
	}
	return e.typ, nil
}

// Delete removes key's entry. Deleting an absent key is a no-op.
func (s *Section) Delete(key string) {
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Add adds delta to the entry's value. Integer entries take an integer
// delta, float entries an integer or float delta, and timestamp
// entries interpret delta as a count of seconds. A negative delta
// subtracts. Other declared types fail with ErrUnsupportedOperation.
func (s *Section) Add(key string, delta any) error {
	e, ok := s.entries[key]
	if !ok {
		return fmt.Errorf("%w: %q in section %q", ErrKeyNotFound, key, s.name)
	}
	delta = normalizeValue(delta)

	switch e.typ.Kind {
	case KindInteger:
		d, ok := delta.(int64)
		if !ok {
			return &TypeMismatchError{Value: delta, Expected: IntegerType}
		}
		e.value = e.value.(int64) + d
	case KindFloat:
		d, err := asFloat(delta)
		if err != nil {
			return err
		}
		e.value = e.value.(float64) + d
	case KindTimestamp:
		seconds, err := asFloat(delta)
		if err != nil {
			return err
		}
		e.value = e.value.(time.Time).Add(time.Duration(seconds * float64(time.Second)))
	default:
		return fmt.Errorf("%w: cannot add to %s entry %q", ErrUnsupportedOperation, e.typ, key)
	}
	return nil
}

// Multiply multiplies the entry's value by factor. Only integer and
// float entries support it; a fractional factor on a float entry
// effects division. An integer entry requires an integer factor so the
// result keeps its declared type.
func (s *Section) Multiply(key string, factor any) error {
	e, ok := s.entries[key]
	if !ok {
		return fmt.Errorf("%w: %q in section %q", ErrKeyNotFound, key, s.name)
	}
	factor = normalizeValue(factor)

	switch e.typ.Kind {
	case KindInteger:
		f, ok := factor.(int64)
		if !ok {
			return &TypeMismatchError{Value: factor, Expected: IntegerType}
		}
		e.value = e.value.(int64) * f
	case KindFloat:
		f, err := asFloat(factor)
		if err != nil {
			return err
		}
		e.value = e.value.(float64) * f
	default:
		return fmt.Errorf("%w: cannot multiply %s entry %q", ErrUnsupportedOperation, e.typ, key)
	}
	return nil
}

// Extend grows the entry's value. Dispatch is on the declared type of
// the entry, not on the incoming value:
//
//   - text: value must be text, result is concatenation
//   - sequence: a sequence value concatenates, anything else appends
//     as a single element
//   - set: a set value unions, anything else is added as an element
//   - mapping: value must be a mapping, merged with value's entries
//     winning on collision
//   - filesystem-path: value must be text or a path, joined as a new
//     segment
//
// The candidate result is validated against the declared type before
// it is stored, so a mismatched extension fails without mutating the
// entry.
func (s *Section) Extend(key string, value any) error {
	e, ok := s.entries[key]
	if !ok {
		return fmt.Errorf("%w: %q in section %q", ErrKeyNotFound, key, s.name)
	}
	value = deepCopyValue(normalizeValue(value))

	var result any
	switch e.typ.Kind {
	case KindText:
		text, ok := value.(string)
		if !ok {
			return &TypeMismatchError{Value: value, Expected: TextType}
		}
		result = e.value.(string) + text

	case KindSequence:
		current := e.value.([]any)
		grown := make([]any, 0, len(current)+1)
		grown = append(grown, current...)
		if seq, isSeq := value.([]any); isSeq {
			grown = append(grown, seq...)
		} else {
			grown = append(grown, value)
		}
		result = grown

	case KindSet:
		current := e.value.(Set)
		grown := make(Set, len(current)+1)
		for item := range current {
			grown[item] = struct{}{}
		}
		if set, isSet := value.(Set); isSet {
			for item := range set {
				grown[item] = struct{}{}
			}
		} else {
			if !isHashable(value) {
				return &TypeMismatchError{Value: value, Expected: e.typ}
			}
			grown[value] = struct{}{}
		}
		result = grown

	case KindMapping:
		incoming, ok := value.(map[any]any)
		if !ok {
			return &TypeMismatchError{Value: value, Expected: e.typ}
		}
		current := e.value.(map[any]any)
		grown := make(map[any]any, len(current)+len(incoming))
		for k, v := range current {
			grown[k] = v
		}
		for k, v := range incoming {
			grown[k] = v
		}
		result = grown

	case KindPath:
		var segment string
		switch v := value.(type) {
		case string:
			segment = v
		case Path:
			segment = string(v)
		default:
			return &TypeMismatchError{Value: value, Expected: PathType}
		}
		result = e.value.(Path).Join(segment)

	default:
		return fmt.Errorf("%w: cannot extend %s entry %q", ErrUnsupportedOperation, e.typ, key)
	}

	if err := Validate(result, e.typ); err != nil {
		return err
	}
	e.value = result
	return nil
}

// Serialize renders the section as text lines: the [name] header, then
// one line per entry in insertion order. Keys and type expressions are
// left-padded to the widest in the section; the alignment is cosmetic
// and the parser does not require it.
func (s *Section) Serialize() ([]string, error) {
	lines := []string{"[" + s.name + "]"}

	maxKey, maxType := 0, 0
	typeTexts := make(map[string]string, len(s.keys))
	for _, key := range s.keys {
		typeText := s.entries[key].typ.String()
		typeTexts[key] = typeText
		if len(key) > maxKey {
			maxKey = len(key)
		}
		if len(typeText) > maxType {
			maxType = len(typeText)
		}
	}

	for _, key := range s.keys {
		valueText, err := s.reg.Serialize(s.entries[key].value)
		if err != nil {
			return nil, fmt.Errorf("serialize %q in section %q: %w", key, s.name, err)
		}
		lines = append(lines, fmt.Sprintf("%-*s : %-*s = %s", maxKey, key, maxType, typeTexts[key], valueText))
	}
	return lines, nil
}

// SectionFromLines parses one section's body lines, the inverse of
// Serialize. Comments and blank lines are skipped; each remaining line
// must have the key : type = value form.
func SectionFromLines(name string, lines []string) (*Section, error) {
	return sectionFromLines(name, lines, DefaultRegistry(), 0)
}

// sectionFromLines parses body lines. firstLine is the 1-based file
// line number of lines[0], or 0 when the origin is not a file.
func sectionFromLines(name string, lines []string, reg *TypeRegistry, firstLine int) (*Section, error) {
	s := newSection(name, reg)
	for i, raw := range lines {
		lineNo := 0
		if firstLine > 0 {
			lineNo = firstLine + i
		}
		if err := s.parseLine(raw, lineNo); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// parseLine parses a single entry line into the section.
func (s *Section) parseLine(raw string, lineNo int) error {
	line := strings.TrimSpace(stripComment(raw))
	if line == "" {
		return nil
	}

	// Split on the first "=", then on the first ":" left of it.
	eq := strings.Index(line, "=")
	if eq < 0 {
		return &ParseError{Message: fmt.Sprintf("missing %q in entry line %q", "=", line), Line: lineNo}
	}
	left, valueText := line[:eq], strings.TrimSpace(line[eq+1:])
	colon := strings.Index(left, ":")
	if colon < 0 {
		return &ParseError{Message: fmt.Sprintf("missing %q in entry line %q", ":", line), Line: lineNo}
	}
	key := strings.TrimSpace(left[:colon])
	typeText := strings.TrimSpace(left[colon+1:])
	if key == "" {
		return &ParseError{Message: fmt.Sprintf("empty key in entry line %q", line), Line: lineNo}
	}

	typ, err := ParseType(typeText)
	if err != nil {
		return lineError(err, lineNo)
	}
	value, err := s.reg.Deserialize(valueText, typ)
	if err != nil {
		return lineError(err, lineNo)
	}
	if err := s.Set(key, typ, value); err != nil {
		return err
	}
	return nil
}

// stripComment cuts the line at the first "#" that is outside a quoted
// string.
func stripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return line[:i]
		}
	}
	return line
}

// lineError attaches a file line number to parse errors that lack one.
func lineError(err error, lineNo int) error {
	if lineNo == 0 {
		return err
	}
	if pe, ok := err.(*ParseError); ok && pe.Line == 0 {
		return &ParseError{Message: pe.Message, Line: lineNo}
	}
	return err
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	out := newSection(s.name, s.reg)
	out.keys = make([]string, len(s.keys))
	copy(out.keys, s.keys)
	for key, e := range s.entries {
		out.entries[key] = &entry{typ: e.typ, value: deepCopyValue(e.value)}
	}
	return out
}

// Equal reports whether two sections hold the same entries with the
// same declared types, in the same order.
func (s *Section) Equal(other *Section) bool {
	if s.name != other.name || len(s.keys) != len(other.keys) {
		return false
	}
	for i, key := range s.keys {
		if other.keys[i] != key {
			return false
		}
		a, b := s.entries[key], other.entries[key]
		if !a.typ.Equal(b.typ) || !valueEqual(a.value, b.value) {
			return false
		}
	}
	return true
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, &TypeMismatchError{Value: v, Expected: UnionOf(IntegerType, FloatType)}
	}
}
