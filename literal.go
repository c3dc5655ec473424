package rdm

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// parseLiteral parses the canonical literal syntax into a raw value:
// quoted text, integers, floats, booleans, none, and bracketed
// sequences, tuples, sets and mappings. Braces hold a mapping when a
// ":" follows the first element, a set otherwise; an empty "{}" is an
// empty mapping (a declared set type coerces it back, see coerceValue).
func parseLiteral(text string) (any, error) {
	s := &literalScanner{input: text}
	value, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	s.skipSpaces()
	if s.pos < len(s.input) {
		return nil, parseErrorf("trailing characters %q in literal", s.input[s.pos:])
	}
	return value, nil
}

type literalScanner struct {
	input string
	pos   int
}

func (s *literalScanner) skipSpaces() {
	for s.pos < len(s.input) && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
	}
}

func (s *literalScanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *literalScanner) parseValue() (any, error) {
	s.skipSpaces()
	switch c := s.peek(); {
	case c == '"' || c == '\'':
		return s.parseString()
	case c == '[':
		items, err := s.parseItems('[', ']')
		if err != nil {
			return nil, err
		}
		return items, nil
	case c == '(':
		items, err := s.parseItems('(', ')')
		if err != nil {
			return nil, err
		}
		return Tuple(items), nil
	case c == '{':
		return s.parseBraced()
	case c == '-' || c == '+' || c >= '0' && c <= '9':
		return s.parseNumber()
	default:
		return s.parseWord()
	}
}

func (s *literalScanner) parseString() (string, error) {
	quote := s.input[s.pos]
	s.pos++
	var b strings.Builder
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		switch c {
		case quote:
			s.pos++
			return b.String(), nil
		case '\\':
			s.pos++
			if s.pos >= len(s.input) {
				return "", parseErrorf("unterminated escape in string literal")
			}
			switch esc := s.input[s.pos]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"', '#':
				b.WriteByte(esc)
			default:
				return "", parseErrorf("unsupported escape %q in string literal", string(esc))
			}
			s.pos++
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return "", parseErrorf("unterminated string literal")
}

func (s *literalScanner) parseItems(open, close byte) ([]any, error) {
	s.pos++ // consume open
	var items []any
	for {
		s.skipSpaces()
		if s.peek() == close {
			s.pos++
			return items, nil
		}
		if s.pos >= len(s.input) {
			return nil, parseErrorf("unterminated %q literal", string(open))
		}
		item, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		s.skipSpaces()
		switch s.peek() {
		case ',':
			s.pos++
		case close:
		default:
			return nil, parseErrorf("expected %q or comma in literal", string(close))
		}
	}
}

// parseBraced parses either a set or a mapping.
func (s *literalScanner) parseBraced() (any, error) {
	s.pos++ // consume '{'
	s.skipSpaces()
	if s.peek() == '}' {
		s.pos++
		return map[any]any{}, nil
	}

	first, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	s.skipSpaces()

	if s.peek() == ':' {
		mapping := map[any]any{}
		for {
			s.pos++ // consume ':'
			value, err := s.parseValue()
			if err != nil {
				return nil, err
			}
			if !isHashable(first) {
				return nil, parseErrorf("mapping key %v is not a scalar", first)
			}
			mapping[first] = value
			s.skipSpaces()
			switch s.peek() {
			case ',':
				s.pos++
				s.skipSpaces()
			case '}':
				s.pos++
				return mapping, nil
			default:
				return nil, parseErrorf("expected comma or } in mapping literal")
			}
			if s.peek() == '}' { // trailing comma
				s.pos++
				return mapping, nil
			}
			first, err = s.parseValue()
			if err != nil {
				return nil, err
			}
			s.skipSpaces()
			if s.peek() != ':' {
				return nil, parseErrorf("expected : after mapping key")
			}
		}
	}

	if !isHashable(first) {
		return nil, parseErrorf("set element %v is not a scalar", first)
	}
	set := Set{first: struct{}{}}
	for {
		switch s.peek() {
		case ',':
			s.pos++
			s.skipSpaces()
			if s.peek() == '}' {
				s.pos++
				return set, nil
			}
			item, err := s.parseValue()
			if err != nil {
				return nil, err
			}
			if !isHashable(item) {
				return nil, parseErrorf("set element %v is not a scalar", item)
			}
			set[item] = struct{}{}
			s.skipSpaces()
		case '}':
			s.pos++
			return set, nil
		default:
			return nil, parseErrorf("expected comma or } in set literal")
		}
	}
}

func (s *literalScanner) parseNumber() (any, error) {
	start := s.pos
	if c := s.peek(); c == '-' || c == '+' {
		s.pos++
	}
	isFloat := false
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c >= '0' && c <= '9' {
			s.pos++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
			s.pos++
			continue
		}
		if (c == '-' || c == '+') && isFloat {
			// exponent sign
			prev := s.input[s.pos-1]
			if prev == 'e' || prev == 'E' {
				s.pos++
				continue
			}
		}
		break
	}
	text := s.input[start:s.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, parseErrorf("invalid float literal %q", text)
		}
		return f, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, parseErrorf("invalid integer literal %q", text)
	}
	return i, nil
}

func (s *literalScanner) parseWord() (any, error) {
	start := s.pos
	for s.pos < len(s.input) && isWordChar(s.input[s.pos]) {
		s.pos++
	}
	word := s.input[start:s.pos]
	switch word {
	case "true", "True":
		return true, nil
	case "false", "False":
		return false, nil
	case "none", "None", "null":
		return nil, nil
	case "":
		return nil, parseErrorf("empty value expression")
	default:
		return nil, parseErrorf("invalid literal %q", word)
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// emitLiteral renders a raw value in the canonical literal syntax.
// Container elements go back through the registry so registered
// scalars (timestamps, paths, ...) nest correctly. Set elements and
// mapping entries are emitted in sorted order so output is stable.
func emitLiteral(value any, reg *TypeRegistry) (string, error) {
	switch v := value.(type) {
	case nil:
		return "none", nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return formatFloat(v), nil
	case string:
		return strconv.Quote(v), nil
	case []any:
		parts, err := emitParts(v, reg)
		if err != nil {
			return "", err
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case Tuple:
		parts, err := emitParts(v, reg)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(parts, ", ") + ")", nil
	case Set:
		if len(v) == 0 {
			return "{}", nil
		}
		parts, err := emitParts(v.Items(), reg)
		if err != nil {
			return "", err
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}", nil
	case map[any]any:
		parts := make([]string, 0, len(v))
		for key, val := range v {
			keyText, err := reg.Serialize(key)
			if err != nil {
				return "", err
			}
			valText, err := reg.Serialize(val)
			if err != nil {
				return "", err
			}
			parts = append(parts, keyText+": "+valText)
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}", nil
	default:
		return "", fmt.Errorf("rdm: cannot serialize value of type %T", value)
	}
}

// isHashable reports whether a value can be a mapping key or set
// element. Every scalar of the model qualifies, including time.Time,
// which is comparable.
func isHashable(v any) bool {
	switch v.(type) {
	case nil, bool, int64, float64, string, time.Time, Date, Clock, Path:
		return true
	default:
		return false
	}
}

func emitParts(items []any, reg *TypeRegistry) ([]string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		text, err := reg.Serialize(item)
		if err != nil {
			return nil, err
		}
		parts[i] = text
	}
	return parts, nil
}

// formatFloat keeps a decimal point so a float value never reads back
// as an integer.
func formatFloat(f float64) string {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}
