package rdm

// scalarKinds is the fixed vocabulary of names usable without
// parameters. Bare container names are included: a bare container
// validates the container kind without element checks.
var scalarKinds = map[string]Kind{
	"text":            KindText,
	"integer":         KindInteger,
	"float":           KindFloat,
	"boolean":         KindBoolean,
	"timestamp":       KindTimestamp,
	"date":            KindDate,
	"time-of-day":     KindTimeOfDay,
	"filesystem-path": KindPath,
	"none":            KindNone,
	"sequence":        KindSequence,
	"set":             KindSet,
	"tuple":           KindTuple,
	"mapping":         KindMapping,
}

// ParseType parses a type expression such as "mapping[text, integer]"
// or "integer | none" into a type descriptor. The grammar is a fixed
// vocabulary of names, container parameterization with brackets, and
// union with "|"; nothing is evaluated.
func ParseType(expr string) (Type, error) {
	p := &typeParser{input: expr}
	t, err := p.parseUnion()
	if err != nil {
		return Type{}, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return Type{}, parseErrorf("unexpected %q in type expression %q", p.input[p.pos:], expr)
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) parseUnion() (Type, error) {
	first, err := p.parseTerm()
	if err != nil {
		return Type{}, err
	}
	options := []Type{first}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != '|' {
			break
		}
		p.pos++
		next, err := p.parseTerm()
		if err != nil {
			return Type{}, err
		}
		options = append(options, next)
	}
	if len(options) == 1 {
		return first, nil
	}
	return UnionOf(options...), nil
}

func (p *typeParser) parseTerm() (Type, error) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.input) && isTypeNameChar(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]
	if name == "" {
		return Type{}, parseErrorf("expected type name in %q", p.input)
	}
	kind, ok := scalarKinds[name]
	if !ok {
		return Type{}, &UnknownTypeError{Name: name}
	}

	p.skipSpaces()
	if p.pos >= len(p.input) || p.input[p.pos] != '[' {
		return Type{Kind: kind}, nil
	}
	if !kind.IsContainer() {
		return Type{}, parseErrorf("type %q does not take parameters", name)
	}
	p.pos++ // consume '['

	var params []Type
	for {
		param, err := p.parseUnion()
		if err != nil {
			return Type{}, err
		}
		params = append(params, param)
		p.skipSpaces()
		if p.pos >= len(p.input) {
			return Type{}, parseErrorf("unterminated parameter list for %q", name)
		}
		if p.input[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.input[p.pos] == ']' {
			p.pos++
			break
		}
		return Type{}, parseErrorf("unexpected %q in parameters of %q", string(p.input[p.pos]), name)
	}

	t := Type{Kind: kind, Params: params}
	if err := checkArity(t); err != nil {
		return Type{}, err
	}
	return t, nil
}

// checkArity enforces the parameter counts the format defines: a
// mapping carries key and value types, the other containers a single
// element type applied to every position.
func checkArity(t Type) error {
	switch t.Kind {
	case KindMapping:
		if len(t.Params) != 2 {
			return parseErrorf("mapping takes two parameters, got %d", len(t.Params))
		}
	case KindSequence, KindSet, KindTuple:
		if len(t.Params) != 1 {
			return parseErrorf("%s takes one parameter, got %d", t.Kind, len(t.Params))
		}
	}
	return nil
}

func isTypeNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c == '-'
}
