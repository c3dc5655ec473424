package rdm

import (
	"time"
)

// Validate checks a value against a type descriptor. It recurses into
// container parameters and stops at the first failure, returning a
// *TypeMismatchError naming the offending value and the expected type.
// Descriptor shapes outside the supported vocabulary return a
// *UnsupportedTypeError. Union options are tried in declared order and
// the first success short-circuits.
func Validate(value any, typ Type) error {
	switch typ.Kind {
	case KindUnion:
		for _, option := range typ.Params {
			if Validate(value, option) == nil {
				return nil
			}
		}
		return &TypeMismatchError{Value: value, Expected: typ}

	case KindText:
		if _, ok := value.(string); ok {
			return nil
		}
	case KindInteger:
		if _, ok := value.(int64); ok {
			return nil
		}
	case KindFloat:
		if _, ok := value.(float64); ok {
			return nil
		}
	case KindBoolean:
		if _, ok := value.(bool); ok {
			return nil
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); ok {
			return nil
		}
	case KindDate:
		if _, ok := value.(Date); ok {
			return nil
		}
	case KindTimeOfDay:
		if _, ok := value.(Clock); ok {
			return nil
		}
	case KindPath:
		if _, ok := value.(Path); ok {
			return nil
		}
	case KindNone:
		if value == nil {
			return nil
		}

	case KindSequence:
		seq, ok := value.([]any)
		if !ok {
			return &TypeMismatchError{Value: value, Expected: typ}
		}
		return validateElements(seq, typ)
	case KindTuple:
		tup, ok := value.(Tuple)
		if !ok {
			return &TypeMismatchError{Value: value, Expected: typ}
		}
		return validateElements(tup, typ)
	case KindSet:
		set, ok := value.(Set)
		if !ok {
			return &TypeMismatchError{Value: value, Expected: typ}
		}
		return validateElements(set.Items(), typ)
	case KindMapping:
		m, ok := value.(map[any]any)
		if !ok {
			return &TypeMismatchError{Value: value, Expected: typ}
		}
		if len(typ.Params) == 0 {
			return nil
		}
		if len(typ.Params) != 2 {
			return &UnsupportedTypeError{Type: typ}
		}
		for key, val := range m {
			if err := Validate(key, typ.Params[0]); err != nil {
				return err
			}
			if err := Validate(val, typ.Params[1]); err != nil {
				return err
			}
		}
		return nil

	default:
		return &UnsupportedTypeError{Type: typ}
	}
	return &TypeMismatchError{Value: value, Expected: typ}
}

// validateElements checks every element of a sequence, tuple or set
// against the single declared element type. A bare container type
// checks the container kind only.
func validateElements(items []any, typ Type) error {
	if len(typ.Params) == 0 {
		return nil
	}
	if len(typ.Params) != 1 {
		return &UnsupportedTypeError{Type: typ}
	}
	for _, item := range items {
		if err := Validate(item, typ.Params[0]); err != nil {
			return err
		}
	}
	return nil
}
