package rdm

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		value     any
		typ       Type
		wantError bool
	}{
		{name: "text ok", value: "hi", typ: TextType},
		{name: "text mismatch", value: int64(1), typ: TextType, wantError: true},
		{name: "integer ok", value: int64(1), typ: IntegerType},
		{name: "integer rejects float", value: 1.0, typ: IntegerType, wantError: true},
		{name: "float ok", value: 2.5, typ: FloatType},
		{name: "float rejects integer", value: int64(2), typ: FloatType, wantError: true},
		{name: "boolean ok", value: true, typ: BooleanType},
		{name: "timestamp ok", value: now, typ: TimestampType},
		{name: "date ok", value: DateOf(now), typ: DateType},
		{name: "time-of-day ok", value: ClockOf(now), typ: TimeOfDayType},
		{name: "path ok", value: Path("/tmp"), typ: PathType},
		{name: "path is not text", value: Path("/tmp"), typ: TextType, wantError: true},
		{name: "none ok", value: nil, typ: NoneType},
		{name: "none mismatch", value: "x", typ: NoneType, wantError: true},

		{name: "bare sequence checks kind only", value: []any{int64(1), "mixed"}, typ: SequenceType},
		{name: "sequence ok", value: []any{int64(1), int64(2)}, typ: SequenceOf(IntegerType)},
		{name: "sequence bad element", value: []any{int64(1), "x"}, typ: SequenceOf(IntegerType), wantError: true},
		{name: "sequence wrong container", value: Tuple{int64(1)}, typ: SequenceOf(IntegerType), wantError: true},
		{name: "tuple applies one type to all positions", value: Tuple{int64(1), int64(2), int64(3)}, typ: TupleOf(IntegerType)},
		{name: "tuple bad position", value: Tuple{int64(1), "x"}, typ: TupleOf(IntegerType), wantError: true},
		{name: "set ok", value: NewSet(1, 2), typ: SetOf(IntegerType)},
		{name: "set bad element", value: NewSet(1, "x"), typ: SetOf(IntegerType), wantError: true},
		{name: "mapping ok", value: map[any]any{"a": int64(1)}, typ: MappingOf(TextType, IntegerType)},
		{name: "mapping bad key", value: map[any]any{int64(1): int64(1)}, typ: MappingOf(TextType, IntegerType), wantError: true},
		{name: "mapping bad value", value: map[any]any{"a": "x"}, typ: MappingOf(TextType, IntegerType), wantError: true},
		{name: "mapping wrong container", value: []any{}, typ: MappingOf(TextType, IntegerType), wantError: true},

		{name: "union first option", value: int64(1), typ: UnionOf(IntegerType, NoneType)},
		{name: "union second option", value: nil, typ: UnionOf(IntegerType, NoneType)},
		{name: "union no match", value: "x", typ: UnionOf(IntegerType, NoneType), wantError: true},
		{name: "union inside sequence", value: []any{int64(1), "a"}, typ: SequenceOf(UnionOf(IntegerType, TextType))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.value, tt.typ)
			if tt.wantError && err == nil {
				t.Errorf("Validate(%#v, %s) succeeded, want error", tt.value, tt.typ)
			}
			if !tt.wantError && err != nil {
				t.Errorf("Validate(%#v, %s) returned error: %v", tt.value, tt.typ, err)
			}
			if tt.wantError && err != nil {
				var mismatch *TypeMismatchError
				if !errors.As(err, &mismatch) {
					t.Errorf("expected *TypeMismatchError, got %T: %v", err, err)
				}
			}
		})
	}
}

func TestValidate_UnsupportedShapes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		typ   Type
	}{
		{name: "invalid kind", value: int64(1), typ: Type{}},
		{name: "mapping with one parameter", value: map[any]any{}, typ: Type{Kind: KindMapping, Params: []Type{TextType}}},
		{name: "sequence with two parameters", value: []any{}, typ: Type{Kind: KindSequence, Params: []Type{TextType, TextType}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.value, tt.typ)
			var unsupported *UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				t.Errorf("expected *UnsupportedTypeError, got %T: %v", err, err)
			}
		})
	}
}

func TestValidate_UnionCitesWholeUnion(t *testing.T) {
	typ := UnionOf(IntegerType, NoneType)
	err := Validate("x", typ)
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *TypeMismatchError, got %T", err)
	}
	if !mismatch.Expected.Equal(typ) {
		t.Errorf("union failure must cite the whole union, cited %s", mismatch.Expected)
	}
}
