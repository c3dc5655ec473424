package rdm

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d != (Date{Year: 2024, Month: time.January, Day: 15}) {
		t.Errorf("ParseDate gave %+v", d)
	}
	if d.String() != "2024-01-15" {
		t.Errorf("Date.String() = %q", d.String())
	}
	if _, err := ParseDate("15.01.2024"); err == nil {
		t.Error("ParseDate accepted a non-ISO date")
	}
}

func TestClock(t *testing.T) {
	c, err := ParseClock("10:30:05")
	if err != nil {
		t.Fatalf("ParseClock returned error: %v", err)
	}
	if c != (Clock{Hour: 10, Minute: 30, Second: 5}) {
		t.Errorf("ParseClock gave %+v", c)
	}
	if c.String() != "10:30:05" {
		t.Errorf("Clock.String() = %q", c.String())
	}

	// Seconds may be omitted.
	c, err = ParseClock("10:30")
	if err != nil {
		t.Fatalf("ParseClock returned error: %v", err)
	}
	if c.Second != 0 {
		t.Errorf("ParseClock(\"10:30\").Second = %d", c.Second)
	}

	if _, err := ParseClock("25:00:00"); err == nil {
		t.Error("ParseClock accepted an invalid hour")
	}
}

func TestPathJoin(t *testing.T) {
	p := Path("/var").Join("lib", "app")
	if p != Path("/var/lib/app") {
		t.Errorf("Join gave %q", p)
	}
}

func TestSetHelpers(t *testing.T) {
	s := NewSet(1, 2)
	if !s.Has(1) || !s.Has(int64(2)) {
		t.Error("Has must match regardless of integer width")
	}
	if s.Has(3) {
		t.Error("Has reported an absent element")
	}
	if err := s.Add(3); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(s.Items()) != 3 {
		t.Errorf("expected 3 items, got %d", len(s.Items()))
	}
}

func TestSetRejectsNonScalarElements(t *testing.T) {
	s := NewSet(Tuple{int64(1)}, []any{int64(2)}, 3)
	if len(s.Items()) != 1 || !s.Has(3) {
		t.Errorf("NewSet must keep only usable elements, got %v", s.Items())
	}
	if err := s.Add(Tuple{int64(1)}); err == nil {
		t.Error("Add accepted a tuple")
	}
	if err := s.Add(map[any]any{}); err == nil {
		t.Error("Add accepted a mapping")
	}
	if s.Has([]any{int64(2)}) {
		t.Error("Has reported a value that can never be an element")
	}
}

func TestValueEqualOutOfModelValues(t *testing.T) {
	a := []any{map[string]any{"x": 1}}
	b := []any{map[string]any{"x": 1}}
	if !valueEqual(a, b) {
		t.Error("structurally equal values compared unequal")
	}
	if valueEqual(a, []any{map[string]any{"x": 2}}) {
		t.Error("differing values compared equal")
	}
}

func TestNormalizeValue(t *testing.T) {
	got := normalizeValue(map[any]any{"a": []any{1, float32(2.5)}, 3: uint8(4)})
	want := map[any]any{"a": []any{int64(1), 2.5}, int64(3): int64(4)}
	if !valueEqual(got, want) {
		t.Errorf("normalizeValue gave %#v", got)
	}
}

func TestDeepCopyValue(t *testing.T) {
	original := map[any]any{"list": []any{int64(1)}, "set": NewSet(1)}
	copied := deepCopyValue(original).(map[any]any)

	copied["list"].([]any)[0] = int64(99)
	copied["set"].(Set).Add(2)

	if original["list"].([]any)[0] != int64(1) {
		t.Error("nested sequence was aliased")
	}
	if original["set"].(Set).Has(2) {
		t.Error("nested set was aliased")
	}
}
