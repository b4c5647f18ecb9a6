package spec

import "testing"

func TestNewColumnSpec_Contract(t *testing.T) {
	if _, err := NewColumnSpec(AlignLeft, Preferred(), -0.5); err == nil {
		t.Error("negative resize weight should fail at construction")
	}
	if _, err := NewColumnSpec(AlignTop, Preferred(), 0); err == nil {
		t.Error("vertical alignment on a column should fail")
	}
	sp, err := NewColumnSpec(AlignDefault, Preferred(), 0)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if sp.Align != AlignFill {
		t.Errorf("default alignment should resolve to fill for columns, got %s", sp.Align)
	}
}

// Round-trip: decode(encode(spec)) preserves alignment, size, and weight.
func TestSpec_EncodeRoundTrip(t *testing.T) {
	encodings := []string{
		"pref",
		"min",
		"default",
		"10px",
		"4dlu",
		"7.5pt",
		"left:pref",
		"right:max(40px;pref)",
		"min(60px;default)",
		"[20px,pref,80px]",
		"pref:grow",
		"c:10px:grow(2.5)",
		"right:pref:grow(0.25)",
	}
	for _, encoded := range encodings {
		sp, err := ParseColumnSpec(encoded)
		if err != nil {
			t.Fatalf("parse %q: %v", encoded, err)
		}
		again, err := ParseColumnSpec(sp.Encode())
		if err != nil {
			t.Fatalf("re-parse %q (from %q): %v", sp.Encode(), encoded, err)
		}
		if again.Align != sp.Align {
			t.Errorf("%q: alignment changed %s -> %s", encoded, sp.Align, again.Align)
		}
		if again.Resize != sp.Resize {
			t.Errorf("%q: weight changed %v -> %v", encoded, sp.Resize, again.Resize)
		}
		if again.Size.Encode() != sp.Size.Encode() {
			t.Errorf("%q: size changed %s -> %s", encoded, sp.Size.Encode(), again.Size.Encode())
		}
	}
}

func TestSpec_EncodeRoundTrip_Rows(t *testing.T) {
	for _, encoded := range []string{"pref", "top:min", "b:12px:grow", "f:default"} {
		sp, err := ParseRowSpec(encoded)
		if err != nil {
			t.Fatalf("parse %q: %v", encoded, err)
		}
		again, err := ParseRowSpec(sp.Encode())
		if err != nil {
			t.Fatalf("re-parse %q: %v", sp.Encode(), err)
		}
		if again != sp {
			t.Errorf("%q: round-trip changed %+v -> %+v", encoded, sp, again)
		}
	}
}

func TestGapConstructors(t *testing.T) {
	col := ColumnGap(Px(4))
	if col.Resize != 0 || col.Size.Value != 4 {
		t.Errorf("column gap should be fixed 4px, got %+v", col)
	}
	row := RowGap(Dlu(2))
	if row.Axis != Vertical || row.Size.Unit != DialogUnit {
		t.Errorf("row gap should be a vertical dlu spec, got %+v", row)
	}
}
