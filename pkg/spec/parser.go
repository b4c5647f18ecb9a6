package spec

import (
	"strconv"
	"strings"
	"sync"
)

// OnDeprecated, when set, receives a single warning the first time a
// deprecated resize spelling (fill/f) is parsed in this process.
var OnDeprecated func(msg string)

var deprecatedOnce sync.Once

func warnDeprecated(msg string) {
	deprecatedOnce.Do(func() {
		if OnDeprecated != nil {
			OnDeprecated(msg)
		}
	})
}

// ParseColumnSpecs parses a comma-separated column spec list. Variables are
// expanded through m before tokenization; a nil map uses Root().
func ParseColumnSpecs(encoded string, m *LayoutMap) ([]Spec, error) {
	return parseSpecs(encoded, Horizontal, m)
}

// ParseRowSpecs parses a comma-separated row spec list.
func ParseRowSpecs(encoded string, m *LayoutMap) ([]Spec, error) {
	return parseSpecs(encoded, Vertical, m)
}

// ParseColumnSpec parses a single column spec against the root map.
func ParseColumnSpec(encoded string) (Spec, error) {
	return parseSingle(encoded, Horizontal)
}

// ParseRowSpec parses a single row spec against the root map.
func ParseRowSpec(encoded string) (Spec, error) {
	return parseSingle(encoded, Vertical)
}

func parseSingle(encoded string, axis Axis) (Spec, error) {
	specs, err := parseSpecs(encoded, axis, nil)
	if err != nil {
		return Spec{}, err
	}
	if len(specs) != 1 {
		return Spec{}, syntaxErr(encoded, 0, "expected exactly one %s spec, got %d", axis, len(specs))
	}
	return specs[0], nil
}

func parseSpecs(encoded string, axis Axis, m *LayoutMap) ([]Spec, error) {
	if m == nil {
		m = Root()
	}
	expanded, err := m.Expand(encoded, axis)
	if err != nil {
		return nil, err
	}
	return parseList(expanded, axis)
}

// parseList parses an already-expanded, comma-separated spec list.
func parseList(source string, axis Axis) ([]Spec, error) {
	segs, err := splitTopLevel(source)
	if err != nil {
		return nil, err
	}
	var specs []Spec
	for _, seg := range segs {
		if seg.text == "" {
			return nil, syntaxErr(source, seg.offset, "empty %s spec", axis)
		}
		if count, body, ok := repetition(seg); ok {
			n, convErr := strconv.Atoi(count.text)
			if convErr != nil || n <= 0 {
				return nil, syntaxErr(source, count.offset, "repetition count must be a positive integer, got %q", count.text)
			}
			sub, err := parseList(body.text, axis)
			if err != nil {
				return nil, rebase(err, source, body.offset)
			}
			for i := 0; i < n; i++ {
				specs = append(specs, sub...)
			}
			continue
		}
		sp, err := parseOne(source, seg, axis)
		if err != nil {
			return nil, err
		}
		specs = append(specs, sp)
	}
	return specs, nil
}

// rebase remaps a SyntaxError produced against a substring back onto the
// enclosing source so the caret lands in the right place.
func rebase(err error, source string, base int) error {
	if se, ok := err.(*SyntaxError); ok && se.Source != source {
		se.Source = source
		se.Offset += base
	}
	return err
}

// parseOne parses a single [align ':'] size [':' resize] spec segment.
func parseOne(source string, seg segment, axis Axis) (Spec, error) {
	parts := splitColons(seg)
	if len(parts) > 3 {
		return Spec{}, syntaxErr(source, parts[3].offset, "too many ':' separators in %s spec %q", axis, seg.text)
	}

	align := AlignDefault
	resize := NoGrow
	var sizePart segment

	switch len(parts) {
	case 1:
		sizePart = parts[0]
	case 2:
		// Either align:size or size:resize; an alignment token up front
		// disambiguates.
		a, isAlign, err := parseAlignment(strings.ToLower(parts[0].text), axis)
		if isAlign {
			if err != nil {
				return Spec{}, syntaxErr(source, parts[0].offset, "%v", err)
			}
			align = a
			sizePart = parts[1]
		} else {
			sizePart = parts[0]
			w, err := parseResizeToken(source, parts[1])
			if err != nil {
				return Spec{}, err
			}
			resize = w
		}
	case 3:
		a, isAlign, err := parseAlignment(strings.ToLower(parts[0].text), axis)
		if !isAlign {
			return Spec{}, syntaxErr(source, parts[0].offset, "unknown alignment %q", parts[0].text)
		}
		if err != nil {
			return Spec{}, syntaxErr(source, parts[0].offset, "%v", err)
		}
		align = a
		sizePart = parts[1]
		w, err := parseResizeToken(source, parts[2])
		if err != nil {
			return Spec{}, err
		}
		resize = w
	}

	size, err := parseSizeToken(source, sizePart, axis)
	if err != nil {
		return Spec{}, err
	}
	sp, err := newSpec(axis, align, size, resize)
	if err != nil {
		return Spec{}, syntaxErr(source, seg.offset, "%v", err)
	}
	return sp, nil
}

// parseSizeToken parses a size atom, a max(a;b)/min(a;b) bounded form, or a
// [lower,basis,upper] bracket form.
func parseSizeToken(source string, seg segment, axis Axis) (Size, error) {
	text := seg.text
	lower := strings.ToLower(text)
	switch lower {
	case "min", "m":
		return Minimum(), nil
	case "pref", "p":
		return Preferred(), nil
	case "default", "d":
		return Default(), nil
	}
	if strings.HasSuffix(text, ")") {
		if strings.HasPrefix(lower, "max(") {
			return parseBoundedPair(source, seg, axis, true)
		}
		if strings.HasPrefix(lower, "min(") {
			return parseBoundedPair(source, seg, axis, false)
		}
	}
	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			return Size{}, syntaxErr(source, seg.offset+len(text), "unclosed '[' in size %q", text)
		}
		return parseBoundedBracket(source, seg, axis)
	}
	return parseConstant(source, seg)
}

// parseBoundedPair parses max(a;b) or min(a;b): one operand is
// component-measured (the basis), the other a constant (the bound). max
// clamps from below, min from above.
func parseBoundedPair(source string, seg segment, axis Axis, isMax bool) (Size, error) {
	inner := segment{text: seg.text[4 : len(seg.text)-1], offset: seg.offset + 4}
	ops := splitOn(inner, ';')
	if len(ops) != 2 {
		return Size{}, syntaxErr(source, seg.offset, "bounded size %q needs exactly two ';'-separated operands", seg.text)
	}
	a, err := parseSizeToken(source, ops[0], axis)
	if err != nil {
		return Size{}, err
	}
	b, err := parseSizeToken(source, ops[1], axis)
	if err != nil {
		return Size{}, err
	}
	if a.logical() == b.logical() {
		return Size{}, syntaxErr(source, seg.offset,
			"bounded size %q must pair one component-measured operand with one constant", seg.text)
	}
	basis, bound := a, b
	if b.logical() {
		basis, bound = b, a
	}
	var bounded Size
	if isMax {
		bounded, err = Bounded(basis, &bound, nil)
	} else {
		bounded, err = Bounded(basis, nil, &bound)
	}
	if err != nil {
		return Size{}, syntaxErr(source, seg.offset, "%v", err)
	}
	return bounded, nil
}

// parseBoundedBracket parses [lower,basis,upper].
func parseBoundedBracket(source string, seg segment, axis Axis) (Size, error) {
	inner := segment{text: seg.text[1 : len(seg.text)-1], offset: seg.offset + 1}
	ops := splitOn(inner, ',')
	if len(ops) != 3 {
		return Size{}, syntaxErr(source, seg.offset, "bracket size %q needs exactly lower, basis, upper", seg.text)
	}
	lo, err := parseSizeToken(source, ops[0], axis)
	if err != nil {
		return Size{}, err
	}
	basis, err := parseSizeToken(source, ops[1], axis)
	if err != nil {
		return Size{}, err
	}
	hi, err := parseSizeToken(source, ops[2], axis)
	if err != nil {
		return Size{}, err
	}
	if !basis.logical() {
		return Size{}, syntaxErr(source, ops[1].offset, "bracket size basis %q must be component-measured", ops[1].text)
	}
	if lo.logical() || hi.logical() {
		return Size{}, syntaxErr(source, seg.offset, "bracket size bounds in %q must be constants", seg.text)
	}
	bounded, err := Bounded(basis, &lo, &hi)
	if err != nil {
		return Size{}, syntaxErr(source, seg.offset, "%v", err)
	}
	return bounded, nil
}

// splitOn splits a segment on a separator at nesting depth zero.
func splitOn(seg segment, sep byte) []segment {
	var parts []segment
	depth := 0
	start := 0
	s := seg.text
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, trimSegment(s, start, i).shift(seg.offset))
				start = i + 1
			}
		}
	}
	parts = append(parts, trimSegment(s, start, len(s)).shift(seg.offset))
	return parts
}

// parseConstant parses <number><unit>, or a bare number in the process
// default unit. Integral units reject fractional values.
func parseConstant(source string, seg segment) (Size, error) {
	text := seg.text
	unit := DefaultUnit()
	number := text
	for _, n := range unitNames {
		if strings.HasSuffix(strings.ToLower(text), n.name) {
			unit = n.unit
			number = text[:len(text)-len(n.name)]
			break
		}
	}
	number = strings.TrimSpace(number)
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return Size{}, syntaxErr(source, seg.offset, "invalid size %q", text)
	}
	if v < 0 {
		return Size{}, syntaxErr(source, seg.offset, "size %q must not be negative", text)
	}
	size, err := Constant(v, unit)
	if err != nil {
		return Size{}, syntaxErr(source, seg.offset, "%v", err)
	}
	return size, nil
}

// parseResizeToken parses a resize atom: grow/g, none/n/nogrow, grow(W),
// g(W), plus the deprecated fill spellings.
func parseResizeToken(source string, seg segment) (float64, error) {
	lower := strings.ToLower(seg.text)
	switch lower {
	case "grow", "g":
		return DefaultGrow, nil
	case "none", "n", "nogrow":
		return NoGrow, nil
	case "fill", "f":
		warnDeprecated("resize spelling \"" + seg.text + "\" is deprecated; use \"grow\"")
		return DefaultGrow, nil
	}
	for _, prefix := range []string{"grow(", "g(", "fill(", "f("} {
		if strings.HasPrefix(lower, prefix) && strings.HasSuffix(lower, ")") {
			if prefix == "fill(" || prefix == "f(" {
				warnDeprecated("resize spelling \"" + seg.text + "\" is deprecated; use \"grow(...)\"")
			}
			arg := seg.text[len(prefix) : len(seg.text)-1]
			w, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
			if err != nil {
				return 0, syntaxErr(source, seg.offset+len(prefix), "invalid resize weight %q", arg)
			}
			if w < 0 {
				return 0, syntaxErr(source, seg.offset+len(prefix), "resize weight must not be negative, got %v", w)
			}
			return w, nil
		}
	}
	return 0, syntaxErr(source, seg.offset, "unknown resize token %q", seg.text)
}
