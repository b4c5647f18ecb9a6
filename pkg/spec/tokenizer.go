package spec

import "strings"

// segment is one top-level element of a comma-separated spec list, with the
// offset of its first character in the original source for error reporting.
type segment struct {
	text   string
	offset int
}

// splitTopLevel splits source on commas that are not nested inside (...) or
// [...]. Whitespace around segments is trimmed but offsets always point into
// the original string.
func splitTopLevel(source string) ([]segment, error) {
	var segs []segment
	depth := 0
	start := 0
	var stack []byte
	for i := 0; i < len(source); i++ {
		switch c := source[i]; c {
		case '(', '[':
			depth++
			stack = append(stack, c)
		case ')', ']':
			if depth == 0 {
				return nil, syntaxErr(source, i, "unmatched %q", string(c))
			}
			open := stack[len(stack)-1]
			if (c == ')') != (open == '(') {
				return nil, syntaxErr(source, i, "mismatched %q closes %q", string(c), string(open))
			}
			depth--
			stack = stack[:len(stack)-1]
		case ',':
			if depth == 0 {
				segs = append(segs, trimSegment(source, start, i))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, syntaxErr(source, len(source), "unclosed %q", string(stack[len(stack)-1]))
	}
	segs = append(segs, trimSegment(source, start, len(source)))
	return segs, nil
}

// trimSegment trims surrounding whitespace from source[start:end] while
// keeping the offset anchored at the first retained character.
func trimSegment(source string, start, end int) segment {
	for start < end && isSpace(source[start]) {
		start++
	}
	for end > start && isSpace(source[end-1]) {
		end--
	}
	return segment{text: source[start:end], offset: start}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// splitColons splits a single spec segment on top-level colons, yielding the
// one to three parts of the [align ':'] size [':' resize] grammar.
func splitColons(seg segment) []segment {
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
		case ':':
			if depth == 0 {
				parts = append(parts, trimSegment(s, start, i).shift(seg.offset))
				start = i + 1
			}
		}
	}
	parts = append(parts, trimSegment(s, start, len(s)).shift(seg.offset))
	return parts
}

// shift rebases a sub-segment's offset onto the enclosing source string.
func (s segment) shift(base int) segment {
	s.offset += base
	return s
}

// repetition matches the N*(...) shorthand and returns the count text and
// the parenthesized body. ok is false when the segment is not a repetition.
func repetition(seg segment) (count segment, body segment, ok bool) {
	s := seg.text
	star := strings.IndexByte(s, '*')
	if star <= 0 || star+1 >= len(s) || s[star+1] != '(' || s[len(s)-1] != ')' {
		return segment{}, segment{}, false
	}
	for i := 0; i < star; i++ {
		if s[i] < '0' || s[i] > '9' {
			return segment{}, segment{}, false
		}
	}
	count = segment{text: s[:star], offset: seg.offset}
	body = segment{text: s[star+2 : len(s)-1], offset: seg.offset + star + 2}
	return count, body, true
}
