package spec

import (
	"fmt"
	"strings"
	"sync"
)

// VariableMarker introduces a layout variable in encoded specs, either as
// $name or ${name}.
const VariableMarker = '$'

// maxExpansionDepth caps recursive variable expansion. A chain of honest
// indirections never gets near this; hitting it means a cycle the seen-set
// missed only through aliasing games, and is reported as a parse error.
const maxExpansionDepth = 16

// LayoutMap binds symbolic names to spec fragments, separately for columns
// and rows. Maps chain: lookups fall through to the parent, puts always land
// in the local map so children shadow without mutating their parent.
type LayoutMap struct {
	parent     *LayoutMap
	columns    map[string]string
	rows       map[string]string
	colAliases map[string]string
	rowAliases map[string]string
}

// NewLayoutMap returns an empty map delegating to parent. A nil parent makes
// a standalone root.
func NewLayoutMap(parent *LayoutMap) *LayoutMap {
	return &LayoutMap{
		parent:     parent,
		columns:    make(map[string]string),
		rows:       make(map[string]string),
		colAliases: make(map[string]string),
		rowAliases: make(map[string]string),
	}
}

var (
	rootOnce sync.Once
	rootMap  *LayoutMap
)

// Root returns the process-wide default map, created once on first use. It
// ships the customary named gaps and sizes; user maps layer on top of it via
// NewLayoutMap(Root()).
func Root() *LayoutMap {
	rootOnce.Do(func() {
		m := NewLayoutMap(nil)
		m.PutColumn("lcgap", "3dlu")
		m.PutColumn("rgap", "4dlu")
		m.PutColumn("ugap", "8dlu")
		m.PutColumn("glue", "0px")
		m.PutColumn("button", "max(50dlu;pref)")
		m.PutColumnAlias("lcg", "lcgap")
		m.PutColumnAlias("rg", "rgap")
		m.PutColumnAlias("ug", "ugap")
		m.PutColumnAlias("b", "button")
		m.PutRow("rgap", "3dlu")
		m.PutRow("ugap", "6dlu")
		m.PutRow("lgap", "2dlu")
		m.PutRow("pgap", "9dlu")
		m.PutRow("glue", "0px")
		m.PutRowAlias("rg", "rgap")
		m.PutRowAlias("ug", "ugap")
		m.PutRowAlias("lg", "lgap")
		m.PutRowAlias("pg", "pgap")
		rootMap = m
	})
	return rootMap
}

// side returns the value and alias maps for one axis.
func (m *LayoutMap) side(axis Axis) (map[string]string, map[string]string) {
	if axis == Horizontal {
		return m.columns, m.colAliases
	}
	return m.rows, m.rowAliases
}

// get resolves key along the chain. Aliases re-resolve at lookup time, so a
// later redefinition of the alias target is observed.
func (m *LayoutMap) get(key string, axis Axis) (string, bool) {
	key = strings.ToLower(key)
	for cur := m; cur != nil; cur = cur.parent {
		values, aliases := cur.side(axis)
		if target, ok := aliases[key]; ok {
			return m.get(target, axis)
		}
		if v, ok := values[key]; ok {
			return v, true
		}
	}
	return "", false
}

// isAlias reports whether key is registered as an alias anywhere in the
// chain.
func (m *LayoutMap) isAlias(key string, axis Axis) bool {
	key = strings.ToLower(key)
	for cur := m; cur != nil; cur = cur.parent {
		_, aliases := cur.side(axis)
		if _, ok := aliases[key]; ok {
			return true
		}
	}
	return false
}

// ColumnGet looks up a column variable; the boolean is false when the key
// is bound nowhere in the chain.
func (m *LayoutMap) ColumnGet(key string) (string, bool) { return m.get(key, Horizontal) }

// RowGet looks up a row variable.
func (m *LayoutMap) RowGet(key string) (string, bool) { return m.get(key, Vertical) }

func (m *LayoutMap) put(key, value string, axis Axis) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("layout variable %q: value must be non-empty", key)
	}
	values, _ := m.side(axis)
	values[strings.ToLower(key)] = value
	return nil
}

// PutColumn binds a column variable in this map, shadowing any parent
// binding. The value must be non-empty.
func (m *LayoutMap) PutColumn(key, value string) error { return m.put(key, value, Horizontal) }

// PutRow binds a row variable in this map.
func (m *LayoutMap) PutRow(key, value string) error { return m.put(key, value, Vertical) }

func (m *LayoutMap) putAlias(alias, key string, axis Axis) error {
	alias = strings.ToLower(alias)
	key = strings.ToLower(key)
	if alias == key {
		return fmt.Errorf("layout variable %q: cannot alias a key to itself", alias)
	}
	if m.isAlias(key, axis) {
		return fmt.Errorf("layout variable %q: target %q is already an alias", alias, key)
	}
	_, aliases := m.side(axis)
	aliases[alias] = key
	return nil
}

// PutColumnAlias makes alias an indirect reference to key's column binding:
// redefining key later is observed through the alias. Aliasing a key to
// itself or to another alias is an error.
func (m *LayoutMap) PutColumnAlias(alias, key string) error {
	return m.putAlias(alias, key, Horizontal)
}

// PutRowAlias makes alias an indirect reference to key's row binding.
func (m *LayoutMap) PutRowAlias(alias, key string) error {
	return m.putAlias(alias, key, Vertical)
}

// Expand replaces every $name and ${name} in source with its binding,
// recursively, before tokenization. Unknown keys and reference cycles are
// reported as parse errors; expanding a variable-free string is a no-op.
func (m *LayoutMap) Expand(source string, axis Axis) (string, error) {
	return m.expand(source, axis, nil, 0)
}

func (m *LayoutMap) expand(source string, axis Axis, seen []string, depth int) (string, error) {
	if depth > maxExpansionDepth {
		return "", syntaxErr(source, 0, "layout variable expansion exceeds depth %d (cycle through %s?)",
			maxExpansionDepth, strings.Join(seen, " -> "))
	}
	var out strings.Builder
	for i := 0; i < len(source); {
		if source[i] != VariableMarker {
			out.WriteByte(source[i])
			i++
			continue
		}
		name, next, err := scanVariableName(source, i)
		if err != nil {
			return "", err
		}
		for _, prev := range seen {
			if strings.EqualFold(prev, name) {
				return "", syntaxErr(source, i, "layout variable %q expands through itself", name)
			}
		}
		value, ok := m.get(name, axis)
		if !ok {
			return "", &SyntaxError{
				Source: source,
				Offset: i,
				Msg:    fmt.Sprintf("unknown layout variable %q", name),
				Err:    &UnknownVariableError{Name: name},
			}
		}
		expanded, err := m.expand(value, axis, append(seen, name), depth+1)
		if err != nil {
			return "", err
		}
		out.WriteString(expanded)
		i = next
	}
	return out.String(), nil
}

// scanVariableName reads the variable name starting at the marker position
// and returns it with the index just past the reference.
func scanVariableName(source string, start int) (string, int, error) {
	i := start + 1
	if i < len(source) && source[i] == '{' {
		end := strings.IndexByte(source[i:], '}')
		if end < 0 {
			return "", 0, syntaxErr(source, i, "unclosed '{' in layout variable reference")
		}
		name := source[i+1 : i+end]
		if name == "" {
			return "", 0, syntaxErr(source, start, "empty layout variable reference")
		}
		return name, i + end + 1, nil
	}
	j := i
	for j < len(source) && isVariableChar(source[j]) {
		j++
	}
	if j == i {
		return "", 0, syntaxErr(source, start, "empty layout variable reference")
	}
	return source[i:j], j, nil
}

func isVariableChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}
