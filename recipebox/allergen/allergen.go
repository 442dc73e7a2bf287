package allergen

import (
	"fmt"
	"strings"
)

// Tag is a single allergen/intolerance identifier understood by the catalog's
// intolerances filter.
type Tag string

const (
	Dairy     Tag = "Dairy"
	Egg       Tag = "Egg"
	Gluten    Tag = "Gluten"
	Grain     Tag = "Grain"
	Peanut    Tag = "Peanut"
	Seafood   Tag = "Seafood"
	Sesame    Tag = "Sesame"
	Shellfish Tag = "Shellfish"
	Soy       Tag = "Soy"
	Sulfite   Tag = "Sulfite"
	TreeNut   Tag = "Tree Nut"
	Wheat     Tag = "Wheat"
)

// All lists every supported tag in canonical order.
var All = []Tag{
	Dairy, Egg, Gluten, Grain, Peanut, Seafood,
	Sesame, Shellfish, Soy, Sulfite, TreeNut, Wheat,
}

var canonical = func() map[string]Tag {
	m := make(map[string]Tag, len(All))
	for _, t := range All {
		m[strings.ToLower(string(t))] = t
	}
	return m
}()

// List is an ordered, duplicate-free set of allergen tags. It is the storage
// and service representation; the comma-delimited form only exists at the
// presentation boundary via Parse and String.
type List []Tag

// Parse converts the presentation-layer comma-delimited form into a List.
// Whitespace around items is ignored, matching is case-insensitive, empty
// items are skipped and duplicates collapse to the first occurrence. An
// unknown tag is an error.
func Parse(s string) (List, error) {
	var list List
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, ok := canonical[strings.ToLower(part)]
		if !ok {
			return nil, fmt.Errorf("unknown allergen %q", part)
		}
		list = list.With(tag)
	}
	return list, nil
}

// FromTags builds a List from already-typed tags, dropping duplicates and
// anything outside the supported set.
func FromTags(tags []Tag) List {
	var list List
	for _, t := range tags {
		if _, ok := canonical[strings.ToLower(string(t))]; ok {
			list = list.With(t)
		}
	}
	return list
}

// With returns the list with tag appended unless it is already present.
func (l List) With(tag Tag) List {
	if l.Contains(tag) {
		return l
	}
	return append(l, tag)
}

func (l List) Contains(tag Tag) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}
	return false
}

// String renders the comma-delimited presentation form.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, t := range l {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// Strings returns the tags as plain strings, e.g. for query parameters.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = string(t)
	}
	return out
}
