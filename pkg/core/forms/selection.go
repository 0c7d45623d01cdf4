package forms

import "slices"

// Selection accumulates the checked boxes of a checkbox group in selection order
type Selection []string

// NewSelection builds a selection from ids, dropping duplicates and blanks
func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		s.Toggle(id, true)
	}
	return s
}

// Toggle checks or unchecks id. Ids are enum values, compared trimmed and lowercased.
func (s *Selection) Toggle(id string, checked bool) {
	id = normalizeEnum(id)
	if id == "" {
		return
	}
	i := slices.Index(*s, id)
	switch {
	case checked && i < 0:
		*s = append(*s, id)
	case !checked && i >= 0:
		*s = slices.Delete(*s, i, i+1)
	}
}

// Has reports whether id is checked
func (s Selection) Has(id string) bool {
	return slices.Contains(s, normalizeEnum(id))
}

// Values returns a copy of the checked ids, never nil
func (s Selection) Values() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
