package model

import (
	"fmt"
	"strings"
)

// Fielder exposes a record's fields by their JSON name.
// Enum fields come back as their enum type; lists of enums as []string with
// undeclared members reported as Unknown.
type Fielder interface {
	Field(name string) (any, bool)
}

// Filterable is implemented by every record kind the list pages can filter
type Filterable interface {
	Fielder
	// SearchText returns the fields free-text search is allowed to match
	SearchText() []string
	// Facet returns the record's values for a facet, or false if the facet does not apply
	Facet(f Facet) ([]string, bool)
}

// Kind names a record collection
type Kind string

const (
	KindEmergency Kind = "emergency"
	KindNGO       Kind = "ngo"
	KindVolunteer Kind = "volunteer"
	KindResource  Kind = "resource"
)

var kinds = []Kind{KindEmergency, KindNGO, KindVolunteer, KindResource}

// ParseKind accepts singular and plural kind names, case-insensitively
func ParseKind(s string) (Kind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimSuffix(v, "s")
	if v == "emergencie" {
		v = "emergency"
	}
	for _, k := range kinds {
		if string(k) == v {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q (expected one of emergency, ngo, volunteer, resource)", s)
}
