package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// SplitList splits a comma-separated field into trimmed, non-empty segments.
// Input order is kept and duplicates are not removed.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseOptionalInt parses an optional integer field. Blank or unparseable input is unset.
func ParseOptionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// ParseCount parses an always-present integer field. Blank or unparseable input is 0.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ParseCoordinates parses "lat, lng". Blank input is unset.
func ParseCoordinates(s string) (*model.Coordinates, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected \"lat, lng\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("coordinates out of range: %g, %g", lat, lng)
	}
	return &model.Coordinates{Lat: lat, Lng: lng}, nil
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "y", "yes", "on":
			return true
		}
		return false
	}
	return b
}
