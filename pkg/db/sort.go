package db

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// ErrUnknownField is returned when a sort names a field the record does not have
var ErrUnknownField = errors.New("unknown field")

// ErrUnsortableField is returned when a sort names a list-valued field
var ErrUnsortableField = errors.New("field cannot be sorted")

// SortSpec is a parsed sort argument such as "-created_date"
type SortSpec struct {
	Field      string
	Descending bool
}

// ParseSort parses "field", "+field" or "-field" (descending)
func ParseSort(spec string) SortSpec {
	spec = strings.TrimSpace(spec)
	switch {
	case strings.HasPrefix(spec, "-"):
		return SortSpec{Field: strings.TrimSpace(spec[1:]), Descending: true}
	case strings.HasPrefix(spec, "+"):
		return SortSpec{Field: strings.TrimSpace(spec[1:])}
	default:
		return SortSpec{Field: spec}
	}
}

func (s SortSpec) String() string {
	if s.Descending {
		return "-" + s.Field
	}
	return s.Field
}

// SortRecords stably sorts records in place by the field named in spec.
// An empty spec leaves the order untouched. On error the order is untouched.
func SortRecords[T model.Fielder](records []T, spec string) error {
	s := ParseSort(spec)
	if s.Field == "" || len(records) == 0 {
		return nil
	}

	probe, ok := records[0].Field(s.Field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, s.Field)
	}
	if _, err := compareValues(probe, probe); err != nil {
		return fmt.Errorf("%w: %s", err, s.Field)
	}

	slices.SortStableFunc(records, func(a, b T) int {
		av, _ := a.Field(s.Field)
		bv, _ := b.Field(s.Field)
		c, _ := compareValues(av, bv)
		if s.Descending {
			return -c
		}
		return c
	})
	return nil
}

// compareValues orders two field values of the same dynamic type.
// Unset optional values sort before set ones.
func compareValues(a, b any) (int, error) {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return strings.Compare(strings.ToLower(x), strings.ToLower(y)), nil
	case model.Enum:
		y, _ := b.(model.Enum)
		if y == nil {
			return 1, nil
		}
		return strings.Compare(x.String(), y.String()), nil
	case int:
		y, _ := b.(int)
		return cmp.Compare(x, y), nil
	case *int:
		y, _ := b.(*int)
		switch {
		case x == nil && y == nil:
			return 0, nil
		case x == nil:
			return -1, nil
		case y == nil:
			return 1, nil
		}
		return cmp.Compare(*x, *y), nil
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0, nil
		case !x:
			return -1, nil
		}
		return 1, nil
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y), nil
	default:
		return 0, ErrUnsortableField
	}
}

// Limit truncates records to at most limit entries. A negative limit means no limit.
func Limit[T any](records []T, limit int) []T {
	if limit < 0 || len(records) <= limit {
		return records
	}
	return records[:limit]
}
