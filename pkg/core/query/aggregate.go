package query

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// None is the bucket for records with no value in the grouped field
const None = "none"

// Aggregate counts records per value of field.
// List fields count each member, invalid enum values land in model.Unknown and
// missing optional values in None. Records without the field are skipped.
func Aggregate[T model.Fielder](records []T, field string) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		v, ok := rec.Field(field)
		if !ok {
			continue
		}
		for _, key := range bucketKeys(v) {
			counts[key]++
		}
	}
	return counts
}

// Distinct counts the unique values of field across records. Duplicates across
// records collapse to one; empty values are not counted.
func Distinct[T model.Fielder](records []T, field string) int {
	seen := make(map[string]struct{})
	for _, rec := range records {
		v, ok := rec.Field(field)
		if !ok {
			continue
		}
		for _, key := range bucketKeys(v) {
			if key != None {
				seen[key] = struct{}{}
			}
		}
	}
	return len(seen)
}

// Count returns how many records satisfy pred
func Count[T any](records []T, pred func(T) bool) int {
	n := 0
	for _, rec := range records {
		if pred(rec) {
			n++
		}
	}
	return n
}

// Bucket is one entry of an aggregate in display order
type Bucket struct {
	Value string
	Count int
}

// Sorted returns the aggregate as buckets ordered by descending count, then value
func Sorted(counts map[string]int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for v, n := range counts {
		out = append(out, Bucket{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b Bucket) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Value < b.Value {
			return -1
		}
		if a.Value > b.Value {
			return 1
		}
		return 0
	})
	return out
}

func bucketKeys(v any) []string {
	switch x := v.(type) {
	case model.Enum:
		return []string{model.EnumLabel(x)}
	case string:
		if x == "" {
			return []string{None}
		}
		return []string{x}
	case []string:
		return x
	case bool:
		return []string{strconv.FormatBool(x)}
	case int:
		return []string{strconv.Itoa(x)}
	case *int:
		if x == nil {
			return []string{None}
		}
		return []string{strconv.Itoa(*x)}
	case time.Time:
		if x.IsZero() {
			return []string{None}
		}
		return []string{x.Format(time.DateOnly)}
	case nil:
		return []string{None}
	default:
		return []string{fmt.Sprint(x)}
	}
}
