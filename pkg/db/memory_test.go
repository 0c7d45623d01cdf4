package db

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func intPtr(i int) *int { return &i }

func seedEmergencies() []model.Emergency {
	return []model.Emergency{
		{
			Meta:           model.Meta{ID: "em-1", CreatedDate: testNow.Add(-3 * time.Hour), UpdatedDate: testNow.Add(-3 * time.Hour)},
			Title:          "Flood",
			Category:       model.CategoryNaturalDisaster,
			Severity:       model.SeverityCritical,
			Status:         model.StatusActive,
			Location:       "Chennai",
			Coordinates:    &model.Coordinates{Lat: 13.0827, Lng: 80.2707},
			AffectedPeople: intPtr(5000),
			PriorityNeeds:  []string{"boats", "food"},
		},
		{
			Meta:     model.Meta{ID: "em-2", CreatedDate: testNow.Add(-1 * time.Hour), UpdatedDate: testNow.Add(-1 * time.Hour)},
			Title:    "building collapse",
			Category: model.CategoryAccident,
			Severity: model.SeverityHigh,
			Status:   model.StatusResponding,
			Location: "Mumbai",
		},
		{
			Meta:           model.Meta{ID: "em-3", CreatedDate: testNow.Add(-2 * time.Hour), UpdatedDate: testNow.Add(-2 * time.Hour)},
			Title:          "Fire",
			Category:       model.CategoryFire,
			Severity:       model.SeverityMedium,
			Status:         model.StatusResolved,
			Location:       "Shimla",
			AffectedPeople: intPtr(20),
		},
	}
}

func newTestStore(seed []model.Emergency, opts ...Option) *MemoryStore[model.Emergency, *model.Emergency] {
	opts = append([]Option{WithDelay(NoDelay), WithClock(func() time.Time { return testNow })}, opts...)
	return NewMemoryStore[model.Emergency, *model.Emergency](seed, opts...)
}

func ids(records []model.Emergency) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestList_SortAndLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())

	tests := []struct {
		name  string
		sort  string
		limit int
		want  []string
	}{
		{"store order", "", -1, []string{"em-1", "em-2", "em-3"}},
		{"newest first", "-created_date", -1, []string{"em-2", "em-3", "em-1"}},
		{"oldest first", "created_date", -1, []string{"em-1", "em-3", "em-2"}},
		{"title ignores case", "title", -1, []string{"em-2", "em-3", "em-1"}},
		{"unset ints sort first", "affected_people", -1, []string{"em-2", "em-3", "em-1"}},
		{"limit applies after sort", "-created_date", 2, []string{"em-2", "em-3"}},
		{"limit larger than collection", "", 10, []string{"em-1", "em-2", "em-3"}},
		{"zero limit", "", 0, []string{}},
		{"unknown field keeps store order", "-nonexistent", -1, []string{"em-1", "em-2", "em-3"}},
		{"list field keeps store order", "priority_needs", -1, []string{"em-1", "em-2", "em-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := store.List(ctx, tt.sort, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(records))
		})
	}
}

func TestList_DoesNotExposeStoreState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())

	records, err := store.List(ctx, "", -1)
	require.NoError(t, err)
	records[0].Title = "changed"
	records[0].PriorityNeeds[0] = "changed"
	*records[0].AffectedPeople = 1

	got, err := store.Get(ctx, "em-1")
	require.NoError(t, err)
	assert.Equal(t, "Flood", got.Title)
	assert.Equal(t, []string{"boats", "food"}, got.PriorityNeeds)
	assert.Equal(t, 5000, *got.AffectedPeople)
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(seedEmergencies())

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestCreate_AssignsIdentityAndTimestamps(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(nil)

	created, err := store.Create(ctx, model.Emergency{
		Meta:     model.Meta{ID: "caller-chosen", CreatedDate: time.Unix(0, 0)},
		Title:    "Landslide",
		Category: model.CategoryNaturalDisaster,
		Severity: model.SeverityHigh,
		Status:   model.StatusActive,
		Location: "Wayanad",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "caller-chosen", created.ID)
	assert.Equal(t, testNow, created.CreatedDate)
	assert.Equal(t, testNow, created.UpdatedDate)
	assert.NotNil(t, created.PriorityNeeds)
	assert.Empty(t, created.PriorityNeeds)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreate_ConcurrentIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(nil)

	const n = 50
	var wg sync.WaitGroup
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := store.Create(ctx, model.Emergency{Title: fmt.Sprintf("report %d", i)})
			if assert.NoError(t, err) {
				results <- rec.ID
			}
		}(i)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for id := range results {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, store.Len())
}

func TestUpdate_EmptyPatchOnlyRefreshesUpdatedDate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())

	before, err := store.Get(ctx, "em-1")
	require.NoError(t, err)

	after, err := store.Update(ctx, "em-1", Patch{})
	require.NoError(t, err)

	assert.Equal(t, testNow, after.UpdatedDate)
	assert.True(t, after.UpdatedDate.After(before.UpdatedDate))

	after.UpdatedDate = before.UpdatedDate
	assert.Equal(t, before, after)
}

func TestUpdate_MergesPatch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())

	updated, err := store.Update(ctx, "em-1", Patch{
		"status":          "resolved",
		"affected_people": 5200,
		"priority_needs":  []string{"water"},
		"id":              "hijack",
		"created_date":    "2000-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "em-1", updated.ID)
	assert.Equal(t, testNow.Add(-3*time.Hour), updated.CreatedDate)
	assert.Equal(t, testNow, updated.UpdatedDate)
	assert.Equal(t, model.StatusResolved, updated.Status)
	require.NotNil(t, updated.AffectedPeople)
	assert.Equal(t, 5200, *updated.AffectedPeople)
	assert.Equal(t, []string{"water"}, updated.PriorityNeeds)
	assert.Equal(t, "Flood", updated.Title)
	assert.Equal(t, &model.Coordinates{Lat: 13.0827, Lng: 80.2707}, updated.Coordinates)

	got, err := store.Get(ctx, "em-1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdate_NullClearsOptionalField(t *testing.T) {
	store := newTestStore(seedEmergencies())

	updated, err := store.Update(context.Background(), "em-1", Patch{"affected_people": nil})
	require.NoError(t, err)
	assert.Nil(t, updated.AffectedPeople)
}

func TestUpdate_InvalidPatch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())

	_, err := store.Update(ctx, "em-1", Patch{"affected_people": "lots"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPatch)

	got, err := store.Get(ctx, "em-1")
	require.NoError(t, err)
	assert.Equal(t, 5000, *got.AffectedPeople)
}

func TestUpdate_UnknownFieldRejected(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())
	before, err := store.Get(ctx, "em-1")
	require.NoError(t, err)

	_, err = store.Update(ctx, "em-1", Patch{"title": "renamed", "bogus": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPatch)
	assert.Contains(t, err.Error(), "bogus")

	after, err := store.Get(ctx, "em-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// optional fields left out of the stored JSON are still known
	updated, err := store.Update(ctx, "em-1", Patch{"contact_person": "Ravi"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", updated.ContactPerson)
}

func TestUpdate_NotFound(t *testing.T) {
	store := newTestStore(seedEmergencies())

	_, err := store.Update(context.Background(), "missing", Patch{"title": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())

	removed, err := store.Delete(ctx, "em-2")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, "em-2")
	require.NoError(t, err)
	assert.False(t, removed)

	records, err := store.List(ctx, "", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"em-1", "em-3"}, ids(records))
}

func TestReset_RestoresSeed(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(seedEmergencies())

	_, err := store.Create(ctx, model.Emergency{Title: "new"})
	require.NoError(t, err)
	_, err = store.Delete(ctx, "em-1")
	require.NoError(t, err)
	_, err = store.Update(ctx, "em-2", Patch{"title": "renamed"})
	require.NoError(t, err)

	store.Reset()

	records, err := store.List(ctx, "", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"em-1", "em-2", "em-3"}, ids(records))
	assert.Equal(t, "building collapse", records[1].Title)
}

func TestNewMemoryStore_AssignsMissingSeedIDs(t *testing.T) {
	n := 0
	store := NewMemoryStore[model.Emergency, *model.Emergency](
		[]model.Emergency{{Title: "a"}, {Meta: model.Meta{ID: "kept"}, Title: "b"}},
		WithDelay(NoDelay),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("gen-%d", n) }),
	)

	records, err := store.List(context.Background(), "", -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"gen-1", "kept"}, ids(records))
}

func TestOperations_HonourCancellation(t *testing.T) {
	store := newTestStore(seedEmergencies(), WithDelay(FixedDelay(time.Hour)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.List(ctx, "", -1)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.Create(ctx, model.Emergency{Title: "never stored"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, store.Len())

	removed, err := store.Delete(ctx, "em-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, removed)
}

func TestRandomDelay_StaysInRange(t *testing.T) {
	ctx := context.Background()
	delay := RandomDelay(time.Millisecond, 3*time.Millisecond)

	start := time.Now()
	require.NoError(t, delay(ctx))
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
