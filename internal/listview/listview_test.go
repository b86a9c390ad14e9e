package listview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	ID     int64
	Name   string
	Flavor string
	Price  float64
	Status string
}

type fakeSource struct {
	items   []product
	listErr error
	nextID  int64
	failAll bool
}

func (s *fakeSource) List(context.Context) ([]product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]product, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *fakeSource) Create(_ context.Context, item product) (product, error) {
	if s.failAll {
		return product{}, errors.New("server rejected create")
	}
	s.nextID++
	item.ID = s.nextID
	s.items = append(s.items, item)
	return item, nil
}

func (s *fakeSource) Update(_ context.Context, id int64, item product) (product, error) {
	if s.failAll {
		return product{}, errors.New("server rejected update")
	}
	item.ID = id
	return item, nil
}

func (s *fakeSource) Remove(context.Context, int64) error {
	if s.failAll {
		return errors.New("server rejected delete")
	}
	return nil
}

func productConfig(pageSize int) Config[product] {
	return Config[product]{
		PageSize: pageSize,
		ID:       func(p product) int64 { return p.ID },
		SearchFields: func(p product) []string {
			return []string{p.Name, p.Flavor}
		},
		SortKeys: map[string]func(a, b product) int{
			"name": func(a, b product) int { return strings.Compare(a.Name, b.Name) },
			"price": func(a, b product) int {
				switch {
				case a.Price < b.Price:
					return -1
				case a.Price > b.Price:
					return 1
				}
				return 0
			},
		},
		FilterField: func(p product) string { return p.Status },
	}
}

func seeded(n int, pageSize int) (*View[product], *fakeSource) {
	src := &fakeSource{nextID: int64(n)}
	for i := 1; i <= n; i++ {
		src.items = append(src.items, product{
			ID:     int64(i),
			Name:   fmt.Sprintf("Cookie %02d", i),
			Flavor: "chocolate",
			Price:  float64(i),
			Status: "Pending",
		})
	}
	v := New[product](src, productConfig(pageSize))
	gen := v.BeginLoad()
	items, err := src.List(context.Background())
	v.ApplyLoad(gen, items, err)
	return v, src
}

func TestLoadReplacesWholesale(t *testing.T) {
	v, _ := seeded(3, 6)
	require.True(t, v.Loaded())
	require.Len(t, v.Items(), 3)
	assert.Equal(t, 1, v.TotalPages())
}

func TestLoadFailureKeepsStaleItems(t *testing.T) {
	v, src := seeded(3, 6)
	src.listErr = errors.New("backend down")
	gen := v.BeginLoad()
	items, err := src.List(context.Background())
	v.ApplyLoad(gen, items, err)
	require.Error(t, v.Err())
	assert.Len(t, v.Items(), 3, "prior items must survive a failed load")
}

func TestSearchIsSubsetAndCaseInsensitive(t *testing.T) {
	v, _ := seeded(13, 6)
	v.SetSearchTerm("COOKIE 1")
	for _, p := range v.VisibleItems() {
		assert.Contains(t, strings.ToLower(p.Name), "cookie 1")
	}
	assert.Equal(t, 4, v.FilteredCount()) // Cookie 10..13
	assert.Equal(t, 1, v.Page(), "search must reset the page")

	v.SetSearchTerm("")
	assert.Equal(t, 13, v.FilteredCount(), "empty term means no filter")
}

func TestSortIsIdempotentAndStableOnTies(t *testing.T) {
	src := &fakeSource{items: []product{
		{ID: 1, Name: "b", Price: 2},
		{ID: 2, Name: "a", Price: 2},
		{ID: 3, Name: "c", Price: 1},
	}}
	v := New[product](src, productConfig(10))
	gen := v.BeginLoad()
	items, err := src.List(context.Background())
	v.ApplyLoad(gen, items, err)

	v.SetSortKey("price")
	first := append([]product(nil), v.VisibleItems()...)
	v.SetSortKey("price")
	assert.Equal(t, first, v.VisibleItems(), "re-sorting a sorted list must not reorder")
	// Price ties (ids 1 and 2) keep their fetched order.
	assert.Equal(t, int64(3), first[0].ID)
	assert.Equal(t, int64(1), first[1].ID)
	assert.Equal(t, int64(2), first[2].ID)

	v.SetSortOrder(Descending)
	assert.Equal(t, float64(2), v.VisibleItems()[0].Price)
}

func TestEmptyCollectionIsOnePageOfZeroItems(t *testing.T) {
	src := &fakeSource{}
	v := New[product](src, productConfig(6))
	gen := v.BeginLoad()
	items, err := src.List(context.Background())
	v.ApplyLoad(gen, items, err)
	assert.Equal(t, 1, v.TotalPages())
	assert.Empty(t, v.VisibleItems())
	assert.Equal(t, 1, v.Page())
}

func TestThirteenItemsPageSizeSixPaginatesSixSixOne(t *testing.T) {
	v, _ := seeded(13, 6)
	require.Equal(t, 3, v.TotalPages())

	v.SetPage(1)
	assert.Len(t, v.VisibleItems(), 6)
	v.SetPage(2)
	assert.Len(t, v.VisibleItems(), 6)
	v.SetPage(3)
	assert.Len(t, v.VisibleItems(), 1)

	// Requesting page 4 clamps to page 3.
	v.SetPage(4)
	assert.Equal(t, 3, v.Page())
	assert.Len(t, v.VisibleItems(), 1)
}

func TestSetPageOutOfRangeEqualsClamped(t *testing.T) {
	v, _ := seeded(13, 6)
	v.SetPage(-5)
	lowItems := append([]product(nil), v.VisibleItems()...)
	v.SetPage(1)
	assert.Equal(t, v.VisibleItems(), lowItems)

	v.SetPage(99)
	highItems := append([]product(nil), v.VisibleItems()...)
	v.SetPage(v.TotalPages())
	assert.Equal(t, v.VisibleItems(), highItems)
}

func TestFieldFilterComposesWithSearch(t *testing.T) {
	src := &fakeSource{items: []product{
		{ID: 1, Name: "Choc", Status: "Pending"},
		{ID: 2, Name: "Choc", Status: "Delivered"},
		{ID: 3, Name: "Oat", Status: "Pending"},
	}}
	v := New[product](src, productConfig(10))
	gen := v.BeginLoad()
	items, err := src.List(context.Background())
	v.ApplyLoad(gen, items, err)

	v.SetFieldFilter("Pending")
	v.SetSearchTerm("choc")
	require.Len(t, v.VisibleItems(), 1)
	assert.Equal(t, int64(1), v.VisibleItems()[0].ID)

	v.SetFieldFilter(FilterAll)
	assert.Equal(t, 2, v.FilteredCount())
}

func TestCreateAppendsServerCanonicalRecordExactlyOnce(t *testing.T) {
	v, src := seeded(3, 6)
	gen := v.Generation()
	// Client submits without an id; the server assigns it.
	created, err := src.Create(context.Background(), product{Name: "New", Flavor: "mint", Price: 2})
	v.ApplyCreate(gen, created, err)

	require.Len(t, v.Items(), 4)
	var hits int
	for _, p := range v.Items() {
		if p.ID == created.ID {
			hits++
		}
	}
	assert.Equal(t, 1, hits)
	assert.Equal(t, int64(4), created.ID)
}

func TestFailedUpdateLeavesItemsUntouched(t *testing.T) {
	v, src := seeded(3, 6)
	before := append([]product(nil), v.Items()...)
	src.failAll = true
	gen := v.Generation()
	updated, err := src.Update(context.Background(), 2, product{Name: "Changed"})
	v.ApplyUpdate(gen, updated, err)

	require.Error(t, v.Err())
	assert.Equal(t, before, v.Items())
}

func TestRemoveOnlyAfterConfirmation(t *testing.T) {
	v, src := seeded(3, 6)

	src.failAll = true
	gen := v.Generation()
	v.ApplyRemove(gen, 2, src.Remove(context.Background(), 2))
	assert.Len(t, v.Items(), 3, "failed delete must not touch local state")

	src.failAll = false
	v.ClearError()
	v.ApplyRemove(gen, 2, src.Remove(context.Background(), 2))
	assert.Len(t, v.Items(), 2)
	for _, p := range v.Items() {
		assert.NotEqual(t, int64(2), p.ID)
	}
}

func TestStaleGenerationIsDiscarded(t *testing.T) {
	v, src := seeded(3, 6)
	stale := v.Generation()

	// A reload opens a new window before the slow mutation lands.
	gen := v.BeginLoad()
	items, err := src.List(context.Background())
	v.ApplyLoad(gen, items, err)

	created, err := src.Create(context.Background(), product{Name: "Slow", Flavor: "x", Price: 1})
	v.ApplyCreate(stale, created, err)
	assert.Len(t, v.Items(), 3, "stale mutation result must be dropped")

	v.Close()
	loadGen := v.BeginLoad()
	v.Close()
	v.ApplyLoad(loadGen, nil, nil)
	assert.Len(t, v.Items(), 3, "post-unmount load result must be dropped")
}

func TestDeletingLastItemOnPageClampsPage(t *testing.T) {
	v, _ := seeded(13, 6)
	v.SetPage(3)
	gen := v.Generation()
	v.ApplyRemove(gen, 13, nil)
	assert.Equal(t, 2, v.TotalPages())
	assert.Equal(t, 2, v.Page())
	assert.Len(t, v.VisibleItems(), 6)
}
