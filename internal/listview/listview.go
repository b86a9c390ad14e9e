// internal/listview/listview.go
//
// The list-view state manager: one reusable controller for every
// remote collection the dashboards render. It owns the fetched items
// and a derived filtered+sorted+paginated window, and reconciles local
// state against confirmed server responses after mutations.
//
// The manager is split along the TUI's concurrency seam: Source calls
// run inside command goroutines, while Begin*/Apply* methods mutate
// state and are only ever invoked from the single Update loop. Results
// carry the generation captured at dispatch; a result whose generation
// no longer matches (the view reloaded, or the section unmounted) is
// discarded, so the last successful response wins regardless of
// request interleaving.

package listview

import (
	"context"
	"sort"
	"strings"
)

// SortOrder controls comparator direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// FilterAll is the field-filter value meaning "no filter".
const FilterAll = "all"

// Source is the remote collection behind a view. Mutating methods may
// be unsupported for read-only collections.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	Remove(ctx context.Context, id int64) error
}

// Config fixes the per-collection behavior of a view.
type Config[T any] struct {
	// PageSize is the fixed window size for this dashboard context.
	PageSize int

	// ID extracts the stable identifier used for reconciliation.
	ID func(T) int64

	// SearchFields yields the text fields matched by the search term.
	SearchFields func(T) []string

	// SortKeys maps a sort key name to its comparator. A comparator
	// returns negative, zero, or positive in the ascending sense.
	SortKeys map[string]func(a, b T) int

	// FilterField extracts the discrete field compared against the
	// field filter (order status, user role). Nil disables it.
	FilterField func(T) string
}

// View is the list-view state manager for one collection of T.
type View[T any] struct {
	cfg    Config[T]
	source Source[T]

	items      []T
	searchTerm string
	sortKey    string
	sortOrder  SortOrder
	field      string
	page       int

	visible    []T
	filtered   int
	loading    bool
	loaded     bool
	err        error
	generation uint64
}

// New constructs a view over the given source.
func New[T any](source Source[T], cfg Config[T]) *View[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	v := &View[T]{
		cfg:       cfg,
		source:    source,
		sortOrder: Ascending,
		field:     FilterAll,
		page:      1,
	}
	v.refresh(false)
	return v
}

// Source exposes the remote collection for command dispatch.
func (v *View[T]) Source() Source[T] { return v.source }

// Generation identifies the current reconciliation window. Results
// dispatched under an older generation must not be applied.
func (v *View[T]) Generation() uint64 { return v.generation }

// Loading reports whether a load is in flight.
func (v *View[T]) Loading() bool { return v.loading }

// Loaded reports whether at least one load has succeeded, so sections
// can fetch once on first entry and rely on explicit refresh after.
func (v *View[T]) Loaded() bool { return v.loaded }

// Err returns the recoverable error from the last failed operation.
func (v *View[T]) Err() error { return v.err }

// ClearError drops the error flag without touching items.
func (v *View[T]) ClearError() { v.err = nil }

// Items returns the full source collection as last confirmed.
func (v *View[T]) Items() []T { return v.items }

// VisibleItems returns the current page of the derived view.
func (v *View[T]) VisibleItems() []T { return v.visible }

// FilteredCount is the length of the filtered+sorted set.
func (v *View[T]) FilteredCount() int { return v.filtered }

// Page returns the 1-based current page index.
func (v *View[T]) Page() int { return v.page }

// PageSize returns the fixed page size.
func (v *View[T]) PageSize() int { return v.cfg.PageSize }

// TotalPages is max(1, ceil(filtered/pageSize)): an empty filtered set
// is one page of zero items, never zero pages.
func (v *View[T]) TotalPages() int {
	pages := (v.filtered + v.cfg.PageSize - 1) / v.cfg.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// SearchTerm returns the active search term.
func (v *View[T]) SearchTerm() string { return v.searchTerm }

// SortKey returns the active sort key ("" = order as fetched).
func (v *View[T]) SortKey() string { return v.sortKey }

// SortOrder returns the active direction.
func (v *View[T]) SortOrder() SortOrder { return v.sortOrder }

// FieldFilter returns the active discrete field filter.
func (v *View[T]) FieldFilter() string { return v.field }

// SetSearchTerm re-derives the visible page and resets it to 1.
// Matching is a case-insensitive substring test over the configured
// search fields; the empty term means "no filter", not "match nothing".
func (v *View[T]) SetSearchTerm(term string) {
	v.searchTerm = term
	v.refresh(true)
}

// SetSortKey selects the comparator and resets the page to 1. Keys
// without a configured comparator fall back to order as fetched.
// Equal keys keep their fetched order: the tie-break is intentionally
// the stable source order, not a secondary key.
func (v *View[T]) SetSortKey(key string) {
	v.sortKey = key
	v.refresh(true)
}

// SetSortOrder flips direction and resets the page to 1.
func (v *View[T]) SetSortOrder(order SortOrder) {
	if order != Descending {
		order = Ascending
	}
	v.sortOrder = order
	v.refresh(true)
}

// SetFieldFilter applies the discrete field filter (FilterAll clears
// it) and resets the page to 1.
func (v *View[T]) SetFieldFilter(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = FilterAll
	}
	v.field = value
	v.refresh(true)
}

// SetPage clamps n into [1, TotalPages]; out-of-range requests clamp
// rather than error.
func (v *View[T]) SetPage(n int) {
	v.page = clamp(n, 1, v.TotalPages())
	v.slicePage()
}

// NextPage and PrevPage step with the same clamping.
func (v *View[T]) NextPage() { v.SetPage(v.page + 1) }
func (v *View[T]) PrevPage() { v.SetPage(v.page - 1) }

// BeginLoad marks a load in flight and opens a new reconciliation
// window. The returned generation must accompany the eventual
// ApplyLoad.
func (v *View[T]) BeginLoad() uint64 {
	v.generation++
	v.loading = true
	return v.generation
}

// ApplyLoad reconciles a completed load. Success replaces the source
// collection wholesale; failure keeps the prior items so the view stays
// stale-but-available behind a retry affordance. A stale generation is
// ignored entirely.
func (v *View[T]) ApplyLoad(gen uint64, items []T, err error) {
	if gen != v.generation {
		return
	}
	v.loading = false
	if err != nil {
		v.err = err
		return
	}
	v.err = nil
	v.loaded = true
	v.items = items
	v.refresh(false)
}

// ApplyCreate appends the server-returned canonical record (the server
// assigns the identifier, the optimistic input is discarded). Failures
// leave the collection untouched.
func (v *View[T]) ApplyCreate(gen uint64, created T, err error) {
	if gen != v.generation {
		return
	}
	if err != nil {
		v.err = err
		return
	}
	v.err = nil
	id := v.cfg.ID(created)
	for i := range v.items {
		if v.cfg.ID(v.items[i]) == id {
			// Server replayed an id we already hold; replace instead
			// of appending a duplicate.
			v.items[i] = created
			v.refresh(false)
			return
		}
	}
	v.items = append(v.items, created)
	v.refresh(false)
}

// ApplyUpdate replaces the matching record only on confirmed success.
func (v *View[T]) ApplyUpdate(gen uint64, updated T, err error) {
	if gen != v.generation {
		return
	}
	if err != nil {
		v.err = err
		return
	}
	v.err = nil
	id := v.cfg.ID(updated)
	for i := range v.items {
		if v.cfg.ID(v.items[i]) == id {
			v.items[i] = updated
			break
		}
	}
	v.refresh(false)
}

// ApplyRemove deletes the record only on confirmed success.
func (v *View[T]) ApplyRemove(gen uint64, id int64, err error) {
	if gen != v.generation {
		return
	}
	if err != nil {
		v.err = err
		return
	}
	v.err = nil
	kept := v.items[:0]
	for _, item := range v.items {
		if v.cfg.ID(item) != id {
			kept = append(kept, item)
		}
	}
	v.items = kept
	v.refresh(false)
}

// Close invalidates the reconciliation window so in-flight results are
// discarded after the owning section unmounts.
func (v *View[T]) Close() {
	v.generation++
	v.loading = false
}

// refresh recomputes visible = paginate(sort(filter(items))). Setter
// changes reset the page to 1; data changes keep the page and clamp it
// into the new valid range.
func (v *View[T]) refresh(resetPage bool) {
	filtered := v.filterItems()
	v.sortItems(filtered)
	v.filtered = len(filtered)
	if resetPage {
		v.page = 1
	} else {
		v.page = clamp(v.page, 1, v.TotalPages())
	}
	v.slicePageFrom(filtered)
}

func (v *View[T]) slicePage() {
	filtered := v.filterItems()
	v.sortItems(filtered)
	v.slicePageFrom(filtered)
}

func (v *View[T]) slicePageFrom(filtered []T) {
	last := v.page * v.cfg.PageSize
	first := last - v.cfg.PageSize
	if first >= len(filtered) {
		v.visible = nil
		return
	}
	if last > len(filtered) {
		last = len(filtered)
	}
	v.visible = filtered[first:last]
}

func (v *View[T]) filterItems() []T {
	out := make([]T, 0, len(v.items))
	term := strings.ToLower(strings.TrimSpace(v.searchTerm))
	for _, item := range v.items {
		if v.cfg.FilterField != nil && v.field != FilterAll {
			if !strings.EqualFold(v.cfg.FilterField(item), v.field) {
				continue
			}
		}
		if term != "" && !v.matches(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (v *View[T]) matches(item T, term string) bool {
	if v.cfg.SearchFields == nil {
		return true
	}
	for _, field := range v.cfg.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (v *View[T]) sortItems(items []T) {
	if v.sortKey == "" {
		return
	}
	less, ok := v.cfg.SortKeys[v.sortKey]
	if !ok {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := less(items[i], items[j])
		if v.sortOrder == Descending {
			return c > 0
		}
		return c < 0
	})
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
