package products

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"sixgo.GO/client"
	corecache "sixgo.GO/core/cache"
)

// ErrMainCategoryRequired gates searching: without a main category the
// request is never sent.
var ErrMainCategoryRequired = errors.New("select a main category before searching")

// SearchTag groups every cached search page so one note mutation drops
// them all.
const SearchTag = "products"

// Orchestrator issues product searches keyed by the full serialized filter
// set. Identical filter sets within the freshness window are served from
// cache; concurrent requests for the same key collapse into one call.
type Orchestrator struct {
	client *client.Client
	cache  *corecache.Cache
	group  singleflight.Group

	mu         sync.Mutex
	activeKey  string
	lastParams FilterParams
	lastResult *PaginatedData
}

func NewOrchestrator(c *client.Client, cc *corecache.Cache) *Orchestrator {
	return &Orchestrator{client: c, cache: cc}
}

// Search runs (or serves from cache) the search for params. On failure the
// previously rendered page survives: the caller gets it back alongside the
// error so the table is never cleared by a failed refresh.
func (o *Orchestrator) Search(ctx context.Context, params FilterParams) (*PaginatedData, error) {
	if params.MainCategoryCode == "" {
		return nil, ErrMainCategoryRequired
	}
	key := params.CacheKey()

	o.mu.Lock()
	o.activeKey = key
	o.lastParams = copyFilters(params)
	o.mu.Unlock()

	if v, ok := o.cache.Get(key); ok {
		page := v.(*PaginatedData)
		o.render(key, page)
		return page, nil
	}

	v, err, _ := o.group.Do(key, func() (interface{}, error) {
		var raw searchPayload
		if err := o.client.Get(ctx, "/products/cs", params.Query(), &raw); err != nil {
			return nil, err
		}
		page := mapToPage(raw)
		o.cache.Set(key, page, SearchFreshness, []string{SearchTag})
		return page, nil
	})
	if err != nil {
		return o.Last(), err
	}

	page := v.(*PaginatedData)
	o.render(key, page)
	return page, nil
}

// render records the page as the one on screen — unless the operator has
// already moved to a different key, in which case the stale response is
// dropped rather than applied.
func (o *Orchestrator) render(key string, page *PaginatedData) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if key == o.activeKey {
		o.lastResult = page
	}
}

// Last returns the page currently rendered, or nil before the first
// successful search.
func (o *Orchestrator) Last() *PaginatedData {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastResult
}

// InvalidateSearches drops every cached search page.
func (o *Orchestrator) InvalidateSearches() {
	o.cache.DeleteByTag(SearchTag)
}

// Refetch re-runs the most recent search, bypassing nothing but the
// now-empty cache. Used after note mutations so edits show up immediately.
func (o *Orchestrator) Refetch(ctx context.Context) (*PaginatedData, error) {
	o.mu.Lock()
	params := copyFilters(o.lastParams)
	o.mu.Unlock()
	if params.MainCategoryCode == "" {
		return nil, ErrMainCategoryRequired
	}
	return o.Search(ctx, params)
}
