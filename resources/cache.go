package resources

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"sixgo.GO/client"
	"sixgo.GO/localstore"
)

const (
	// Slot is the local-storage slot holding the cached taxonomy envelope.
	Slot = "6ixgo_resources"
	// TTL bounds how long a cached envelope is served without refetching.
	TTL = 24 * time.Hour
)

// envelope wraps the taxonomy payload with its fetch time (Unix millis).
type envelope struct {
	Data      Data  `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// Cache serves the taxonomy from the persisted envelope while fresh and
// refetches otherwise. Concurrent misses for the same data collapse into
// one upstream call.
type Cache struct {
	store  localstore.Store
	client *client.Client
	group  singleflight.Group
	now    func() time.Time
}

func NewCache(store localstore.Store, c *client.Client) *Cache {
	return &Cache{store: store, client: c, now: time.Now}
}

// Get returns the taxonomy. With force false a non-expired persisted
// envelope is served without network access; a corrupt envelope is a miss.
func (c *Cache) Get(ctx context.Context, force bool) (*Data, error) {
	if !force {
		var env envelope
		if localstore.GetJSON(c.store, Slot, &env) {
			age := c.now().UnixMilli() - env.Timestamp
			if age >= 0 && age <= TTL.Milliseconds() {
				return &env.Data, nil
			}
		}
	}

	v, err, _ := c.group.Do(Slot, func() (interface{}, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Data), nil
}

func (c *Cache) fetch(ctx context.Context) (*Data, error) {
	var data Data
	if err := c.client.Get(ctx, "/resources", nil, &data); err != nil {
		return nil, err
	}
	env := envelope{Data: data, Timestamp: c.now().UnixMilli()}
	if err := localstore.SetJSON(c.store, Slot, env); err != nil {
		log.Printf("resources: persist envelope failed: %v", err)
	}
	return &data, nil
}

// Invalidate removes the persisted envelope. It does not refetch; callers
// wanting fresh data follow with Get(ctx, true).
func (c *Cache) Invalidate() {
	if err := c.store.Delete(Slot); err != nil {
		log.Printf("resources: invalidate: %v", err)
	}
}

// Refresh drops the envelope and fetches fresh taxonomy data.
func (c *Cache) Refresh(ctx context.Context) (*Data, error) {
	c.Invalidate()
	return c.Get(ctx, true)
}

// MainCategories returns every main category in the taxonomy.
func (c *Cache) MainCategories(ctx context.Context) ([]FlatCategory, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return ExtractMainCategories(data.Categories), nil
}

// SubCategories returns the dependent sub-category options for one main
// category.
func (c *Cache) SubCategories(ctx context.Context, mainCategoryCode string) ([]FlatCategory, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return ExtractSubCategories(data.Categories, mainCategoryCode), nil
}

// FlatCategories returns the whole category tree flattened.
func (c *Cache) FlatCategories(ctx context.Context) ([]FlatCategory, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return FlattenCategories(data.Categories, "", 0), nil
}

// Languages returns the language options (independent of main category).
func (c *Cache) Languages(ctx context.Context) ([]Language, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return data.Languages, nil
}

// CountryLocations returns the cities and districts of the reserved country.
func (c *Cache) CountryLocations(ctx context.Context) ([]FlatLocation, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return ExtractCountryLocations(data.Locations), nil
}

// FlatLocations returns the whole location tree flattened.
func (c *Cache) FlatLocations(ctx context.Context) ([]FlatLocation, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return FlattenLocations(data.Locations, "", nil), nil
}

// ProductTypes returns the product-type options for one main category.
func (c *Cache) ProductTypes(ctx context.Context, mainCategoryCode string) ([]ProductType, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return data.ProductTypes[mainCategoryCode], nil
}

// ProcessMethods returns the process-method options for one main category.
func (c *Cache) ProcessMethods(ctx context.Context, mainCategoryCode string) ([]ProcessMethod, error) {
	data, err := c.Get(ctx, false)
	if err != nil {
		return nil, err
	}
	return data.ProcessMethods[mainCategoryCode], nil
}
