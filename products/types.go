package products

import (
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Fixed option domains for the numeric filters and pagination.
var (
	NumberOfProgressesOptions = buildProgressOptions()
	SessionsPerWeekOptions    = []int{1, 2, 3, 4, 5, 6, 7}
	PageSizeOptions           = []int{10, 20, 50, 100}
)

const (
	DefaultPageSize = 10
	// SearchDebounce is the quiet period before a search keystroke commits.
	SearchDebounce = 500 * time.Millisecond
	// SearchFreshness bounds how long an identical search is served from cache.
	SearchFreshness = 5 * time.Minute
)

// 1..20, then 30, 40, ... 100.
func buildProgressOptions() []int {
	opts := make([]int, 0, 28)
	for i := 1; i <= 20; i++ {
		opts = append(opts, i)
	}
	for i := 30; i <= 100; i += 10 {
		opts = append(opts, i)
	}
	return opts
}

type LocalizedName struct {
	Lang         string `json:"lang"`
	DisplayOrder int    `json:"displayOrder"`
	Content      string `json:"content"`
}

type ProductLanguage struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ProductStatus struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Variant is one purchasable variation of a product. Read-only; replaced
// wholesale on every search response.
type Variant struct {
	ID                            string          `json:"id"`
	DisplayOrder                  int             `json:"displayOrder"`
	Names                         []LocalizedName `json:"names"`
	CSImportantNote               string          `json:"csImportantNote,omitempty"`
	CSSpecialPoint                string          `json:"csSpecialPoint,omitempty"`
	ProgressMethodName            string          `json:"progressMethodName,omitempty"`
	NumberOfProgressesName        string          `json:"numberOfProgressesName,omitempty"`
	NumberOfProgressesPerWeekName string          `json:"numberOfProgressesPerWeekName,omitempty"`
	ProgressTimeName              string          `json:"progressTimeName,omitempty"`
	DistrictName                  string          `json:"districtName,omitempty"`
	CityName                      string          `json:"cityName,omitempty"`
	OriginalPrice                 float64         `json:"originalPrice"`
	Price                         float64         `json:"price"`
	Currency                      string          `json:"currency"`
	EventInUse                    bool            `json:"eventInUse"`
	EventLimit                    int             `json:"eventLimit"`
	EventBookedCount              int             `json:"eventBookedCount"`
}

// Product is one search result row. A product exclusively owns its variant
// list; notes are addressed by (productId, variantId).
type Product struct {
	ProductID       string            `json:"productId"`
	AutoID          int64             `json:"autoId"`
	B2CLink         string            `json:"b2cLink"`
	Type            string            `json:"type"`
	CategoryName    string            `json:"categoryName"`
	SubCategoryName string            `json:"subCategoryName"`
	ImageURL        string            `json:"imageUrl"`
	Name            string            `json:"name"`
	CSImportantNote string            `json:"csImportantNote,omitempty"`
	CSSpecialPoint  string            `json:"csSpecialPoint,omitempty"`
	ProductNames    []LocalizedName   `json:"productNames"`
	ProductTypeName string            `json:"productTypeName"`
	Price           float64           `json:"price"`
	Languages       []ProductLanguage `json:"languages"`
	Currency        string            `json:"currency"`
	Status          ProductStatus     `json:"status"`
	SellerName      string            `json:"sellerName"`
	AvatarURL       string            `json:"avatarUrl"`
	CreatedTS       string            `json:"createdTS"`
	LastUpdatedTS   string            `json:"lastUpdatedTS"`
	Variants        []Variant         `json:"variants"`
}

// PaginatedData is one page of search results.
type PaginatedData struct {
	PageNumber   int       `json:"pageNumber"`
	PageSize     int       `json:"pageSize"`
	TotalRecords int       `json:"totalRecords"`
	TotalPages   int       `json:"totalPages"`
	Items        []Product `json:"items"`
}

// NoteUpdate is the note write payload. Pointer fields distinguish "unset"
// (omitted) from an explicit empty string, which deletes the note text.
type NoteUpdate struct {
	ProductID       string  `json:"productId"`
	VariantID       *string `json:"variantId,omitempty"`
	CSImportantNote *string `json:"csImportantNote,omitempty"`
	CSSpecialPoint  *string `json:"csSpecialPoint,omitempty"`
}

// FilterParams is the applied filter set: the single source of truth for
// what the last search ran with. A nil slice means the dimension is unset
// and its parameter is omitted from the query entirely.
type FilterParams struct {
	PageNumber               int      `json:"pageNumber"`
	PageSize                 int      `json:"pageSize"`
	MainCategoryCode         string   `json:"mainCategoryCode"`
	CategoryCodes            []string `json:"categoryCodes,omitempty"`
	LangCodes                []string `json:"langCodes,omitempty"`
	LocationCodes            []string `json:"locationCodes,omitempty"`
	ProgressMethodCodes      []string `json:"progressMethodCodes,omitempty"`
	ProductTypeCodes         []string `json:"productTypeCodes,omitempty"`
	NumberOfProgresses       []int    `json:"numberOfProgresses,omitempty"`
	NumberOfProgressPerWeeks []int    `json:"numberOfProgressPerWeeks,omitempty"`
	SearchTerm               string   `json:"searchTerm,omitempty"`
}

// DefaultFilters returns the page-mount state.
func DefaultFilters() FilterParams {
	return FilterParams{PageNumber: 1, PageSize: DefaultPageSize}
}

// Query serializes the filter set as upstream query parameters. Array
// dimensions repeat the parameter name; unset dimensions are absent.
func (p FilterParams) Query() url.Values {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(p.PageNumber))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	q.Set("mainCategoryCode", p.MainCategoryCode)
	addStrings(q, "categoryCodes", p.CategoryCodes)
	addStrings(q, "langCodes", p.LangCodes)
	addStrings(q, "locationCodes", p.LocationCodes)
	addStrings(q, "progressMethodCodes", p.ProgressMethodCodes)
	addStrings(q, "productTypeCodes", p.ProductTypeCodes)
	addInts(q, "numberOfProgresses", p.NumberOfProgresses)
	addInts(q, "numberOfProgressPerWeeks", p.NumberOfProgressPerWeeks)
	if p.SearchTerm != "" {
		q.Set("searchTerm", p.SearchTerm)
	}
	return q
}

// CacheKey identifies this exact filter set including pagination. Array
// values are sorted first: selection order does not change the query.
func (p FilterParams) CacheKey() string {
	sorted := p
	sorted.CategoryCodes = sortedStrings(p.CategoryCodes)
	sorted.LangCodes = sortedStrings(p.LangCodes)
	sorted.LocationCodes = sortedStrings(p.LocationCodes)
	sorted.ProgressMethodCodes = sortedStrings(p.ProgressMethodCodes)
	sorted.ProductTypeCodes = sortedStrings(p.ProductTypeCodes)
	sorted.NumberOfProgresses = sortedInts(p.NumberOfProgresses)
	sorted.NumberOfProgressPerWeeks = sortedInts(p.NumberOfProgressPerWeeks)
	return "products|" + sorted.Query().Encode()
}

func addStrings(q url.Values, name string, values []string) {
	for _, v := range values {
		q.Add(name, v)
	}
}

func addInts(q url.Values, name string, values []int) {
	for _, v := range values {
		q.Add(name, strconv.Itoa(v))
	}
}

func sortedStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := append([]string{}, in...)
	sort.Strings(out)
	return out
}

func sortedInts(in []int) []int {
	if len(in) == 0 {
		return nil
	}
	out := append([]int{}, in...)
	sort.Ints(out)
	return out
}

// PendingSelections shadows the seven multi-select dimensions while the
// operator is still picking options. Nothing here reaches the applied set
// until an explicit apply.
type PendingSelections struct {
	CategoryCodes            []string `json:"categoryCodes"`
	LangCodes                []string `json:"langCodes"`
	LocationCodes            []string `json:"locationCodes"`
	ProgressMethodCodes      []string `json:"progressMethodCodes"`
	ProductTypeCodes         []string `json:"productTypeCodes"`
	NumberOfProgresses       []int    `json:"numberOfProgresses"`
	NumberOfProgressPerWeeks []int    `json:"numberOfProgressPerWeeks"`
}
