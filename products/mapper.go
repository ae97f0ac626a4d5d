package products

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// The admin API is loose about numeric types: ids and counters arrive as
// numbers or strings depending on backend version. Items are decoded from
// raw maps with weak typing instead of trusting the wire shape.

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

func numberToBoolHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Bool {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return v != 0, nil
		case int64:
			return v != 0, nil
		case float64:
			return int(v) != 0, nil
		}
		return data, nil
	}
}

var itemDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
	numberToBoolHook(),
)

// mapToProduct decodes one raw search item into a Product. Undecodable
// items degrade to an empty Product rather than failing the page.
func mapToProduct(item map[string]interface{}) Product {
	var prod Product
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       itemDecodeHook,
		Result:           &prod,
		TagName:          "json",
		ZeroFields:       true,
	}
	dec, _ := mapstructure.NewDecoder(cfg)
	if err := dec.Decode(item); err != nil {
		return Product{}
	}
	return prod
}

// mapToPage decodes the raw search payload into a PaginatedData.
func mapToPage(raw searchPayload) *PaginatedData {
	page := &PaginatedData{
		PageNumber:   raw.PageNumber,
		PageSize:     raw.PageSize,
		TotalRecords: raw.TotalRecords,
		TotalPages:   raw.TotalPages,
		Items:        make([]Product, 0, len(raw.Items)),
	}
	for _, item := range raw.Items {
		page.Items = append(page.Items, mapToProduct(item))
	}
	return page
}

// searchPayload is the wire shape of one search response page.
type searchPayload struct {
	PageNumber   int                      `json:"pageNumber"`
	PageSize     int                      `json:"pageSize"`
	TotalRecords int                      `json:"totalRecords"`
	TotalPages   int                      `json:"totalPages"`
	Items        []map[string]interface{} `json:"items"`
}
