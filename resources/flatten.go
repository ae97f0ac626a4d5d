package resources

import "strings"

const (
	// MainCategoryPrefix marks main (GNB) categories, e.g. CTG10000000001.
	MainCategoryPrefix = "CTG10"
	// CountryCode is the one country whose subdivisions the console filters on.
	CountryCode = "VNM"
	// pathSeparator joins ancestor names in FlatLocation.FullPath.
	pathSeparator = " > "
)

// FlattenCategories walks the tree depth-first in source order and returns
// one entry per node. Level counts from the initial call; parent codes are
// threaded through the recursion. Pure: same input, same output.
func FlattenCategories(cats []Category, parentCode string, level int) []FlatCategory {
	var result []FlatCategory
	for _, cat := range cats {
		result = append(result, FlatCategory{
			ID:             cat.ID,
			Code:           cat.Code,
			Name:           cat.Name,
			LocalizedName:  cat.LocalizedName,
			Level:          level,
			ParentCode:     parentCode,
			IsMainCategory: strings.HasPrefix(cat.Code, MainCategoryPrefix) && level <= 1,
		})
		if len(cat.Children) > 0 {
			result = append(result, FlattenCategories(cat.Children, cat.Code, level+1)...)
		}
	}
	return result
}

// ExtractMainCategories collects every node whose code carries the main
// category prefix, at any depth, normalized to level 0. Deeply nested
// matches are included on purpose.
func ExtractMainCategories(cats []Category) []FlatCategory {
	var mains []FlatCategory
	var walk func([]Category)
	walk = func(nodes []Category) {
		for _, cat := range nodes {
			if strings.HasPrefix(cat.Code, MainCategoryPrefix) {
				mains = append(mains, FlatCategory{
					ID:             cat.ID,
					Code:           cat.Code,
					Name:           cat.Name,
					LocalizedName:  cat.LocalizedName,
					Level:          0,
					IsMainCategory: true,
				})
			}
			if len(cat.Children) > 0 {
				walk(cat.Children)
			}
		}
	}
	walk(cats)
	return mains
}

// ExtractSubCategories returns the direct children of the main category at
// level 1, each followed by its own flattened descendants from level 2.
// Empty when the code is absent or the node is childless. Codes are unique
// per tree; the first pre-order match wins.
func ExtractSubCategories(cats []Category, mainCategoryCode string) []FlatCategory {
	main := findCategory(cats, mainCategoryCode)
	if main == nil || len(main.Children) == 0 {
		return nil
	}
	var subs []FlatCategory
	for _, sub := range main.Children {
		subs = append(subs, FlatCategory{
			ID:            sub.ID,
			Code:          sub.Code,
			Name:          sub.Name,
			LocalizedName: sub.LocalizedName,
			Level:         1,
			ParentCode:    mainCategoryCode,
		})
		if len(sub.Children) > 0 {
			subs = append(subs, FlattenCategories(sub.Children, sub.Code, 2)...)
		}
	}
	return subs
}

func findCategory(cats []Category, code string) *Category {
	for i := range cats {
		if cats[i].Code == code {
			return &cats[i]
		}
		if found := findCategory(cats[i].Children, code); found != nil {
			return found
		}
	}
	return nil
}

// FlattenLocations walks the location tree depth-first, threading the
// ancestor path so FullPath reads "country > city > district".
func FlattenLocations(locs []Location, parentCode string, path []string) []FlatLocation {
	var result []FlatLocation
	for _, loc := range locs {
		current := append(append([]string{}, path...), loc.LocalizedName)
		result = append(result, FlatLocation{
			ID:            loc.ID,
			Code:          loc.Code,
			Name:          loc.Name,
			LocalizedName: loc.LocalizedName,
			Level:         loc.Level,
			ParentCode:    parentCode,
			FullPath:      strings.Join(current, pathSeparator),
		})
		if len(loc.Children) > 0 {
			result = append(result, FlattenLocations(loc.Children, loc.Code, current)...)
		}
	}
	return result
}

// ExtractCountryLocations surfaces the cities and districts under the
// reserved country node. Levels come from the source data; anything deeper
// than districts is dropped. Empty when the country is absent from the root
// list.
func ExtractCountryLocations(locs []Location) []FlatLocation {
	var country *Location
	for i := range locs {
		if locs[i].Code == CountryCode {
			country = &locs[i]
			break
		}
	}
	if country == nil || len(country.Children) == 0 {
		return nil
	}

	var result []FlatLocation
	for _, city := range country.Children {
		result = append(result, FlatLocation{
			ID:            city.ID,
			Code:          city.Code,
			Name:          city.Name,
			LocalizedName: city.LocalizedName,
			Level:         city.Level,
			ParentCode:    CountryCode,
			FullPath:      city.LocalizedName,
		})
		for _, district := range city.Children {
			result = append(result, FlatLocation{
				ID:            district.ID,
				Code:          district.Code,
				Name:          district.Name,
				LocalizedName: district.LocalizedName,
				Level:         district.Level,
				ParentCode:    city.Code,
				FullPath:      city.LocalizedName + pathSeparator + district.LocalizedName,
			})
		}
	}
	return result
}
