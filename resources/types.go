package resources

// Entity is the base shape shared by every taxonomy node kind.
type Entity struct {
	ID            string `json:"id"`
	Level         int    `json:"level"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	DisplayOrder  int    `json:"displayOrder"`
	LocalizedCode string `json:"localizedCode"`
	LocalizedName string `json:"localizedName"`
}

// Category is a node of the category tree. Child ordering is display order
// and must be preserved by flattening.
type Category struct {
	Entity
	Type            string     `json:"type"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	ImageMoURL      string     `json:"imageMoUrl,omitempty"`
	GnbDisplayOrder int        `json:"gnbDisplayOrder"`
	Description     string     `json:"description,omitempty"`
	Children        []Category `json:"children"`
}

type Language struct {
	Entity
	Children []Language `json:"children"`
}

type Location struct {
	Entity
	Ext                  string     `json:"ext,omitempty"`
	Description          string     `json:"description,omitempty"`
	MetaValue            string     `json:"metaValue,omitempty"`
	LocalizedDescription string     `json:"localizedDescription,omitempty"`
	Children             []Location `json:"children"`
}

type ProductType struct {
	Entity
	MetaValue string        `json:"metaValue,omitempty"`
	Children  []ProductType `json:"children"`
}

type ProcessMethod struct {
	Entity
	MetaValue string          `json:"metaValue,omitempty"`
	Children  []ProcessMethod `json:"children"`
}

// Data is the full taxonomy payload returned by GET /resources. Product
// types and process methods are keyed by main category code.
type Data struct {
	Categories     []Category                 `json:"categories"`
	Languages      []Language                 `json:"languages"`
	Locations      []Location                 `json:"locations"`
	ProductTypes   map[string][]ProductType   `json:"productTypes"`
	ProcessMethods map[string][]ProcessMethod `json:"processMethods"`
}

// FlatCategory is the denormalized projection of one category node used to
// build filter dropdowns.
type FlatCategory struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	LocalizedName  string `json:"localizedName"`
	Level          int    `json:"level"`
	ParentCode     string `json:"parentCode,omitempty"`
	IsMainCategory bool   `json:"isMainCategory"`
}

// FlatLocation is the denormalized projection of one location node.
// FullPath joins ancestor localized names for display ("Hanoi > Ba Dinh").
type FlatLocation struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	LocalizedName string `json:"localizedName"`
	Level         int    `json:"level"`
	ParentCode    string `json:"parentCode,omitempty"`
	FullPath      string `json:"fullPath"`
}
