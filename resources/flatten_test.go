package resources

import (
	"reflect"
	"testing"
)

func cat(id, code, name string, children ...Category) Category {
	return Category{
		Entity:   Entity{ID: id, Code: code, Name: name, LocalizedName: name},
		Children: children,
	}
}

func loc(id, code, name string, level int, children ...Location) Location {
	return Location{
		Entity:   Entity{ID: id, Code: code, Name: name, LocalizedName: name, Level: level},
		Children: children,
	}
}

func testTree() []Category {
	return []Category{
		cat("1", "CTG10000000001", "Classes",
			cat("2", "CTG20000000001", "Music",
				cat("3", "CTG30000000001", "Guitar"),
				cat("4", "CTG30000000002", "Piano"),
			),
			cat("5", "CTG20000000002", "Sports"),
		),
		cat("6", "CTG10000000002", "Experiences"),
	}
}

func TestFlattenCategories_OneEntryPerNodePreOrder(t *testing.T) {
	flat := FlattenCategories(testTree(), "", 0)

	wantCodes := []string{
		"CTG10000000001", "CTG20000000001", "CTG30000000001",
		"CTG30000000002", "CTG20000000002", "CTG10000000002",
	}
	var gotCodes []string
	for _, f := range flat {
		gotCodes = append(gotCodes, f.Code)
	}
	if !reflect.DeepEqual(gotCodes, wantCodes) {
		t.Errorf("codes = %v, want %v", gotCodes, wantCodes)
	}
}

func TestFlattenCategories_LevelsAndParents(t *testing.T) {
	flat := FlattenCategories(testTree(), "", 0)

	byCode := map[string]FlatCategory{}
	for _, f := range flat {
		byCode[f.Code] = f
	}

	if got := byCode["CTG10000000001"]; got.Level != 0 || got.ParentCode != "" {
		t.Errorf("root: level=%d parent=%q", got.Level, got.ParentCode)
	}
	if got := byCode["CTG20000000001"]; got.Level != 1 || got.ParentCode != "CTG10000000001" {
		t.Errorf("child: level=%d parent=%q", got.Level, got.ParentCode)
	}
	if got := byCode["CTG30000000002"]; got.Level != 2 || got.ParentCode != "CTG20000000001" {
		t.Errorf("grandchild: level=%d parent=%q", got.Level, got.ParentCode)
	}
}

func TestFlattenCategories_Pure(t *testing.T) {
	tree := testTree()
	first := FlattenCategories(tree, "", 0)
	second := FlattenCategories(tree, "", 0)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated flatten should produce identical output")
	}
}

func TestFlattenCategories_MainFlagOnlyNearRoot(t *testing.T) {
	// A CTG10 code nested at depth 2 flattens without the main flag.
	tree := []Category{
		cat("1", "CTG20000000009", "Wrapper",
			cat("2", "CTG20000000010", "Inner",
				cat("3", "CTG10000000099", "Hidden main"),
			),
		),
	}
	flat := FlattenCategories(tree, "", 0)
	for _, f := range flat {
		if f.Code == "CTG10000000099" && f.IsMainCategory {
			t.Error("depth-2 node should not carry the main flag in flatten")
		}
	}
}

func TestFlattenCategories_Empty(t *testing.T) {
	if got := FlattenCategories(nil, "", 0); len(got) != 0 {
		t.Errorf("flatten(nil) = %v, want empty", got)
	}
}

func TestExtractMainCategories_AnyDepth(t *testing.T) {
	tree := []Category{
		cat("1", "CTG20000000001", "Wrapper",
			cat("2", "CTG20000000002", "Inner",
				cat("3", "CTG10000000042", "Deep main"),
			),
		),
		cat("4", "CTG10000000001", "Classes"),
	}
	mains := ExtractMainCategories(tree)
	if len(mains) != 2 {
		t.Fatalf("mains = %d, want 2", len(mains))
	}
	// Pre-order: the deep match comes first.
	if mains[0].Code != "CTG10000000042" {
		t.Errorf("mains[0] = %s", mains[0].Code)
	}
	for _, m := range mains {
		if m.Level != 0 {
			t.Errorf("%s: level = %d, want 0", m.Code, m.Level)
		}
		if !m.IsMainCategory {
			t.Errorf("%s: IsMainCategory = false", m.Code)
		}
	}
}

func TestExtractSubCategories(t *testing.T) {
	subs := ExtractSubCategories(testTree(), "CTG10000000001")

	wantCodes := []string{"CTG20000000001", "CTG30000000001", "CTG30000000002", "CTG20000000002"}
	var gotCodes []string
	for _, s := range subs {
		gotCodes = append(gotCodes, s.Code)
	}
	if !reflect.DeepEqual(gotCodes, wantCodes) {
		t.Errorf("codes = %v, want %v", gotCodes, wantCodes)
	}

	if subs[0].Level != 1 || subs[0].ParentCode != "CTG10000000001" {
		t.Errorf("direct child: level=%d parent=%q", subs[0].Level, subs[0].ParentCode)
	}
	if subs[1].Level != 2 || subs[1].ParentCode != "CTG20000000001" {
		t.Errorf("descendant: level=%d parent=%q", subs[1].Level, subs[1].ParentCode)
	}
}

func TestExtractSubCategories_UnknownCode(t *testing.T) {
	if got := ExtractSubCategories(testTree(), "X"); len(got) != 0 {
		t.Errorf("unknown code: got %v, want empty", got)
	}
}

func TestExtractSubCategories_NoChildren(t *testing.T) {
	if got := ExtractSubCategories(testTree(), "CTG10000000002"); len(got) != 0 {
		t.Errorf("childless main: got %v, want empty", got)
	}
}

func TestExtractSubCategories_FirstMatchWins(t *testing.T) {
	tree := []Category{
		cat("1", "DUP", "First",
			cat("2", "C1", "From first"),
		),
		cat("3", "DUP", "Second",
			cat("4", "C2", "From second"),
		),
	}
	subs := ExtractSubCategories(tree, "DUP")
	if len(subs) != 1 || subs[0].Code != "C1" {
		t.Errorf("subs = %v, want only C1", subs)
	}
}

func TestFlattenLocations_FullPath(t *testing.T) {
	tree := []Location{
		loc("1", "VNM", "Vietnam", 1,
			loc("2", "HAN", "Hanoi", 2,
				loc("3", "BD", "Ba Dinh", 3),
			),
		),
	}
	flat := FlattenLocations(tree, "", nil)
	if len(flat) != 3 {
		t.Fatalf("flat = %d entries, want 3", len(flat))
	}
	if flat[2].FullPath != "Vietnam > Hanoi > Ba Dinh" {
		t.Errorf("FullPath = %q", flat[2].FullPath)
	}
	if flat[2].ParentCode != "HAN" {
		t.Errorf("ParentCode = %q", flat[2].ParentCode)
	}
}

func TestExtractCountryLocations(t *testing.T) {
	tree := []Location{
		loc("0", "KOR", "Korea", 1),
		loc("1", "VNM", "Vietnam", 1,
			loc("2", "HAN", "Hanoi", 2,
				loc("3", "BD", "Ba Dinh", 3,
					loc("4", "W1", "Ward 1", 4), // below district: dropped
				),
			),
			loc("5", "SGN", "Saigon", 2),
		),
	}
	got := ExtractCountryLocations(tree)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3 (2 cities + 1 district)", len(got))
	}
	if got[0].Code != "HAN" || got[0].FullPath != "Hanoi" || got[0].ParentCode != "VNM" {
		t.Errorf("city = %+v", got[0])
	}
	if got[1].Code != "BD" || got[1].FullPath != "Hanoi > Ba Dinh" || got[1].ParentCode != "HAN" {
		t.Errorf("district = %+v", got[1])
	}
	if got[2].Code != "SGN" {
		t.Errorf("second city = %+v", got[2])
	}
}

func TestExtractCountryLocations_CountryAbsent(t *testing.T) {
	tree := []Location{loc("0", "KOR", "Korea", 1)}
	if got := ExtractCountryLocations(tree); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
