package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default("/content/")
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if len(c.Categories()) != 4 {
		t.Fatalf("categories = %d, want 4", len(c.Categories()))
	}

	seen := make(map[string]string)
	for _, cat := range c.Categories() {
		if len(cat.Subcategories) == 0 {
			t.Errorf("category %q has no subcategories", cat.Name)
		}
		for _, sub := range cat.Subcategories {
			if prev, dup := seen[sub.ID]; dup {
				t.Errorf("id %q used by both %q and %q", sub.ID, prev, sub.Name)
			}
			seen[sub.ID] = sub.Name
			if !strings.HasPrefix(sub.Path, "/content/") {
				t.Errorf("subcategory %q path %q outside prefix", sub.ID, sub.Path)
			}

			r, ok := c.Resolve(sub.ID)
			if !ok {
				t.Fatalf("id %q does not resolve", sub.ID)
			}
			if r.Category != cat.Name || r.Subcategory.Path != sub.Path {
				t.Errorf("resolve(%q) = %+v", sub.ID, r)
			}
		}
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Category{
		{Name: "a", Subcategories: []Subcategory{{Name: "x", ID: "dup", Path: "/content/x"}}},
		{Name: "b", Subcategories: []Subcategory{{Name: "y", ID: "dup", Path: "/content/y"}}},
	}, "/content/")
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestNewRejectsForeignPaths(t *testing.T) {
	_, err := New([]Category{
		{Name: "a", Subcategories: []Subcategory{{Name: "x", ID: "x", Path: "/elsewhere/x"}}},
	}, "/content/")
	if err == nil {
		t.Fatal("expected path prefix error")
	}
}

func TestCategoryLookup(t *testing.T) {
	c, err := Default("/content/")
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	cat, ok := c.Category("الأدعية")
	if !ok {
		t.Fatal("category lookup failed")
	}
	if len(cat.Subcategories) != 4 {
		t.Errorf("subcategories = %d, want 4", len(cat.Subcategories))
	}
	if _, ok := c.Category("غير موجود"); ok {
		t.Error("unexpected category hit")
	}
}
