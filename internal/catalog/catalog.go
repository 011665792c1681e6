// Package catalog defines the static content hierarchy driving navigation.
// The catalog is built once at startup and never mutated afterwards, so it is
// safe to share across concurrent update handlers without locking.
package catalog

import (
	"fmt"
	"strings"
)

// Subcategory is a leaf section of the catalog. ID is a short ASCII
// identifier embedded in callback tokens; Path is the listing page location
// on the content host.
type Subcategory struct {
	Name string
	ID   string
	Path string
}

// Category groups subcategories under a display name.
type Category struct {
	Name          string
	Subcategories []Subcategory
}

// Resolution is the reverse-index entry for a subcategory id.
type Resolution struct {
	Category    string
	Subcategory Subcategory
}

// Catalog is an immutable category tree with a precomputed reverse index.
type Catalog struct {
	categories []Category
	byName     map[string]int
	byID       map[string]Resolution
}

// New validates the category tree and builds the lookup indexes.
// Subcategory ids must be unique across the whole catalog and paths must be
// rooted under pathPrefix.
func New(categories []Category, pathPrefix string) (*Catalog, error) {
	c := &Catalog{
		categories: categories,
		byName:     make(map[string]int, len(categories)),
		byID:       make(map[string]Resolution),
	}
	for i, cat := range categories {
		if strings.TrimSpace(cat.Name) == "" {
			return nil, fmt.Errorf("catalog: category %d has empty name", i)
		}
		if _, dup := c.byName[cat.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate category %q", cat.Name)
		}
		c.byName[cat.Name] = i
		for _, sub := range cat.Subcategories {
			if strings.TrimSpace(sub.ID) == "" {
				return nil, fmt.Errorf("catalog: subcategory %q has empty id", sub.Name)
			}
			if _, dup := c.byID[sub.ID]; dup {
				return nil, fmt.Errorf("catalog: duplicate subcategory id %q", sub.ID)
			}
			if !strings.HasPrefix(sub.Path, pathPrefix) {
				return nil, fmt.Errorf("catalog: subcategory %q path %q outside %q", sub.ID, sub.Path, pathPrefix)
			}
			c.byID[sub.ID] = Resolution{Category: cat.Name, Subcategory: sub}
		}
	}
	return c, nil
}

// Categories returns the ordered category list.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Category returns the named category if it exists.
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Resolve maps a subcategory id back to its (category, subcategory) pair.
func (c *Catalog) Resolve(id string) (Resolution, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Default returns the built-in hierarchy of the content host.
func Default(pathPrefix string) (*Catalog, error) {
	p := strings.TrimRight(pathPrefix, "/")
	return New([]Category{
		{
			Name: "الأدعية",
			Subcategories: []Subcategory{
				{Name: "الأدعية العامة", ID: "dua-gen", Path: p + "/duaa/general"},
				{Name: "أدعية الأيام", ID: "dua-days", Path: p + "/duaa/days"},
				{Name: "تعقيبات الصلاة", ID: "dua-taqib", Path: p + "/duaa/after-prayers"},
				{Name: "الصلوات على الحجج الطاهرين", ID: "dua-salawat", Path: p + "/duaa/salawat"},
			},
		},
		{
			Name: "الزيارات",
			Subcategories: []Subcategory{
				{Name: "الزيارات العامة", ID: "zia-gen", Path: p + "/ziyarat/general"},
				{Name: "زيارة الأئمة في أيام الأسبوع", ID: "zia-week", Path: p + "/ziyarat/week"},
			},
		},
		{
			Name: "المناجات والتسابيح",
			Subcategories: []Subcategory{
				{Name: "المناجات", ID: "munajat", Path: p + "/munajat"},
				{Name: "التسابيح", ID: "tasbih", Path: p + "/tasbih"},
			},
		},
		{
			Name: "الأعمال",
			Subcategories: []Subcategory{
				{Name: "محرم", ID: "amal-muharram", Path: p + "/amal/muharram"},
				{Name: "صفر", ID: "amal-safar", Path: p + "/amal/safar"},
				{Name: "ربيع الأول", ID: "amal-rabee1", Path: p + "/amal/rabee1"},
				{Name: "رجب", ID: "amal-rajab", Path: p + "/amal/rajab"},
				{Name: "شعبان", ID: "amal-shaban", Path: p + "/amal/shaban"},
				{Name: "شوال", ID: "amal-shawwal", Path: p + "/amal/shawwal"},
				{Name: "ذو القعدة", ID: "amal-zulqadah", Path: p + "/amal/zulqadah"},
				{Name: "ذو الحجة", ID: "amal-zulhijjah", Path: p + "/amal/zulhijjah"},
			},
		},
	}, pathPrefix)
}
