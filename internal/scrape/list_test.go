package scrape

import (
	"reflect"
	"strings"
	"testing"
)

const listingPage = `
<html><body>
<nav><a href="/">الرئيسية</a></nav>
<div class="section">
  <a href="/content/duaa/general">الأدعية العامة</a>
  <ul>
    <li><a href="/content/duaa/general/kumail">دعاء كميل</a></li>
    <li><a href="/content/duaa/general/jawshan-kabir">دعاء الجوشن الكبير</a></li>
    <li><a href="/content/duaa/general/nudba">دعاء الندبة</a></li>
  </ul>
</div>
<a href="https://t.me/share">شارك</a>
</body></html>`

func TestParseListFiltersRootAnchor(t *testing.T) {
	items, err := ParseList(listingPage, "/content/", "/content/duaa/general")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Item{
		{Title: "دعاء كميل", Path: "/content/duaa/general/kumail"},
		{Title: "دعاء الجوشن الكبير", Path: "/content/duaa/general/jawshan-kabir"},
		{Title: "دعاء الندبة", Path: "/content/duaa/general/nudba"},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("items = %+v, want %+v", items, want)
	}
}

func TestParseListDeduplicates(t *testing.T) {
	markup := `<body>
<a href="/content/tasbih/saturday">تسبيح يوم السبت</a>
<a href="/content/tasbih/saturday">تسبيح يوم السبت</a>
<a href="/content/tasbih/sunday">تسبيح يوم الأحد</a>
</body>`
	items, err := ParseList(markup, "/content/", "/content/tasbih")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (%+v)", len(items), items)
	}
	seen := make(map[Item]struct{})
	for _, it := range items {
		if _, dup := seen[it]; dup {
			t.Errorf("duplicate item %+v", it)
		}
		seen[it] = struct{}{}
		if !strings.HasPrefix(it.Path, "/content/") {
			t.Errorf("path %q outside prefix", it.Path)
		}
	}
}

func TestParseListDiscardRules(t *testing.T) {
	long := strings.Repeat("كلمة ", 40) // well over 120 characters
	markup := `<body>
<a href="/content/x/a">` + long + `</a>
<a href="/content/x/b">   </a>
<a href="/about">من نحن</a>
<a href="/content/x/c">صالح</a>
</body>`
	items, err := ParseList(markup, "/content/", "/content/x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 1 || items[0].Title != "صالح" {
		t.Errorf("items = %+v, want single valid item", items)
	}
}

func TestParseListCollapsesWhitespace(t *testing.T) {
	markup := `<body><a href="/content/x/a">  دعاء
	 كميل  </a></body>`
	items, err := ParseList(markup, "/content/", "/content/x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 1 || items[0].Title != "دعاء كميل" {
		t.Errorf("items = %+v", items)
	}
}

func TestParseListEmptyResult(t *testing.T) {
	items, err := ParseList("<body><p>لا روابط هنا</p></body>", "/content/", "/content/x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %+v, want none", items)
	}
}

func TestParseListIdempotent(t *testing.T) {
	a, err := ParseList(listingPage, "/content/", "/content/duaa/general")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := ParseList(listingPage, "/content/", "/content/duaa/general")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("parse is not idempotent")
	}
}
