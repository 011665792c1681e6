package catalog

import (
	"errors"
	"testing"
)

func TestDecodeToken(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		payload string
		want    Token
		wantErr bool
	}{
		{"back", "back", "main", Token{Kind: KindRoot}, false},
		{"back wrong target", "back", "menu", Token{}, true},
		{"category", "cat", "الأدعية", Token{Kind: KindCategory, Category: "الأدعية"}, false},
		{"category empty", "cat", "", Token{}, true},
		{"subcategory", "sub", "dua-gen", Token{Kind: KindSubcategory, SubID: "dua-gen"}, false},
		{"item", "it", "dua-gen|/content/duaa/general/kumail", Token{Kind: KindItem, SubID: "dua-gen", ItemPath: "/content/duaa/general/kumail"}, false},
		{"item relative path", "it", "dua-gen|content/x", Token{}, true},
		{"item missing path", "it", "dua-gen", Token{}, true},
		{"unknown key", "menu", "x", Token{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeToken(tt.key, tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrMalformedToken) {
					t.Fatalf("error %v is not ErrMalformedToken", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := []Token{
		{Kind: KindRoot},
		{Kind: KindCategory, Category: "الزيارات"},
		{Kind: KindSubcategory, SubID: "tasbih"},
		{Kind: KindItem, SubID: "zia-week", ItemPath: "/content/ziyarat/week/prophet-friday"},
	}
	for _, tok := range tokens {
		key, payload := tok.Encode()
		back, err := DecodeToken(key, payload)
		if err != nil {
			t.Fatalf("round trip %+v: %v", tok, err)
		}
		if back != tok {
			t.Errorf("round trip %+v -> %+v", tok, back)
		}
	}
}
