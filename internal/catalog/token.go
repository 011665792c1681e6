package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Callback token keys. Together with their payload they form the full
// pipe-delimited navigation token carried in inline buttons:
//
//	cat|<category>
//	sub|<subcategory-id>
//	it|<subcategory-id>|<item-path>
//	back|main
//
// Every view transition is derived from the token alone; no view state is
// kept between updates.
const (
	KeyCategory    = "cat"
	KeySubcategory = "sub"
	KeyItem        = "it"
	KeyBack        = "back"

	backMain = "main"
)

// Kind discriminates the decoded token variants.
type Kind int

const (
	// KindRoot requests the root category menu.
	KindRoot Kind = iota
	// KindCategory requests the subcategory list of one category.
	KindCategory
	// KindSubcategory requests the item list of one subcategory.
	KindSubcategory
	// KindItem requests the detail view of one item.
	KindItem
)

// ErrMalformedToken marks tokens that cannot be decoded. Callers drop the
// update silently; a malformed token is a stale or foreign button, not a fault.
var ErrMalformedToken = errors.New("malformed navigation token")

// Token is the decoded form of a navigation callback token.
type Token struct {
	Kind     Kind
	Category string
	SubID    string
	ItemPath string
}

// DecodeToken parses a (key, payload) callback pair into a Token.
func DecodeToken(key, payload string) (Token, error) {
	switch key {
	case KeyBack:
		if payload != backMain {
			return Token{}, fmt.Errorf("%w: back target %q", ErrMalformedToken, payload)
		}
		return Token{Kind: KindRoot}, nil
	case KeyCategory:
		if payload == "" {
			return Token{}, fmt.Errorf("%w: empty category", ErrMalformedToken)
		}
		return Token{Kind: KindCategory, Category: payload}, nil
	case KeySubcategory:
		if payload == "" {
			return Token{}, fmt.Errorf("%w: empty subcategory id", ErrMalformedToken)
		}
		return Token{Kind: KindSubcategory, SubID: payload}, nil
	case KeyItem:
		id, path, ok := strings.Cut(payload, "|")
		if !ok || id == "" || !strings.HasPrefix(path, "/") {
			return Token{}, fmt.Errorf("%w: item payload %q", ErrMalformedToken, payload)
		}
		return Token{Kind: KindItem, SubID: id, ItemPath: path}, nil
	default:
		return Token{}, fmt.Errorf("%w: key %q", ErrMalformedToken, key)
	}
}

// Encode returns the (key, payload) callback pair for the token.
func (t Token) Encode() (string, string) {
	switch t.Kind {
	case KindCategory:
		return KeyCategory, t.Category
	case KindSubcategory:
		return KeySubcategory, t.SubID
	case KindItem:
		return KeyItem, t.SubID + "|" + t.ItemPath
	default:
		return KeyBack, backMain
	}
}
