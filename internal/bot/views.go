// Package bot wires the navigation views, commands, and middleware into a
// runnable Telegram application. Every view is derived from the callback
// token alone; handlers keep no state between updates.
package bot

import (
	"errors"
	"fmt"
	"strings"

	tg "github.com/malhaydar/noorbot/core/telegram"
	"github.com/malhaydar/noorbot/core/telegram/helpers"
	"github.com/malhaydar/noorbot/internal/catalog"
	"github.com/malhaydar/noorbot/internal/metrics"
	"github.com/malhaydar/noorbot/internal/scrape"

	tele "gopkg.in/telebot.v4"
)

// Views renders the four navigation views: root menu, subcategory list,
// item list, and item detail.
type Views struct {
	Catalog *catalog.Catalog
	Fetcher *scrape.Client

	// Prefix is the content path prefix listing anchors must live under.
	Prefix string
}

// Start handles /start and any free-form text by sending the root menu as a
// fresh message.
func (v *Views) Start(c tele.Context) error {
	return c.Send(textRootPrompt, tg.InlineButtons(rootButtons(v.Catalog)))
}

// Root handles the back|main token by editing the pressed message back into
// the root menu.
func (v *Views) Root(c tele.Context) error {
	return c.Edit(textRootPrompt, tg.InlineButtons(rootButtons(v.Catalog)))
}

// Category handles cat|<category>: the subcategory list of one category.
func (v *Views) Category(c tele.Context) error {
	tok, err := catalog.DecodeToken(catalog.KeyCategory, tg.CallbackPayload(c))
	if err != nil {
		return ignoreMalformed(err)
	}
	cat, ok := v.Catalog.Category(tok.Category)
	if !ok {
		return c.Edit(textSectionMissing, tg.InlineButtonsRows(mainMenuRow()))
	}
	return c.Edit(fmt.Sprintf(textPickSub, cat.Name), tg.InlineButtonsRows(categoryRows(cat)...))
}

// Subcategory handles sub|<id>: fetches the listing page and renders the
// item list.
func (v *Views) Subcategory(c tele.Context) error {
	tok, err := catalog.DecodeToken(catalog.KeySubcategory, tg.CallbackPayload(c))
	if err != nil {
		return ignoreMalformed(err)
	}
	res, ok := v.Catalog.Resolve(tok.SubID)
	if !ok {
		return c.Edit(textSectionMissing, tg.InlineButtonsRows(mainMenuRow()))
	}

	back := tg.InlineButtonsRows(listBackRow(res))

	ctx := helpers.BuildContext(c)
	markup, err := v.Fetcher.Fetch(ctx, res.Subcategory.Path)
	if err != nil {
		return c.Edit(textUnavailable, back)
	}
	// A listing that cannot be parsed has no items to offer; both cases
	// read as "nothing found" to the user.
	items, err := scrape.ParseList(markup, v.Prefix, res.Subcategory.Path)
	if err != nil || len(items) == 0 {
		return c.Edit(textNothingFound, back)
	}
	return c.Edit(
		fmt.Sprintf(textPickItem, res.Subcategory.Name),
		tg.InlineButtonsRows(itemRows(res, items)...),
	)
}

// Item handles it|<id>|<path>: fetches the detail page, cleans it, and
// delivers the fragments in order. The first fragment replaces the pressed
// message; the rest are sent as new messages. Only the last fragment carries
// a keyboard.
func (v *Views) Item(c tele.Context) error {
	tok, err := catalog.DecodeToken(catalog.KeyItem, tg.CallbackPayload(c))
	if err != nil {
		return ignoreMalformed(err)
	}
	if _, ok := v.Catalog.Resolve(tok.SubID); !ok {
		return c.Edit(textSectionMissing, tg.InlineButtonsRows(mainMenuRow()))
	}

	nav := tg.InlineButtonsRows(detailRows(tok.SubID)...)

	ctx := helpers.BuildContext(c)
	markup, err := v.Fetcher.Fetch(ctx, tok.ItemPath)
	if err != nil {
		return c.Edit(textUnavailable, nav)
	}
	detail, err := scrape.CleanDetail(markup)
	if err != nil {
		return c.Edit(textUnavailable, nav)
	}

	source := v.Fetcher.ResolveURL(tok.ItemPath)
	fragments := detailFragments(detail, source)
	if len(fragments) == 0 {
		return c.Edit(textNothingFound, nav)
	}

	for i, frag := range fragments {
		last := i == len(fragments)-1

		var sendErr error
		switch {
		case i == 0 && last:
			sendErr = c.Edit(frag, nav)
		case i == 0:
			sendErr = c.Edit(frag)
		case last:
			sendErr = c.Send(frag, nav)
		default:
			sendErr = c.Send(frag)
		}
		if sendErr != nil {
			return sendErr
		}
		metrics.FragmentsDelivered.Inc()
	}
	return nil
}

// ignoreMalformed drops malformed-token errors; a stale or foreign button is
// not a handler failure.
func ignoreMalformed(err error) error {
	if errors.Is(err, catalog.ErrMalformedToken) {
		return nil
	}
	return err
}

// detailFragments assembles the deliverable message texts for a cleaned
// detail page: title and body joined by a paragraph break, split to the
// message budget, with the source footer appended to the last fragment.
func detailFragments(d scrape.Detail, sourceURL string) []string {
	var parts []string
	if d.Title != "" {
		parts = append(parts, d.Title)
	}
	if d.Body != "" {
		parts = append(parts, d.Body)
	}
	fragments := scrape.Split(strings.Join(parts, "\n\n"), scrape.MessageLimit)
	if len(fragments) == 0 {
		return nil
	}
	footer := fmt.Sprintf(textSourceFooter, sourceURL)
	fragments[len(fragments)-1] += "\n\n" + footer
	return fragments
}

// rootButtons builds one button per category, each on its own row.
func rootButtons(cat *catalog.Catalog) []tg.InlineBtn {
	categories := cat.Categories()
	btns := make([]tg.InlineBtn, 0, len(categories))
	for _, category := range categories {
		key, payload := catalog.Token{Kind: catalog.KindCategory, Category: category.Name}.Encode()
		btns = append(btns, tg.InlineBtn{Text: category.Name, Unique: key, Data: payload})
	}
	return btns
}

// categoryRows builds the subcategory buttons plus a back-to-root row.
func categoryRows(cat catalog.Category) [][]tg.InlineBtn {
	rows := make([][]tg.InlineBtn, 0, len(cat.Subcategories)+1)
	for _, sub := range cat.Subcategories {
		key, payload := catalog.Token{Kind: catalog.KindSubcategory, SubID: sub.ID}.Encode()
		rows = append(rows, []tg.InlineBtn{{Text: sub.Name, Unique: key, Data: payload}})
	}
	return append(rows, mainMenuRow())
}

// itemRows builds the item buttons plus a back row. Items whose encoded
// token would not fit the callback-data limit are dropped by the keyboard
// builder.
func itemRows(res catalog.Resolution, items []scrape.Item) [][]tg.InlineBtn {
	rows := make([][]tg.InlineBtn, 0, len(items)+1)
	for _, it := range items {
		key, payload := catalog.Token{
			Kind:     catalog.KindItem,
			SubID:    res.Subcategory.ID,
			ItemPath: it.Path,
		}.Encode()
		rows = append(rows, []tg.InlineBtn{{Text: it.Title, Unique: key, Data: payload}})
	}
	return append(rows, listBackRow(res))
}

// detailRows is the navigation keyboard under the last detail fragment:
// back to the item list, and back to the root menu.
func detailRows(subID string) [][]tg.InlineBtn {
	listKey, listPayload := catalog.Token{Kind: catalog.KindSubcategory, SubID: subID}.Encode()
	return [][]tg.InlineBtn{
		{{Text: textBack, Unique: listKey, Data: listPayload}},
		mainMenuRow(),
	}
}

// listBackRow navigates from an item list back to its category, with a
// main-menu escape alongside.
func listBackRow(res catalog.Resolution) []tg.InlineBtn {
	catKey, catPayload := catalog.Token{Kind: catalog.KindCategory, Category: res.Category}.Encode()
	rootKey, rootPayload := catalog.Token{Kind: catalog.KindRoot}.Encode()
	return []tg.InlineBtn{
		{Text: textBack, Unique: catKey, Data: catPayload},
		{Text: textMainMenu, Unique: rootKey, Data: rootPayload},
	}
}

// mainMenuRow is a single back-to-root button row.
func mainMenuRow() []tg.InlineBtn {
	key, payload := catalog.Token{Kind: catalog.KindRoot}.Encode()
	return []tg.InlineBtn{{Text: textMainMenu, Unique: key, Data: payload}}
}
