package telegram

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// MaxCallbackData is the Telegram Bot API limit on callback_data length in bytes.
const MaxCallbackData = 64

// ParseCallbackData parses Telebot's \f<unique>|<payload> encoding.
// Returns unique and payload (may be empty).
func ParseCallbackData(cb *tele.Callback) (string, string) {
	if cb == nil {
		return "", ""
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	parts := strings.SplitN(raw, "|", 2)
	unique := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return unique, payload
}

// CallbackKey returns cb.Unique if present; otherwise parses from Data.
func CallbackKey(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	k, _ := ParseCallbackData(cb)
	return k
}

// CallbackPayload returns the payload (after '|') parsed from Data.
// cb.Data is preferred since cb.Unique may be empty in generic OnCallback.
func CallbackPayload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := ParseCallbackData(cb)
	return payload
}

// PayloadParts splits the callback payload into at most n parts using sep.
// Returns nil for an empty payload.
func PayloadParts(c tele.Context, sep string, n int) []string {
	p := CallbackPayload(c)
	if p == "" {
		return nil
	}
	return strings.SplitN(p, sep, n)
}

// FitsCallbackData reports whether the wire encoding of a button with the
// given unique key and payload stays within the Telegram byte limit.
func FitsCallbackData(unique, payload string) bool {
	// Telebot encodes as "\f<unique>|<payload>" (the separator is dropped
	// when the payload is empty).
	n := 1 + len(unique)
	if payload != "" {
		n += 1 + len(payload)
	}
	return n <= MaxCallbackData
}
